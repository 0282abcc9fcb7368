// Package util provides the small helpers shared by the config writer, the
// advisory lock and the test loggers.
//
// Key Components:
//
// Files:
//   - FilenameWithoutExtension and FileExtension split a name on its last dot
//   - EnsureDirectory and EnsureFile create paths idempotently (default mode 0766)
//   - DeleteFilesWithPrefix removes every file matching a path prefix
//   - Exists probes a path
//   - ArchiveDirectory zips the files of a directory, ArchiveEntries lists them
//
// JSON:
//   - Decode and DecodeObject read a JSON file into generic maps and slices
//   - Encode serializes a value and reports failure through an error
//   - WriteJSONFile persists any value as JSON
//
// Dates and strings:
//   - TimestampForLog ("2006-01-02 15:04:05") and DateStampYMD ("2006_01_02")
//   - RemoveRoundBrackets and Contains
//
// Every function that touches storage takes an afero.Fs so callers can pass
// afero.NewOsFs() in production and afero.NewMemMapFs() in tests.
package util
