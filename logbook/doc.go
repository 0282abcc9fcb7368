// Package logbook appends the human-readable result logs of a browser test run.
//
// A Logger owns up to four append-only text files per election:
//
//	log.txt         every entry
//	errorLog.txt    entries logged as WARNING, ERROR or FATAL_ERROR
//	resultLog.txt   party result headings and lines
//	browserlog.txt  browser console output dumped after a session
//
// Files are never rotated or truncated here. Timestamps come from
// util.TimestampForLog.
package logbook
