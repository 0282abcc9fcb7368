// Package lock implements the advisory flag that serializes writers of the
// shared auto-generated config file.
//
// The flag is a plain text file holding "locked" or "unLocked". Writers poll
// it with Acquire: while it reads locked they sleep, and after too many failed
// checks they reset it themselves, trading strict mutual exclusion for
// liveness when a previous writer died while holding it. No OS-level file
// locking is involved; every writer has to follow the same protocol.
//
// Flag abstracts the storage so the protocol can run against FileFlag (a file
// on any afero.Fs) or MemFlag (in memory, for tests).
package lock
