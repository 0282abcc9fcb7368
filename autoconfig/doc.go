// Package autoconfig writes the auto-generated config file a browser test
// run reads its parameters from.
//
// The document lives at a fixed path below the project root and is replaced
// on every write. Writers serialize through the advisory flag of package lock
// stored next to it. Scalar fields are always written as JSON strings, so a
// boolean becomes "true" or "false" and the party id its decimal text;
// consumers of the file depend on that.
package autoconfig
