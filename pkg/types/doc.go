// Package types defines the data model shared by the resolver and the
// reconciliation handlers: the declarative Item a user configures, the
// resolved Entry (a file pair or an invalid specification), its Status,
// the sync Target and the FS abstraction used for all file access.
package types
