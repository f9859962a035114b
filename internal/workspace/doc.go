// Package workspace maps email traffic onto named client workspaces.
//
// A Registry holds workspaces in registration order. Identify resolves a
// message's subject and sender to the first workspace whose lowercase prefix
// appears in either, falling back to DefaultWorkspace.
//
// Workspace lists are configured as a YAML or JSON mapping of name to prefix:
//
//	Parex: parex
//	ParkPlace: parkplace
//
// ParseEntries keeps the document order, which decides precedence when more
// than one prefix matches.
package workspace
