// Package mail defines the raw message record OpsHelm consumes and the
// Source interface mail providers implement.
//
// The Gmail-backed source lives in internal/gmail. This package carries the
// offline sources: FileSource reads a JSON array of messages and
// StaticSource serves an in-memory list, used by the demo and by tests.
package mail
