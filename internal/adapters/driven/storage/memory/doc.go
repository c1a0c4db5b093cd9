// Package memory provides in-memory implementations of the storage
// driven ports. They mirror the SQLite adapter's semantics and are used
// as fixtures in service and handler tests.
package memory
