// Package history provides the persisted history backends for simulation
// results.
//
// Three interchangeable encodings implement the same append/load contract: a
// row-oriented CSV file with a fixed header, a document-oriented JSON list,
// and a SQLite database. All backends keep records in insertion order and
// never rewrite previously stored records on append.
package history
