// Package puzzle provides the fragment store at the heart of the decoder.
//
// A puzzle is an ordered message split into fragments. Each fragment carries
// a raw identifier (assigned by the remote service, possibly sparse), a
// sequence index (its position in the message), and a text payload. The two
// integer spaces are distinct: an identifier says nothing about where the
// fragment sits in the message.
//
// # Store
//
// [Store] collects fragments by sequence index and tracks which identifiers
// have already been fetched successfully. It answers two questions:
//
//   - [Store.Complete]: do we hold a gapless run of indices 0..max?
//   - [Store.Assemble]: the message, joined in index order.
//
// The store is not safe for concurrent use. The solver owns it and mutates
// it only between batches, after all in-flight fetches have settled.
package puzzle
