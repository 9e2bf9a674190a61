// Package archive persists solved puzzles to object storage.
//
// A solved message is written as a plain-text object, with a YAML manifest
// stored alongside it describing the solve: source service, fragment count,
// probe count, and timing. Storage is agnostic via gocloud.dev/blob, so any
// supported scheme works (s3://, gs://, mem://).
//
// # Storage Layout
//
//	{bucket}/{object}                 the assembled message
//	{bucket}/{object}.manifest.yaml   solve metadata
package archive
