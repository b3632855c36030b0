// Package parser reads credential-dump files into records.
//
// Dump files are messy by nature: mixed delimiters, partial lines,
// legacy encodings. The parser degrades gracefully per line - a line
// that cannot be parsed is counted as skipped, never aborts the file.
package parser
