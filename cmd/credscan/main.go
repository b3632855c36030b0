// Package main provides the entry point for the credscan CLI.
//
// Credscan analyzes leaked credential dumps and quantifies how strongly
// each account's password correlates with its own username or email.
//
// Usage:
//
//	credscan analyze <dump-file>
//	credscan analyze --csv matches.csv dump1.txt dump2.txt
//
// See --help for all available options.
package main

// main is the entry point for credscan.
func main() {
	Execute()
}
