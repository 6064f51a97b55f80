// Package dirtidy walks a directory tree and collects cleanup suggestions.
//
// The walk is depth-first and single-threaded: every directory is offered to
// the directory rules before its files, and its files before any
// subdirectory. Each regular file is classified and accounted for in exactly
// one type bucket.
package dirtidy
