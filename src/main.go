// Package main provides the entry point for the rattlesnake CLI.
//
// Rattlesnake validates the metadata of a music library: it walks a
// directory tree, reads the tags of every audio file it knows how to open,
// and reports the files missing album artwork, album, artist or track
// number.
//
// Usage:
//
//	rattlesnake <directory>
//	rattlesnake serve
//
// See --help for all available options.
package main

// main is the entry point for rattlesnake.
func main() {
	Execute()
}
