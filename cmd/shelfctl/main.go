// Package main provides shelfctl, the administrative CLI for a shelfnotes data directory.
//
// Usage:
//
//	shelfctl seed apply
//	shelfctl books list --search orwell --ordering -publication_date
//	shelfctl users create admin --password s3cretpass --staff
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
