// Package main provides the variantview command-line tool.
package main

import "os"

func main() {
	err := newRootCmd().Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
