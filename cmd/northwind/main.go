package main

import (
	"fmt"
	"os"
)

// ============================================================================
// NORTHWIND CLI — Run the report catalog from the command line
// ============================================================================

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
