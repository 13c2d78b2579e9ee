// Package northwind is an analytical report library for the Northwind
// Traders dataset.
//
// Usage:
//
//	import (
//	    "github.com/northwind-analytics/northwind/helpers"
//	    "github.com/northwind-analytics/northwind/reports"
//	)
//
//	snap, err := helpers.LoadDir("testdata/northwind")
//	table, err := reports.New().Run("top-customers-by-orders", snap)
//
// The reports package holds the fixed 20-report catalog and the runner;
// the engine package holds the relational operators the reports compose
// (join, group/aggregate, rank, lag); the dataset package holds the typed
// tables and the immutable, validated Snapshot.
//
// The library performs no I/O and never mutates a snapshot — loading data
// (CSV, database dump) is the caller's concern, with helpers.LoadDir as
// the bundled CSV collaborator.
package northwind
