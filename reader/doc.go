// Package reader reads exported parquet artifacts back into record sets.
//
// It is used to verify that an export round-trips and by the schema
// subcommand to describe an artifact's columns.
//
// # Basic Usage
//
//	r, err := reader.NewReader("outputs/parquet/marine.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	set, err := r.ReadAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Columns written with the JSON logical type are decoded back into nested
// values, integers come back as int64 and floating point values as float64.
//
// # Schema Introspection
//
//	columns, err := reader.ExtractSchemaInfo("outputs/parquet/marine.parquet")
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
