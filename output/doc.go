// Package output persists record sets in the formats produced by a harvest.
//
// Every format implements the Formatter interface. Parquet, Excel and CSV are
// written to disk by the Exporter; CSV and JSON Lines are also used to print a
// record set to stdout.
//
// # Supported Formats
//
//   - Parquet: one optional column per record column, typed by record.Kind,
//     zstd-compressed. Nested columns use the JSON logical type.
//   - Excel: a single sheet with a header row.
//   - CSV: comma-separated values with a header row.
//   - JSON Lines: one JSON object per line (stdout only).
//
// # Directory Layout
//
// Layout owns the output tree:
//
//	outputs/
//	    parquet/<name>.parquet
//	    excel/<name>.xlsx
//	    csv/<name>.csv
//
//	layout := output.Layout{Root: "outputs"}
//	if err := layout.Ensure(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Exporting
//
//	exporter := output.NewExporter(layout, slog.Default())
//	report, err := exporter.Export(set, "marine")
//	if err != nil {
//	    // parquet or csv failed; nothing further was written
//	}
//	if report.ExcelErr != nil {
//	    // parquet and csv were written, the spreadsheet was not
//	}
//
// Each artifact is encoded in memory first, so a failing formatter never
// leaves a truncated file behind.
package output
