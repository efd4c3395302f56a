package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vegasq/copcat/reader"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file.parquet>",
		Short: "Print the column schema of an exported Parquet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			infos, err := reader.ExtractSchemaInfo(path)
			if err != nil {
				return err
			}

			r, err := reader.NewReader(path)
			if err != nil {
				return err
			}
			rows := r.NumRows()
			_ = r.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# %s: %d columns, %d rows\n", path, len(infos), rows)

			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Column", "Type", "Physical", "Logical", "Optional"})
			table.SetAutoWrapText(false)
			for _, info := range infos {
				table.Append([]string{
					info.Name,
					info.Type,
					info.PhysicalType,
					info.LogicalType,
					strconv.FormatBool(info.Optional),
				})
			}
			table.Render()
			return nil
		},
	}
}
