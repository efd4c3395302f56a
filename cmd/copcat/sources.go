package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vegasq/copcat/source"
)

func newSourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the catalog sources in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Title", "Method", "URL", "Enabled"})
			table.SetAutoWrapText(false)
			for _, a := range source.Catalog(cfg.Endpoints) {
				enabled := "yes"
				if a.Disabled {
					enabled = "no: " + a.Reason
				}
				table.Append([]string{a.Name, a.Title, a.Request.Method, a.Request.URL, enabled})
			}
			table.Render()
			return nil
		},
	}
}
