package main

import (
	"github.com/spf13/cobra"
)

var showFlags struct {
	table string
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print an exported table",
	RunE: func(_ *cobra.Command, _ []string) error {
		path := showFlags.table
		if path == "" {
			path = app.config.TablePath
		}
		return app.Show(path)
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFlags.table, "file", "f", "", "Table to print (default from config)")
}
