package main

import (
	"github.com/spf13/cobra"
)

var plotFlags struct {
	table  string
	output string
	name   string
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the exported table as an annotated PNG chart",
	RunE:  runPlot,
}

func init() {
	f := plotCmd.Flags()
	f.StringVarP(&plotFlags.table, "file", "f", "", "Table to plot (default from config)")
	f.StringVarP(&plotFlags.output, "output", "o", "", "Chart PNG path (default from config)")
	f.StringVar(&plotFlags.name, "name", "", "Name of substance (required)")

	_ = plotCmd.MarkFlagRequired("name")
}

func runPlot(_ *cobra.Command, _ []string) error {
	table := plotFlags.table
	if table == "" {
		table = app.config.TablePath
	}
	chartPath := plotFlags.output
	if chartPath == "" {
		chartPath = app.config.ChartPath
	}
	return app.Plot(table, chartPath, plotFlags.name)
}
