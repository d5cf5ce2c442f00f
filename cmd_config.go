package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configSetFlags struct {
	resolution  int
	tablePath   string
	chartPath   string
	chartWidth  int
	chartHeight int
	logLevel    string
	logFormat   string
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := json.MarshalIndent(app.config, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", app.GetConfigPath(), data)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update and save configuration values",
	RunE:  runConfigSet,
}

func init() {
	f := configSetCmd.Flags()
	f.IntVar(&configSetFlags.resolution, "resolution", 0, "Number of stress increments")
	f.StringVar(&configSetFlags.tablePath, "table", "", "Default table path")
	f.StringVar(&configSetFlags.chartPath, "chart", "", "Default chart path")
	f.IntVar(&configSetFlags.chartWidth, "width", 0, "Chart width in pixels")
	f.IntVar(&configSetFlags.chartHeight, "height", 0, "Chart height in pixels")
	f.StringVar(&configSetFlags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&configSetFlags.logFormat, "log-format", "", "text or json")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	cfg := app.config
	if configSetFlags.resolution > 0 {
		cfg.Resolution = configSetFlags.resolution
	}
	if configSetFlags.tablePath != "" {
		cfg.TablePath = configSetFlags.tablePath
	}
	if configSetFlags.chartPath != "" {
		cfg.ChartPath = configSetFlags.chartPath
	}
	if configSetFlags.chartWidth > 0 {
		cfg.ChartWidth = configSetFlags.chartWidth
	}
	if configSetFlags.chartHeight > 0 {
		cfg.ChartHeight = configSetFlags.chartHeight
	}
	if configSetFlags.logLevel != "" {
		cfg.LogLevel = configSetFlags.logLevel
	}
	if configSetFlags.logFormat != "" {
		cfg.LogFormat = configSetFlags.logFormat
	}

	if err := app.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", app.GetConfigPath())
	return nil
}
