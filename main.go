// stresscurve generates a stress-strain curve from four material properties
// and renders it as a chart.
//
// Usage:
//
//	stresscurve generate <properties.txt>... [--name=<substance>] [-o <table.xlsx|table.csv>] [--resolution=N]
//	stresscurve plot [-f <table>] [-o <chart.png>] --name=<substance>
//	stresscurve show [-f <table>]
//	stresscurve config [show|set]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var app = NewApp(os.Stdout)

var rootCmd = &cobra.Command{
	Use:   "stresscurve",
	Short: "Stress-strain curves from yield, ultimate, modulus and elongation",
	Long: "stresscurve derives the strain-hardening exponent of a material from its\n" +
		"yield strength, ultimate tensile strength, Young's modulus and maximum\n" +
		"elongation, samples the curve and exports it as a table and a chart.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		app.out = cmd.OutOrStdout()
		return app.startup(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Config file path (default $HOME/StressStrain/config.json)")
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
