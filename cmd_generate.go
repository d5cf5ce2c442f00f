package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nut245/Theoretical-Analysis-of-Forces-on-Materials/backend"
)

var generateFlags struct {
	name       string
	output     string
	resolution int
}

var generateCmd = &cobra.Command{
	Use:   "generate <properties-file>...",
	Short: "Compute the curve table for one or more property files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.name, "name", "", "Substance name (default: property file name)")
	f.StringVarP(&generateFlags.output, "output", "o", "", "Output table (.xlsx or .csv)")
	f.IntVar(&generateFlags.resolution, "resolution", 0, "Number of stress increments up to the ultimate strength")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateFlags.output != "" {
		app.config.TablePath = generateFlags.output
	}
	if generateFlags.resolution > 0 {
		app.config.Resolution = generateFlags.resolution
	}

	reports, err := app.Generate(args, generateFlags.name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed []error
	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintf(out, "%-20s FAILED  %v\n", r.Substance, r.Err)
			var ioErr *backend.IOError
			if !errors.As(r.Err, &ioErr) {
				failed = append(failed, r.Err)
			}
			continue
		}
		fmt.Fprintf(out, "%-20s n=%.6f  points=%d  -> %s\n", r.Substance, r.Exponent, r.Points, r.TablePath)
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	default:
		return fmt.Errorf("%d of %d substances failed: %w", len(failed), len(reports), errors.Join(failed...))
	}
}
