// Command zipwrite archives the named files into a ZIP64 archive,
// streaming each file through the deflate encoder without buffering.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/zipwrite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "zipwrite -o ARCHIVE FILE...",
		Short: "Write files into a streaming ZIP64 archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(output, args)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path to create")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func run(output string, paths []string) error {
	a, err := zipwrite.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer a.Close()

	for _, path := range paths {
		if err := addFile(a, path); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	}

	if err := a.Finish(); err != nil {
		return fmt.Errorf("finish %s: %w", output, err)
	}
	return nil
}

func addFile(a *zipwrite.Archive, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.Begin(path); err != nil {
		return err
	}
	_, err = io.Copy(a, f)
	return err
}
