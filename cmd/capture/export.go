// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capture/internal/bookmark"
	"github.com/pdiddy/capture/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookmarks to YAML or JSON",
	Long: `Export writes every bookmark (or those matching --filter) with its content
to stdout, or to --output when given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	filter, _ := cmd.Flags().GetString("filter")
	output, _ := cmd.Flags().GetString("output")

	format, err := bookmark.ParseExportFormat(formatFlag)
	if err != nil {
		return err
	}

	store, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if output == "" {
		return store.Export(context.Background(), cmd.OutOrStdout(), format, filter)
	}

	f, err := os.Create(output)
	if err != nil {
		return types.IOError("exporting bookmarks", err)
	}
	if err := store.Export(context.Background(), f, format, filter); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return types.IOError("exporting bookmarks", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("filter", "", "glob over bookmark names")
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
