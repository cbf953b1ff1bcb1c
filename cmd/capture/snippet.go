// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capture/pkg/types"
)

var snippetCmd = &cobra.Command{
	Use:   "snippet {function <fn> | interval <start:end>}",
	Short: "Extract a function or line range and print it without saving",
	Long: `Snippet runs the same extraction as add but prints the result instead of
storing it. With --output the plain lines are written to a file.`,
	Args: cobra.ExactArgs(2),
	RunE: runSnippet,
}

func runSnippet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	session, err := extract(cmd, cfg, args[0], args[1])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		var data string
		if result := session.Result(); len(result) > 0 {
			data = strings.Join(result, "\n") + "\n"
		}
		if err := os.WriteFile(output, []byte(data), 0o644); err != nil {
			return types.IOError("writing snippet", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(session.Result()), output)
		return nil
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	return r.Lines(cmd.OutOrStdout(), session.Result(), session.Language())
}

func init() {
	extractionFlags(snippetCmd)
	snippetCmd.Flags().StringP("output", "o", "", "write the snippet to this file instead of stdout")
	rootCmd.AddCommand(snippetCmd)
}
