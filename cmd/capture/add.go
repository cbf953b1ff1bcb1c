// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name> {function <fn> | interval <start:end>}",
	Short: "Capture a function or line range as a named bookmark",
	Long: `Add extracts a function by name, or an inclusive 1-based line range, from
--file and stores it under <name>. Common indentation is removed; comment
lines are removed as well with --no-comments.

A name that already exists is rejected and the existing bookmark is kept.`,
	Example: `  capture add adder --file src/math.rs function add
  capture add header --file main.go interval 1:12 --no-comments`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, mode, target := args[0], args[1], args[2]
	cfg := loadConfig()

	// Built first so a bad render setting fails before anything is stored.
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	session, err := extract(cmd, cfg, mode, target)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := store.Create(context.Background(), name, session.Result(), session.Language())
	if err != nil {
		return err
	}

	return r.Bookmark(cmd.OutOrStdout(), b, false)
}

func init() {
	extractionFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}
