// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capture/pkg/types"
)

// --- get subcommand ---

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a bookmark with its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	b, ok, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return types.NewError(types.KindNotFound, "getting bookmark", args[0], nil)
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	return r.Bookmark(cmd.OutOrStdout(), b, true)
}

// --- delete subcommand ---

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a bookmark",
	Long: `Delete removes the bookmark from the index. Its content file is removed
once no other bookmark shares it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted bookmark: %s\n", args[0])
	return nil
}

// --- list subcommand ---

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bookmarks",
	Long: `List prints every bookmark with its content, ordered by name. --oneline
prints one aligned line per bookmark instead. --filter restricts the names
with a glob such as "http-*".`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	oneline, _ := cmd.Flags().GetBool("oneline")
	filter, _ := cmd.Flags().GetString("filter")

	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bookmarks, err := store.List(context.Background(), filter)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(bookmarks) == 0 {
		fmt.Fprintln(out, "No bookmarks found.")
		return nil
	}
	if oneline {
		return r.Table(out, bookmarks)
	}
	for _, b := range bookmarks {
		if err := r.Bookmark(out, b, true); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	listCmd.Flags().Bool("oneline", false, "print one line per bookmark")
	listCmd.Flags().String("filter", "", "glob over bookmark names")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
}
