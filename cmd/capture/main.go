// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the capture CLI. It extracts named
// functions or line ranges from source files and keeps them as bookmarks
// in a local store.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/capture/internal/bookmark"
	"github.com/pdiddy/capture/internal/render"
	"github.com/pdiddy/capture/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE once flags are parsed.
var logger = logrus.New()

// rootCmd is the base command for the capture CLI.
var rootCmd = &cobra.Command{
	Use:   "capture",
	Short: "Bookmark functions and line ranges from source files",
	Long: `capture extracts a function (located by name) or an explicit line range
from a source file, strips the common indentation and, optionally, comments,
and stores the result as a named bookmark addressed by a hash of its content.

Bookmarks live in a local store directory (default .capture) holding a SQLite
index and one content file per distinct snippet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))
		if f := viper.ConfigFileUsed(); f != "" {
			logger.WithField("file", f).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./capture.yaml or ~/.config/capture/capture.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("store-dir", types.DefaultStoreDir, "directory holding the bookmark index and content")
	flags.String("theme", types.DefaultTheme, "syntax highlighting theme")
	flags.String("color", string(types.DefaultColor), "color output: auto, always or never")
	flags.Bool("allow-unknown", false, "capture from files with no known language rule")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("store.dir", flags.Lookup("store-dir"))
	viper.BindPFlag("render.theme", flags.Lookup("theme"))
	viper.BindPFlag("render.color", flags.Lookup("color"))
	viper.BindPFlag("capture.allow_unknown", flags.Lookup("allow-unknown"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("capture")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "capture"))
		}
	}

	viper.SetEnvPrefix("CAPTURE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// loadConfig reads the merged flag, environment and file settings.
func loadConfig() types.Config {
	cfg := types.Config{
		Store:   types.StoreConfig{Dir: viper.GetString("store.dir")},
		Render:  types.RenderConfig{Theme: viper.GetString("render.theme"), Color: types.ColorMode(viper.GetString("render.color"))},
		Capture: types.CaptureConfig{AllowUnknown: viper.GetBool("capture.allow_unknown")},
	}
	return cfg.WithDefaults()
}

func openStore(cfg types.Config) (*bookmark.Store, error) {
	return bookmark.NewStore(cfg.Store, logger)
}

func newRenderer(cfg types.Config) (*render.Renderer, error) {
	return render.New(cfg.Render)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
