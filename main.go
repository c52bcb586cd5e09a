// ABOUTME: Entry point for mediatui, a terminal media browser and player
// ABOUTME: Handles command-line parsing, startup validation, and component wiring

// Package main provides the entry point for mediatui, a terminal-resident
// controller that browses a directory of media files and drives an external
// playback process (mpv, mplayer, or vlc, whichever is available).
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"mediatui/config"
	"mediatui/library"
	"mediatui/player"
	"mediatui/tui"
)

const version = "2.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	var (
		debug      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "mediatui [directory]",
		Short: "Terminal media player",
		Long: `mediatui browses a directory of media files and plays them through the
first available external player (mpv, mplayer, or vlc).

Controls:
  ↑/↓         Navigate files
  PgUp/PgDn   Page up/down
  Home/End    Go to first/last file
  Enter       Play selected file
  Space       Stop playback
  s           Toggle shuffle mode
  r           Play random file
  q/Esc       Quit`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			return runBrowser(dir, configPath, debug)
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate("Terminal Media Player {{.Version}}\n")

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to mediatui-debug.log")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path (default: ./mediatui.toml or ~/.config/mediatui/config.toml)")

	return cmd
}

// runBrowser validates the directory, wires the library, player, and
// monitor together, and hands control to the UI. Any error returned here
// is reported and yields exit code 1; a normal quit returns nil.
func runBrowser(dir, configPath string, debug bool) error {
	if debug {
		if err := SetupDebugLog("mediatui-debug.log"); err != nil {
			return err
		}
	}

	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		// A broken config falls back to defaults; worth surfacing in the log
		debugf("[main] config error, using defaults: %v", err)
	}

	lib, err := library.Load(dir, cfg.IsMediaExtension)
	if err != nil {
		return err
	}

	lib.PrefetchMetadata()

	ctrl := player.NewController(cfg.Players, debugf)

	// The monitor runs for the lifetime of the UI and stops with it
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ctrl.Run(ctx)

	// Pending playback is stopped on every exit path, including errors
	defer ctrl.Stop()

	var libEvents <-chan struct{}

	watcher, err := library.Watch(lib.Dir())
	if err != nil {
		// Auto-refresh is best-effort; browsing works without it
		debugf("[main] directory watch unavailable: %v", err)
	} else {
		defer func() { _ = watcher.Close() }()

		libEvents = watcher.Events()
	}

	return tui.Run(tui.Options{DebugLog: debug}, lib, ctrl, ctrl.Events(), libEvents, debugf)
}
