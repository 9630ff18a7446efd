package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmaehler/airband/internal/config"
	apperrors "github.com/tmaehler/airband/internal/errors"
	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/resolve"
	"github.com/tmaehler/airband/internal/session"
	"github.com/tmaehler/airband/internal/store"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "airband",
	Short: "Listen to internet radio from the terminal",
	Long: `Airband is a terminal internet radio player. It keeps named playlists
of stations, streams them through an external player (ffplay by default),
and remembers where you left off.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.airbandrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// newSession wires the store, playback controller, and resolver into a
// session. The controller is returned as well so commands can run a
// health monitor next to it.
func newSession() (*session.Session, *player.Controller, error) {
	st, err := store.Open(cfg.Library.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open station library: %w", err)
	}
	if warn := st.LoadWarning(); warn != nil && Verbose() {
		fmt.Fprintf(os.Stderr, "Warning: station library reset: %v\n", warn)
	}

	ctrl := player.New(player.Options{
		Command:        cfg.Player.Command,
		Args:           cfg.Player.Args,
		StopGrace:      cfg.Player.StopGrace(),
		StartupConfirm: cfg.Player.StartupConfirm(),
		PollInterval:   cfg.Player.PollInterval(),
	})

	var resolver *resolve.Resolver
	if !cfg.Resolve.Disabled {
		resolver = resolve.New(cfg.Resolve.Timeout())
	}

	sess := session.New(st, ctrl, resolver)
	sess.SetVerbose(Verbose(), func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})
	return sess, ctrl, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
