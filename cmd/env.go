package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/config"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/store"
	"github.com/spf13/cobra"
)

// env is what every command that touches user data needs.
type env struct {
	cfg   config.Config
	log   *logging.Logger
	store *store.Store
	state *appstate.State
}

// Close releases the store and flushes the log.
func (e *env) Close() {
	e.store.Close()
	e.log.Sync()
}

// openEnv loads configuration, starts logging, opens the database and
// loads the three state slots. Slots that fail to parse are reported on
// stderr and replaced by their defaults.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		log = logging.Nop()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	state, err := appstate.Open(cmd.Context(), st.SlotRepo(), appstate.Options{
		Log:             log,
		DefaultName:     cfg.ProfileName,
		DefaultExamType: cfg.ProfileExamType,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	for _, w := range state.Warnings() {
		fmt.Fprintln(os.Stderr, "Warning:", w)
	}

	return &env{cfg: cfg, log: log, store: st, state: state}, nil
}
