package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/app"
	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/resources"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{
		State:     e.state,
		Resources: e.cfg.Resources,
		Opener:    resources.OpenInBrowser,
		Log:       e.log,
	}

	provider, ok, err := llm.NewProviderFromEnv(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
	switch {
	case err != nil:
		e.log.Warn("llm provider init failed", "error", err)
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	case !ok:
		e.log.Info("no llm provider configured")
	default:
		e.log.Info("llm provider ready", "model", provider.ModelID())
		opts.AI = ai.NewService(provider, e.cfg.AI)
	}

	return app.Run(opts)
}
