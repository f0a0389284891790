// Command pagepilot is a terminal harness for the PagePilot assistant core.
// It drives the same engine the browser extension embeds.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
	"github.com/pagepilot-ai/pagepilot/pkg/config"
	"github.com/pagepilot-ai/pagepilot/pkg/history"
	"github.com/pagepilot-ai/pagepilot/pkg/models"
	"github.com/pagepilot-ai/pagepilot/pkg/tools"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	var (
		provider = cfg.Provider
		model    = cfg.Model
		mode     string
		session  string
		maxTurns = cfg.MaxTurns
	)

	root := &cobra.Command{
		Use:           "pagepilot",
		Short:         "PagePilot assistant core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&provider, "provider", provider, "model provider (openai, anthropic, gemini, ollama)")
	root.PersistentFlags().StringVar(&model, "model", model, "model name")
	root.PersistentFlags().StringVar(&session, "session", "cli", "session id for transcript storage")

	chat := &cobra.Command{
		Use:   "chat [message]",
		Short: "Run one conversational exchange",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := buildAssistant(cmd.Context(), cfg, provider, model, maxTurns)
			if err != nil {
				return err
			}
			defer cleanup()

			reply, err := a.Chat(cmd.Context(), session, mode, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
	chat.Flags().StringVar(&mode, "mode", "general", "assistant mode (general, writing, research, coding, pdf, web)")

	run := &cobra.Command{
		Use:   "run [task]",
		Short: "Run the agentic loop over a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := buildAssistant(cmd.Context(), cfg, provider, model, maxTurns)
			if err != nil {
				return err
			}
			defer cleanup()

			result, status, err := a.RunTask(cmd.Context(), session, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("[%s]\n%s\n", status, result)
			return nil
		},
	}
	run.Flags().IntVar(&maxTurns, "max-turns", maxTurns, "agentic turn budget")

	root.AddCommand(chat, run)
	return root
}

func buildAssistant(ctx context.Context, cfg config.Config, provider, model string, maxTurns int) (*assistant.Assistant, func(), error) {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	backend, err := models.NewBackend(ctx, provider)
	if err != nil {
		return nil, nil, err
	}

	toolset := []assistant.Tool{
		tools.NewWikipediaTool(),
		tools.NewTextStatsTool(),
		tools.NewPlanTaskTool(0),
	}
	if o, ok := backend.(*models.OllamaBackend); ok {
		toolset = append(toolset, tools.NewWebSearchTool(o, 0))
	}

	var store history.Store = history.NewMemoryStore()
	if cfg.PostgresDSN != "" {
		pg, err := history.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.CreateSchema(ctx); err != nil {
			return nil, nil, err
		}
		store = pg
	}

	a, err := assistant.New(assistant.Options{
		Backend: backend,
		Params: models.Params{
			Model:       model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		Tools:    toolset,
		History:  store,
		MaxTurns: maxTurns,
		Logger:   log,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = log.Sync()
	}
	return a, cleanup, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = lvl
	return cfg.Build()
}
