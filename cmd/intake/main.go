// Package main implements the intake CLI, a client for the case analysis
// backend: case intake, evidence upload, analysis tracking, chat and export.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/analysis"
	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/auth"
	"github.com/plaide-ai/intake/internal/config"
	"github.com/plaide-ai/intake/internal/store"
	"github.com/plaide-ai/intake/internal/upload"
	"github.com/plaide-ai/intake/pkg/logger"
	"github.com/plaide-ai/intake/pkg/tracing"
)

var version = "dev"

// app bundles the wired client components shared by all commands.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	store  *store.Store
	tokens *auth.TokenStore

	authClient     *api.AuthClient
	caseClient     *api.CaseClient
	evidenceClient *api.EvidenceClient
	chatClient     *api.ChatClient
	exportClient   *api.ExportClient

	uploader *upload.Orchestrator
	poller   *analysis.Poller

	shutdown func()
}

var a *app

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Client for the case analysis backend",
	Long: `intake drives case intake against the analysis backend: create cases,
upload evidence files, run and track the evidence analysis, ask source-grounded
questions about a case, and export the synthesis.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		a, err = newApp()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a != nil && a.shutdown != nil {
			a.shutdown()
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exportCmd)
}

func newApp() (*app, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	shutdown := func() { log.Sync() }

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(context.Background(), "intake-client", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing")
		} else {
			shutdown = func() {
				tracing.Shutdown(context.Background(), tp)
				log.Sync()
			}
		}
	}

	tokens := auth.NewTokenStore(cfg.Token)
	transport := api.NewTransport(cfg.APIBaseURL, cfg.RequestTimeout, tokens, log)
	st := store.New()

	evidenceClient := api.NewEvidenceClient(transport)
	caseClient := api.NewCaseClient(transport)
	analysisClient := api.NewAnalysisClient(transport)

	return &app{
		cfg:            cfg,
		log:            log,
		store:          st,
		tokens:         tokens,
		authClient:     api.NewAuthClient(transport, tokens),
		caseClient:     caseClient,
		evidenceClient: evidenceClient,
		chatClient:     api.NewChatClient(transport),
		exportClient:   api.NewExportClient(transport),
		uploader: upload.New(evidenceClient, st, upload.Limits{
			MaxFiles:         cfg.MaxFiles,
			MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		}, log),
		poller:   analysis.New(analysisClient, caseClient, st, cfg.PollInterval, log),
		shutdown: shutdown,
	}, nil
}
