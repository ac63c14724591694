package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-cms/cmd/bootstrap"
	"clinic-cms/internal/usecase"

	"github.com/spf13/cobra"
)

const warmCacheTimeout = 2 * time.Minute

var warmCache bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&warmCache, "warm-cache", false, "Precompute public pages before accepting traffic")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if warmCache {
		ctx, cancel := context.WithTimeout(cmd.Context(), warmCacheTimeout)
		stored, err := app.PublicSite().WarmCache(ctx)
		cancel()
		switch {
		case errors.Is(err, usecase.ErrCacheDisabled):
			app.Log.Warn("Content cache is not configured, skipping warm-up")
		case err != nil:
			app.Log.Warnf("Failed to warm public cache: %+v", err)
		default:
			app.Log.WithField("pages", stored).Info("Public cache warmed")
		}
	}

	app.Run()
	return nil
}
