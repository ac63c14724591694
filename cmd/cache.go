package main

import (
	"fmt"

	"clinic-cms/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the public page cache",
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Precompute public pages into Redis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openCache()
		if err != nil {
			return err
		}
		defer app.Close()

		stored, err := app.PublicSite().WarmCache(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cached %d pages\n", stored)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every cached public page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openCache()
		if err != nil {
			return err
		}
		defer app.Close()

		deleted, err := app.PublicSite().PurgeCache(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d keys\n", deleted)
		return nil
	},
}

func openCache() (*bootstrap.App, error) {
	app, err := bootstrap.Init()
	if err != nil {
		return nil, err
	}
	if err := app.ConnectRedis(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func init() {
	cacheCmd.AddCommand(cacheWarmCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}
