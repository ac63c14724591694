package main

import (
	"fmt"

	"clinic-cms/cmd/bootstrap"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert roles, the admin user, settings and sample content",
	Long: `Seed the database with the baseline rows. Running it again only
inserts what is missing; existing rows are never changed.

The admin account comes from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Init()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Seeder().Seed(cmd.Context(), app.Config.Admin)
	if err != nil {
		return err
	}

	// Public pages may now be stale. Redis being down is not fatal here.
	if report.Total() > 0 {
		if err := app.ConnectRedis(); err != nil {
			app.Log.Warnf("Failed to purge public cache after seeding: %+v", err)
		} else if _, err := app.PublicSite().PurgeCache(cmd.Context()); err != nil {
			app.Log.Warnf("Failed to purge public cache after seeding: %+v", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "roles: %d\n", report.Roles)
	fmt.Fprintf(out, "users: %d\n", report.Users)
	fmt.Fprintf(out, "settings: %d\n", report.Settings)
	fmt.Fprintf(out, "expertise areas: %d\n", report.ExpertiseAreas)
	fmt.Fprintf(out, "treatment categories: %d\n", report.TreatmentCategories)
	fmt.Fprintf(out, "procedures: %d\n", report.Procedures)
	fmt.Fprintf(out, "faqs: %d\n", report.FAQs)
	fmt.Fprintf(out, "blog categories: %d\n", report.Categories)
	fmt.Fprintf(out, "inserted %d rows\n", report.Total())
	return nil
}
