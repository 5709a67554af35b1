package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/finreport-discovery/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect discovery runs stored in the database",
}

var runsDatabaseURL string

var runsListLimit int

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent discovery runs",
	RunE:  runRunsList,
}

var (
	runsShowID  string
	runsShowOrg string
)

var runsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one run and its per-organization results",
	RunE:  runRunsShow,
}

var runsDeleteID string

var runsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a run and all its results",
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	runsListCmd.Flags().IntVar(&runsListLimit, "limit", 20, "Maximum number of runs to list")

	runsShowCmd.Flags().StringVar(&runsShowID, "run-id", "", "Run ID (required)")
	runsShowCmd.Flags().StringVar(&runsShowOrg, "org", "", "Print one organization's result as JSON instead of the run overview")
	if err := runsShowCmd.MarkFlagRequired("run-id"); err != nil {
		panic(fmt.Sprintf("failed to mark run-id flag as required: %v", err))
	}

	runsDeleteCmd.Flags().StringVar(&runsDeleteID, "run-id", "", "Run ID (required)")
	if err := runsDeleteCmd.MarkFlagRequired("run-id"); err != nil {
		panic(fmt.Sprintf("failed to mark run-id flag as required: %v", err))
	}

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

// connectRunsDB resolves the database URL and opens a pool for one command.
func connectRunsDB(ctx context.Context) (*db.DB, error) {
	url := runsDatabaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("database URL required: set --db-url flag or DATABASE_URL environment variable")
	}
	return db.Connect(ctx, url)
}

func parseRunID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run id %q: %w", s, err)
	}
	return id, nil
}

func runRunsList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsListLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	for _, run := range runs {
		completed := "-"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %-10s  orgs=%-4d  started=%s  completed=%s\n",
			run.ID, run.Status, run.OrganizationCount,
			run.CreatedAt.Format("2006-01-02 15:04:05"), completed)
	}
	return nil
}

func runRunsShow(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	runID, err := parseRunID(runsShowID)
	if err != nil {
		return err
	}

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	if runsShowOrg != "" {
		result, err := database.GetOrganizationResult(ctx, runID, runsShowOrg)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no result for organization %s in run %s", runsShowOrg, runID)
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  status:        %s\n", run.Status)
	fmt.Printf("  input:         %s\n", run.InputPath)
	fmt.Printf("  target years:  %v\n", run.TargetYears)
	fmt.Printf("  organizations: %d\n", run.OrganizationCount)

	results, err := database.ListOrganizationResults(ctx, runID)
	if err != nil {
		return err
	}
	fmt.Printf("  results:       %d\n\n", len(results))

	for _, result := range results {
		primary := "(none)"
		if result.Primary != nil {
			primary = result.Primary.URL
		}
		fmt.Printf("%s  %s\n  FIN_REP %s\n", result.Organization.ID, result.Organization.Name, primary)
	}
	return nil
}

func runRunsDelete(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	runID, err := parseRunID(runsDeleteID)
	if err != nil {
		return err
	}

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteRun(ctx, runID); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", runID)
	return nil
}
