package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/db"
)

var (
	runsLanguage string
	runsModel    string
	runsStatus   string
	runsLimit    int
	runsJSON     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run archive",
	Long: `Runs lists, fetches, and deletes archived analysis runs.

Subcommands:
  list      List runs (default)
  get       Print one run's full report
  delete    Remove a run
  languages List archived languages with counts`,
	RunE: runRunsList,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs",
	RunE:  runRunsList,
}

var runsGetCmd = &cobra.Command{
	Use:   "get <run-id>",
	Short: "Print one run's full report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsGet,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Remove a run from the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var runsLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List archived languages with run counts",
	RunE:  runRunsLanguages,
}

func init() {
	for _, c := range []*cobra.Command{runsCmd, runsListCmd} {
		c.Flags().StringVarP(&runsLanguage, "language", "l", "", "filter by language")
		c.Flags().StringVarP(&runsModel, "model", "m", "", "filter by embedding model")
		c.Flags().StringVar(&runsStatus, "status", "", "filter by physics status")
		c.Flags().IntVarP(&runsLimit, "limit", "n", 50, "max results")
	}
	runsCmd.PersistentFlags().BoolVar(&runsJSON, "json", false, "print JSON output")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsGetCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	runsCmd.AddCommand(runsLanguagesCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	archive, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close(ctx) }()

	runs, err := archive.ListRuns(ctx, db.RunFilter{
		Language: runsLanguage,
		Model:    runsModel,
		Status:   runsStatus,
		Limit:    runsLimit,
	})
	if err != nil {
		return err
	}

	if runsJSON {
		return printJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}
	for _, r := range runs {
		lambda := "-"
		if r.Lambda != nil {
			lambda = fmt.Sprintf("%.6f", *r.Lambda)
		}
		fmt.Printf("%s  %-12s %-20s %-16s n=%-4d lambda=%s %s\n",
			r.Created.Format("2006-01-02 15:04"), r.Language, r.Model, r.Status, r.SampleSize, lambda, r.RunID)
	}
	return nil
}

func runRunsGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	archive, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close(ctx) }()

	rec, err := archive.GetRun(ctx, args[0])
	if err != nil {
		return err
	}
	result, err := db.DecodeReport(rec)
	if err != nil {
		return err
	}

	if runsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Print(renderResult(result))
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	archive, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close(ctx) }()

	if err := archive.DeleteRun(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}

func runRunsLanguages(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	archive, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close(ctx) }()

	counts, err := archive.ListLanguages(ctx)
	if err != nil {
		return err
	}
	if runsJSON {
		return printJSON(counts)
	}
	for _, c := range counts {
		fmt.Printf("%-20s %d\n", c.Language, c.Count)
	}
	return nil
}
