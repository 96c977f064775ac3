package cli

import (
	"bytes"
	"fmt"
	"os"

	"datacleaner/pkg/client"
	"datacleaner/pkg/config"

	"github.com/spf13/cobra"
)

func SubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a CSV file to a running cleaner API",
		Args:  cobra.NoArgs,
		RunE:  runSubmit,
	}

	cmd.Flags().String("in", "", "raw CSV file")
	cmd.Flags().String("out", "", "cleaned CSV file")
	addAPIFlag(cmd)
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return fmt.Errorf("failed to get in flag: %w", err)
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	cleaned, runID, err := c.CleanCSV(cmd.Context(), bytes.NewReader(raw))
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, cleaned, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s -> %s\n", runID, out)
	return nil
}

func RunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored cleaning runs, or show one with --id",
		Args:  cobra.NoArgs,
		RunE:  runRuns,
	}

	cmd.Flags().Int("limit", 10, "runs per page")
	cmd.Flags().Int64("offset", 0, "runs to skip")
	cmd.Flags().String("id", "", "show a single run")
	addAPIFlag(cmd)

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	c, err := apiClient(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	if id != "" {
		run, err := c.GetRun(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printRun(w, run, "")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	offset, err := cmd.Flags().GetInt64("offset")
	if err != nil {
		return fmt.Errorf("failed to get offset flag: %w", err)
	}

	list, err := c.ListRuns(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d runs (showing %d from offset %d)\n", list.TotalCount, len(list.Data), list.Offset)
	for _, run := range list.Data {
		fmt.Fprintf(w, "%s  %-11s  %6d records  %s\n",
			run.ID, run.Source, run.RecordCount, run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func addAPIFlag(cmd *cobra.Command) {
	cmd.Flags().String("api", "", "cleaner API base URL (default $"+config.EnvAPIURL+" or "+config.DefaultAPIURL+")")
}

func apiClient(cmd *cobra.Command) (*client.CleanerClient, error) {
	url, err := cmd.Flags().GetString("api")
	if err != nil {
		return nil, fmt.Errorf("failed to get api flag: %w", err)
	}
	if url == "" {
		url = os.Getenv(config.EnvAPIURL)
	}
	if url == "" {
		url = config.DefaultAPIURL
	}
	return client.NewCleanerClient(url, config.DefaultAPITimeout), nil
}
