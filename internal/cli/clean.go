package cli

import (
	"fmt"
	"io"

	"datacleaner/internal/cleaning/service"
	"datacleaner/internal/cleaning/validator"
	"datacleaner/pkg/config"
	"datacleaner/pkg/model"
	"datacleaner/pkg/table"

	"github.com/spf13/cobra"
)

func CleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean a CSV file and write the result with derived columns appended",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}

	cmd.Flags().String("in", "", "raw CSV file")
	cmd.Flags().String("out", "", "cleaned CSV file")
	cmd.Flags().Int("order-year", config.DefaultOrderDateFixedYear, "year assumed for order dates")
	cmd.Flags().Int("workers", config.DefaultWorkers, "parallel cleaning workers")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return fmt.Errorf("failed to get in flag: %w", err)
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	cfg, err := cleanConfig(cmd)
	if err != nil {
		return err
	}

	tbl, err := table.ReadFile(in)
	if err != nil {
		return err
	}

	svc := service.NewCleaningService(nil, validator.NewCleaningValidator(), nil, cfg)
	run, err := svc.CleanTable(cmd.Context(), tbl, model.SourceCLI)
	if err != nil {
		return err
	}

	if err := tbl.WriteFile(out); err != nil {
		return err
	}

	return printRun(cmd.OutOrStdout(), run, out)
}

// cleanConfig reads the environment and applies the flags that were set.
func cleanConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.FromEnv(ServiceName)

	if cmd.Flags().Changed("order-year") {
		year, err := cmd.Flags().GetInt("order-year")
		if err != nil {
			return nil, fmt.Errorf("failed to get order-year flag: %w", err)
		}
		cfg.OrderDateFixedYear = year
	}
	if cmd.Flags().Changed("workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return nil, fmt.Errorf("failed to get workers flag: %w", err)
		}
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printRun(w io.Writer, run *model.CleaningRun, out string) error {
	if _, err := fmt.Fprintf(w, "Run %s: %d records cleaned", run.ID, run.RecordCount); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(w, " -> %s", out)
	}
	fmt.Fprintln(w)

	for _, c := range run.Columns {
		fmt.Fprintf(w, "  %s -> %s: %d valid, %d invalid\n", c.Column, c.Field, c.Valid, c.Invalid)
	}
	for _, col := range run.SkippedColumns {
		fmt.Fprintf(w, "  %s: Column not found, skipped\n", col)
	}
	for _, field := range run.OverwrittenFields {
		fmt.Fprintf(w, "  %s: existing column replaced by cleaned values\n", field)
	}
	return nil
}
