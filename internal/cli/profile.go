package cli

import (
	"fmt"

	"datacleaner/pkg/table"

	"github.com/spf13/cobra"
)

func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the first unique values of each known column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := cmd.Flags().GetString("in")
			if err != nil {
				return fmt.Errorf("failed to get in flag: %w", err)
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}

			tbl, err := table.ReadFile(in)
			if err != nil {
				return err
			}
			return table.WriteProfile(cmd.OutOrStdout(), table.Profile(tbl, table.ProfileColumns, limit))
		},
	}

	cmd.Flags().String("in", "", "CSV file to profile")
	cmd.Flags().Int("limit", table.DefaultProfileLimit, "values shown per column, 0 for all")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
