// Package cli holds the cobra commands of the cleaner binary.
package cli

import (
	"github.com/spf13/cobra"
)

const ServiceName = "cleaner"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cleaner",
		Short:         "Normalize gender, age, date and quantity columns of sales exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		CleanCmd(),
		ProfileCmd(),
		SubmitCmd(),
		RunsCmd(),
	)

	return root
}
