package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the persisted synonym table",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper(cmd.Context())
			if err != nil {
				return err
			}

			table := m.Snapshot()
			keys := make([]string, 0, len(table))
			for k := range table {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			out := cmd.OutOrStdout()
			stats := m.Stats()
			fmt.Fprintf(out, "%d variants, %d canonical values\n", stats.Variants, stats.Canonicals)
			for _, k := range keys {
				fmt.Fprintf(out, "%s -> %s\n", k, table[k])
			}
			return nil
		},
	}
}
