package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	var entitiesPath string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Rewrite extracted entities (JSON array) with the persisted synonym table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var in io.Reader = cmd.InOrStdin()
			if entitiesPath != "" && entitiesPath != "-" {
				f, err := os.Open(entitiesPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			// Raw objects so attributes the mapper does not know survive.
			var entities []json.RawMessage
			if err := json.NewDecoder(in).Decode(&entities); err != nil {
				return fmt.Errorf("decode entities: %w", err)
			}

			m, err := loadMapper(ctx)
			if err != nil {
				return err
			}
			hits, err := m.ResolveJSON(entities)
			if err != nil {
				return fmt.Errorf("resolve entities: %w", err)
			}
			logger.WithField("rewritten", hits).WithField("entities", len(entities)).Debug("entities resolved")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entities)
		},
	}

	cmd.Flags().StringVarP(&entitiesPath, "entities", "e", "-", "JSON file with extracted entities (- for stdin)")
	return cmd
}
