package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/synmap/pkg/synmap/synonyms"
	"github.com/cognicore/synmap/pkg/synmap/trainingdata"
)

func trainCmd() *cobra.Command {
	var (
		dataPaths []string
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Build a synonym table from training files and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dataPaths) == 0 {
				return fmt.Errorf("at least one --data file required")
			}
			ctx := cmd.Context()

			size := cfg.Training.ChunkSize
			if cmd.Flags().Changed("chunk-size") {
				size = chunkSize
			}
			corpus, err := trainingdata.LoadFiles(dataPaths, trainingdata.Options{ChunkSize: size, Logger: logger})
			if err != nil {
				return err
			}

			m := synonyms.New(synonyms.WithLogger(logger), synonyms.WithCodec(cfg.Codec()))
			if err := m.Train(ctx, corpus); err != nil {
				return err
			}

			st, err := cfg.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ref, err := m.Persist(ctx, st, cfg.Artifact.Name)
			if err != nil {
				return err
			}
			if err := writeMeta(ctx, st, ref); err != nil {
				return fmt.Errorf("write model metadata: %w", err)
			}

			stats := m.Stats()
			out := cmd.OutOrStdout()
			if ref == nil {
				fmt.Fprintf(out, "No synonyms learned from %d examples; nothing persisted.\n", corpus.NumExamples())
				return nil
			}
			fmt.Fprintf(out, "Learned %d variants for %d canonical values (%d conflicts) from %d examples in %d chunks.\n",
				stats.Variants, stats.Canonicals, stats.Conflicts+len(corpus.Conflicts()), corpus.NumExamples(), corpus.NumChunks())
			fmt.Fprintf(out, "Persisted %s to %s\n", ref.File, cfg.Artifact.Path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&dataPaths, "data", "d", nil, "training file (YAML or JSON); repeatable")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "examples per training chunk (0 = one chunk per file)")
	return cmd
}
