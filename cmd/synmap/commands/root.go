package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/config"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
	"github.com/cognicore/synmap/pkg/synmap/logging"
	"github.com/cognicore/synmap/pkg/synmap/synonyms"
)

// metaSuffix names the metadata document that records the table reference.
const metaSuffix = ".meta.json"

var (
	configPath string
	envFile    string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
)

// Execute runs the synmap CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "synmap",
		Short:        "Learn and apply entity synonym tables",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err = logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cmd.ErrOrStderr(),
			})
			return err
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with SYNMAP_* overrides")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(trainCmd(), resolveCmd(), inspectCmd())
	return root
}

func metaName() string {
	return cfg.Artifact.Name + metaSuffix
}

func writeMeta(ctx context.Context, st artifact.Store, ref *synonyms.ArtifactRef) error {
	b, err := json.MarshalIndent(ref.Meta(), "", "  ")
	if err != nil {
		return err
	}
	return st.Write(ctx, metaName(), b)
}

// readMeta returns the persisted reference. A model without metadata has
// never been trained, which is an error for the caller to see.
func readMeta(ctx context.Context, st artifact.Store) (*synonyms.ArtifactRef, error) {
	b, err := st.Read(ctx, metaName())
	if errors.Is(err, internalerr.ErrNotFound) {
		return nil, fmt.Errorf("no trained model at %s (run synmap train first): %w", cfg.Artifact.Path, err)
	}
	if err != nil {
		return nil, err
	}
	var meta synonyms.Meta
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metaName(), err)
	}
	return meta.Ref(), nil
}

func loadMapper(ctx context.Context) (*synonyms.Mapper, error) {
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ref, err := readMeta(ctx, st)
	if err != nil {
		return nil, err
	}
	return synonyms.Load(ctx, st, ref, synonyms.WithLogger(logger)), nil
}
