// Command recommend scores questionnaire answers offline, without a database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entrematch/internal/catalog"
	"entrematch/internal/engine"
)

type options struct {
	catalogDir string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "recommend",
		Short:         "Recommend business sectors and entrepreneur clusters from questionnaire answers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogDir, "catalog-dir", "", "directory holding catalog.yaml and narratives.yaml (default: embedded catalog)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline warnings to stderr")

	root.AddCommand(newScoreCmd(opts), newSurveyCmd(opts))
	return root
}

func (o *options) engine() (*engine.Engine, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if o.catalogDir != "" {
		cat, err = catalog.LoadDir(o.catalogDir)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return engine.New(cat), nil
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
