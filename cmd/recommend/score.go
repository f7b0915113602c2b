package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entrematch/internal/domain"
)

func newScoreCmd(opts *options) *cobra.Command {
	var (
		method string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "score <answers.json|->",
		Short: "Score an answer sheet and print the recommendation as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := readSheet(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			eng, err := opts.engine()
			if err != nil {
				return err
			}
			logger := opts.logger()
			defer logger.Sync()

			set := eng.Recommend(sheet, time.Now().UTC())
			if set.Assessment.LowConfidence {
				logger.Warn("answers defaulted to neutral", zap.Any("completeness", set.Assessment.Completeness))
			}

			var out any = set
			if method != "" {
				rec, ok := set.ByMethod(domain.Method(method))
				if !ok {
					return fmt.Errorf("unknown method %q", method)
				}
				out = rec
			}
			return writeJSON(cmd.OutOrStdout(), out, pretty)
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "print only one method (single or hybrid)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func readSheet(path string, stdin io.Reader) (domain.AnswerSheet, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.AnswerSheet{}, fmt.Errorf("read answers: %w", err)
	}
	var sheet domain.AnswerSheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		return domain.AnswerSheet{}, fmt.Errorf("decode answers: %w", err)
	}
	return sheet, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
