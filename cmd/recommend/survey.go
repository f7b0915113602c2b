package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

func newSurveyCmd(opts *options) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Answer the questionnaire in the terminal and print both recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := opts.engine()
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			sheet := domain.AnswerSheet{
				Entrepreneurial: askSection(in, out, "Bagian 1: Profil Kewirausahaan", eng.Catalog().SectionQuestions(domain.SectionEntrepreneurial)),
				Personality:     askSection(in, out, "Bagian 2: Kepribadian", eng.Catalog().SectionQuestions(domain.SectionPersonality)),
			}
			if save != "" {
				f, err := os.Create(save)
				if err != nil {
					return fmt.Errorf("save answers: %w", err)
				}
				defer f.Close()
				if err := writeJSON(f, sheet, true); err != nil {
					return fmt.Errorf("save answers: %w", err)
				}
			}

			printSummary(out, eng.Recommend(sheet, time.Now().UTC()))
			return nil
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "write the answers to this JSON file for later scoring")
	return cmd
}

// askSection prompts each question until a value in 1..5 or an empty line
// is given. Skipped questions are left out of the answers.
func askSection(in *bufio.Reader, out io.Writer, title string, questions []catalog.Question) domain.Answers {
	answers := domain.Answers{}
	fmt.Fprintf(out, "\n--- %s (1 = sangat tidak setuju, 5 = sangat setuju) ---\n", title)
	for i, q := range questions {
		for {
			fmt.Fprintf(out, "[%d/%d] %s: ", i+1, len(questions), q.Text)
			line, err := in.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			v, convErr := strconv.Atoi(line)
			if convErr == nil && v >= domain.MinLikert && v <= domain.MaxLikert {
				answers[q.Key] = v
				break
			}
			if err != nil {
				break
			}
			fmt.Fprintf(out, "  masukkan angka %d-%d\n", domain.MinLikert, domain.MaxLikert)
		}
	}
	return answers
}

func printSummary(out io.Writer, set domain.RecommendationSet) {
	a := set.Assessment
	fmt.Fprintf(out, "\nLevel: SE=%s INN=%s NACH=%s LOC=%s\n",
		a.Levels.SelfEfficacy, a.Levels.Innovativeness, a.Levels.NeedAchievement, a.Levels.Locus)
	if a.LowConfidence {
		fmt.Fprintln(out, "Catatan: sebagian jawaban kosong dan diisi nilai netral.")
	}
	for _, m := range domain.Methods {
		rec, _ := set.ByMethod(m)
		fmt.Fprintf(out, "\n== Metode %s ==\n", m)
		if !rec.Resolved() {
			fmt.Fprintln(out, "  tidak ada rekomendasi untuk metode ini")
			continue
		}
		for _, s := range rec.TopSectors {
			fmt.Fprintf(out, "  sektor: %s%s\n", s, matchSuffix(a.RankedSectors, s))
		}
		if len(rec.Clusters) == 0 {
			fmt.Fprintln(out, "  profil belum cukup untuk rekomendasi klaster")
			continue
		}
		for _, c := range rec.Clusters {
			fmt.Fprintf(out, "  klaster: %s\n", c)
		}
	}
}

func matchSuffix(ranked []domain.RankedSector, name string) string {
	for _, r := range ranked {
		if r.Name == name {
			return fmt.Sprintf(" (%d%%)", r.Match)
		}
	}
	return ""
}
