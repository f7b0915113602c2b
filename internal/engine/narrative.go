package engine

import (
	"strings"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

// Narrate joins the template sentence of every answered question, in
// question order. Unanswered keys and values without a sentence are skipped.
func Narrate(answers domain.Answers, questions []catalog.Question, templates catalog.Templates) string {
	sentences := make([]string, 0, len(questions))
	for _, q := range questions {
		v, ok := answers[q.Key]
		if !ok {
			continue
		}
		if s := strings.TrimSpace(templates[q.Key][v]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return strings.Join(sentences, " ")
}
