package domain

// Section names one of the two questionnaire parts.
type Section string

const (
	SectionEntrepreneurial Section = "entrepreneurial"
	SectionPersonality     Section = "personality"
)

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s == SectionEntrepreneurial || s == SectionPersonality
}

const (
	MinLikert     = 1
	MaxLikert     = 5
	NeutralLikert = 3
)

// Answers maps a question key to its Likert value.
type Answers map[string]int

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// AnswerCompleteness tells a fully answered section from a defaulted one.
type AnswerCompleteness struct {
	Expected int      `json:"expected"`
	Answered int      `json:"answered"`
	Missing  []string `json:"missing,omitempty"`
}

func (c AnswerCompleteness) Complete() bool {
	return len(c.Missing) == 0
}
