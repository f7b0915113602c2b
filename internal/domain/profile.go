package domain

import "time"

// Profile is the respondent record created before any questionnaire section.
type Profile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	RoleDescription string    `json:"role_description,omitempty"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	Domicile        string    `json:"domicile"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnswerSheet holds both questionnaire sections of a profile.
type AnswerSheet struct {
	ProfileID       string    `json:"profile_id"`
	Entrepreneurial Answers   `json:"entrepreneurial"`
	Personality     Answers   `json:"personality"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Section returns the answers stored for the given section.
func (s AnswerSheet) Section(section Section) Answers {
	switch section {
	case SectionEntrepreneurial:
		return s.Entrepreneurial
	case SectionPersonality:
		return s.Personality
	}
	return nil
}
