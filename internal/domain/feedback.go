package domain

import "time"

// Feedback is a respondent's rating of one method's result.
type Feedback struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	Method        Method    `json:"method"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ChosenSectors []string  `json:"chosen_sectors"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)
