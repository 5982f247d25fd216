package models

import (
	"strings"
	"time"
)

// TimestampLayout is fixed width so that lexical order of stored timestamps
// equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SurveyRequest is the payload accepted by POST /survey/submit.
type SurveyRequest struct {
	Age          string `json:"age" validate:"required"`
	Gender       string `json:"gender" validate:"required|in:male,female,other"`
	Frequency    string `json:"frequency" validate:"required|in:daily,weekly,monthly,rarely"`
	Satisfaction string `json:"satisfaction" validate:"required|regexp:^[1-5]$"`
	Feedback     string `json:"feedback,omitempty"`
	UserID       string `json:"userId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// SurveyResponse is a stored submission. It is never mutated after Create.
type SurveyResponse struct {
	ID           string `json:"id"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	Frequency    string `json:"frequency"`
	Satisfaction string `json:"satisfaction"`
	Feedback     string `json:"feedback,omitempty"`
	UserID       string `json:"userId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Timestamp    string `json:"timestamp"`
	CreatedAt    string `json:"createdAt"`
}

// DateKey returns the calendar date portion of Timestamp.
func (r *SurveyResponse) DateKey() string {
	date, _, _ := strings.Cut(r.Timestamp, "T")
	return date
}
