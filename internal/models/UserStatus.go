package models

type UserStatusRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
}

type UserStatus struct {
	UserID           string `json:"userId"`
	HasResponse      bool   `json:"hasResponse"`
	LastResponseID   string `json:"lastResponseId,omitempty"`
	LastResponseDate string `json:"lastResponseDate,omitempty"`
	ResponseCount    int    `json:"responseCount"`
}

// NewUserStatus derives the status of userID from its responses, which must
// be ordered newest first.
func NewUserStatus(userID string, responses []*SurveyResponse) *UserStatus {
	status := &UserStatus{
		UserID:        userID,
		ResponseCount: len(responses),
	}
	if len(responses) == 0 {
		return status
	}
	status.HasResponse = true
	status.LastResponseID = responses[0].ID
	status.LastResponseDate = responses[0].CreatedAt
	return status
}
