package models

type Statistics struct {
	TotalResponses           int            `json:"total_responses"`
	AgeDistribution          map[string]int `json:"age_distribution"`
	GenderDistribution       map[string]int `json:"gender_distribution"`
	FrequencyDistribution    map[string]int `json:"frequency_distribution"`
	SatisfactionDistribution map[string]int `json:"satisfaction_distribution"`
	AverageSatisfaction      float64        `json:"average_satisfaction"`
	ResponsesByDate          map[string]int `json:"responses_by_date"`
}

func NewStatistics() *Statistics {
	return &Statistics{
		AgeDistribution:          make(map[string]int),
		GenderDistribution:       make(map[string]int),
		FrequencyDistribution:    make(map[string]int),
		SatisfactionDistribution: make(map[string]int),
		ResponsesByDate:          make(map[string]int),
	}
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type SurveyResults struct {
	Responses  []*SurveyResponse `json:"responses"`
	Statistics *Statistics       `json:"statistics"`
	Pagination Pagination        `json:"pagination"`
}
