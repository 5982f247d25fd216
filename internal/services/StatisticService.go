package services

import (
	"math"
	"survey/internal/models"

	"github.com/spf13/cast"
)

type StatisticServiceInterface interface {
	Aggregate(responses []*models.SurveyResponse) *models.Statistics
}

type StatisticService struct{}

func NewStatisticService() StatisticServiceInterface {
	return &StatisticService{}
}

func (ss *StatisticService) Aggregate(responses []*models.SurveyResponse) *models.Statistics {
	return Aggregate(responses)
}

// Aggregate computes distribution statistics in a single pass. The result
// depends only on the multiset of responses, not on their order.
func Aggregate(responses []*models.SurveyResponse) *models.Statistics {
	stats := models.NewStatistics()
	stats.TotalResponses = len(responses)
	if len(responses) == 0 {
		return stats
	}

	sum := 0
	for _, r := range responses {
		stats.AgeDistribution[r.Age]++
		stats.GenderDistribution[r.Gender]++
		stats.FrequencyDistribution[r.Frequency]++
		stats.SatisfactionDistribution[r.Satisfaction]++
		stats.ResponsesByDate[r.DateKey()]++

		// stored values are validated on write; anything else counts as 0
		sum += cast.ToInt(r.Satisfaction)
	}

	avg := float64(sum) / float64(len(responses))
	stats.AverageSatisfaction = math.Round(avg*100) / 100
	return stats
}
