package services

import (
	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/internal/repositories"
)

// AnalyticsService computes grouped counts over the deal set visible to the
// caller.
type AnalyticsService interface {
	ComputeAnalytics(actor policy.Actor) (*models.AnalyticsReport, error)
}

// analyticsService is the AnalyticsService implementation.
type analyticsService struct {
	dealRepo repositories.DealRepository
}

// NewAnalyticsService creates a new analyticsService instance.
func NewAnalyticsService(dealRepo repositories.DealRepository) AnalyticsService {
	return &analyticsService{dealRepo: dealRepo}
}

// ComputeAnalytics builds all four groupings in a single pass over the
// visible set. The visibility scope is exactly the one ListDeals applies.
func (s *analyticsService) ComputeAnalytics(actor policy.Actor) (*models.AnalyticsReport, error) {
	deals, err := s.dealRepo.ListDealsWithOwner(ownerScope(actor))
	if err != nil {
		return nil, err
	}

	report := &models.AnalyticsReport{
		StatusCounts: make(map[string]int),
		StateCounts:  make(map[string]int),
		UserCounts:   make(map[string]int),
		DealsByMonth: make(map[string]int),
	}
	for _, d := range deals {
		report.StatusCounts[d.Status]++
		report.StateCounts[d.State]++
		report.UserCounts[d.OwnerName]++
		report.DealsByMonth[d.CreatedAt.UTC().Format("2006-01")]++
	}
	return report, nil
}
