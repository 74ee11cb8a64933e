package services

import (
	"testing"
	"time"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/repositories"
)

func TestComputeAnalyticsAdminScope(t *testing.T) {
	db := setupTestDB(t)
	dealSvc, _ := newDealService(db)
	analytics := NewAnalyticsService(repositories.NewGormDealRepository(db))

	userA := seedUser(t, db, "testuser", models.RoleUser)
	admin := seedUser(t, db, "adminuser", models.RoleAdmin)

	if _, err := dealSvc.CreateDeal(userA, models.DealInput{DealName: "Test Deal", State: "CA", City: "Test City", Status: "Pending"}); err != nil {
		t.Fatalf("create deal A: %v", err)
	}
	if _, err := dealSvc.CreateDeal(admin, models.DealInput{DealName: "Admin Deal", State: "NY", City: "Admin City", Status: "Active"}); err != nil {
		t.Fatalf("create deal B: %v", err)
	}

	report, err := analytics.ComputeAnalytics(admin)
	if err != nil {
		t.Fatalf("compute analytics: %v", err)
	}

	if report.StatusCounts["Pending"] != 1 || report.StatusCounts["Active"] != 1 {
		t.Errorf("status_counts = %v, want Pending:1 Active:1", report.StatusCounts)
	}
	if len(report.StatusCounts) != 2 {
		t.Errorf("status_counts has zero-filled or stray categories: %v", report.StatusCounts)
	}
	if report.StateCounts["CA"] != 1 || report.StateCounts["NY"] != 1 {
		t.Errorf("state_counts = %v, want CA:1 NY:1", report.StateCounts)
	}
	if report.UserCounts["testuser"] != 1 || report.UserCounts["adminuser"] != 1 {
		t.Errorf("user_counts = %v, want testuser:1 adminuser:1", report.UserCounts)
	}

	currentMonth := time.Now().UTC().Format("2006-01")
	if report.DealsByMonth[currentMonth] != 2 {
		t.Errorf("deals_by_month = %v, want %s:2", report.DealsByMonth, currentMonth)
	}
}

func TestComputeAnalyticsUserScope(t *testing.T) {
	db := setupTestDB(t)
	dealSvc, _ := newDealService(db)
	analytics := NewAnalyticsService(repositories.NewGormDealRepository(db))

	userA := seedUser(t, db, "usera", models.RoleUser)
	userB := seedUser(t, db, "userb", models.RoleUser)

	if _, err := dealSvc.CreateDeal(userA, models.DealInput{DealName: "A Deal", State: "CA", City: "LA", Status: "Pending"}); err != nil {
		t.Fatalf("create deal A: %v", err)
	}
	if _, err := dealSvc.CreateDeal(userB, models.DealInput{DealName: "B Deal", State: "NY", City: "NYC", Status: "Active"}); err != nil {
		t.Fatalf("create deal B: %v", err)
	}

	report, err := analytics.ComputeAnalytics(userA)
	if err != nil {
		t.Fatalf("compute analytics: %v", err)
	}

	if len(report.StatusCounts) != 1 || report.StatusCounts["Pending"] != 1 {
		t.Errorf("status_counts = %v, want only Pending:1", report.StatusCounts)
	}
	if _, present := report.UserCounts["userb"]; present {
		t.Errorf("user_counts leaks another user's deals: %v", report.UserCounts)
	}
	if _, present := report.StateCounts["NY"]; present {
		t.Errorf("state_counts leaks another user's deals: %v", report.StateCounts)
	}
}

func TestComputeAnalyticsEmptySet(t *testing.T) {
	db := setupTestDB(t)
	analytics := NewAnalyticsService(repositories.NewGormDealRepository(db))
	actor := seedUser(t, db, "usera", models.RoleUser)

	report, err := analytics.ComputeAnalytics(actor)
	if err != nil {
		t.Fatalf("compute analytics: %v", err)
	}
	if len(report.StatusCounts) != 0 || len(report.StateCounts) != 0 ||
		len(report.UserCounts) != 0 || len(report.DealsByMonth) != 0 {
		t.Errorf("expected empty maps, got %+v", report)
	}
}
