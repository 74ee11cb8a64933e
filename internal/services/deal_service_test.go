package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Deal{}, &models.DealStatusHistory{}, &models.FileAttachment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) policy.Actor {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return policy.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	notified []uint
}

func (n *recordingNotifier) NotifyStatusChange(deal *models.Deal, actor policy.Actor) {
	n.notified = append(n.notified, deal.ID)
}

func newDealService(db *gorm.DB) (DealService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewDealService(
		repositories.NewGormDealRepository(db),
		repositories.NewGormStatusHistoryRepository(db),
		notifier,
	)
	return svc, notifier
}

func TestCreateDealRecordsInitialStatus(t *testing.T) {
	db := setupTestDB(t)
	svc, notifier := newDealService(db)
	actor := seedUser(t, db, "testuser", models.RoleUser)

	deal, err := svc.CreateDeal(actor, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	if deal.ID == 0 {
		t.Fatal("expected a generated deal id")
	}

	history, err := svc.HistoryForDeal(actor, deal.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly 1 history entry after creation, got %d", len(history))
	}
	if history[0].Status != "Pending" {
		t.Errorf("history status = %q, want %q", history[0].Status, "Pending")
	}
	if history[0].ChangedByName != "testuser" {
		t.Errorf("history changed_by = %q, want %q", history[0].ChangedByName, "testuser")
	}

	if len(notifier.notified) != 1 || notifier.notified[0] != deal.ID {
		t.Errorf("expected one notification for deal %d, got %v", deal.ID, notifier.notified)
	}
}

func TestCreateDealRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newDealService(db)
	actor := seedUser(t, db, "testuser", models.RoleUser)

	if _, err := svc.CreateDeal(actor, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	}); err != nil {
		t.Fatalf("create deal: %v", err)
	}

	deals, err := svc.ListDeals(actor)
	if err != nil {
		t.Fatalf("list deals: %v", err)
	}
	if len(deals) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(deals))
	}
	d := deals[0]
	if d.DealName != "Test Deal" || d.State != "CA" || d.City != "LA" || d.Status != "Pending" {
		t.Errorf("round-trip mismatch: %+v", d)
	}
	if d.ID == 0 {
		t.Error("expected a generated id in the listed deal")
	}
}

func TestCreateDealValidationNamesFirstMissingField(t *testing.T) {
	db := setupTestDB(t)
	svc, notifier := newDealService(db)
	actor := seedUser(t, db, "testuser", models.RoleUser)

	cases := []struct {
		input models.DealInput
		field string
	}{
		{models.DealInput{State: "CA", City: "LA", Status: "Pending"}, "deal_name"},
		{models.DealInput{DealName: "D", City: "LA", Status: "Pending"}, "state"},
		{models.DealInput{DealName: "D", State: "CA", Status: "Pending"}, "city"},
		{models.DealInput{DealName: "D", State: "CA", City: "LA"}, "status"},
		{models.DealInput{City: "LA"}, "deal_name"}, // first missing wins
	}
	for _, tc := range cases {
		_, err := svc.CreateDeal(actor, tc.input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("input %+v: expected ValidationError, got %v", tc.input, err)
		}
		if vErr.Field != tc.field {
			t.Errorf("input %+v: field = %q, want %q", tc.input, vErr.Field, tc.field)
		}
	}

	if len(notifier.notified) != 0 {
		t.Errorf("no notification expected for failed creates, got %v", notifier.notified)
	}
	var count int64
	db.Model(&models.Deal{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no deals persisted, got %d", count)
	}
}

func TestUpdateDealStatusChangeAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	svc, notifier := newDealService(db)
	actor := seedUser(t, db, "usera", models.RoleUser)

	deal, err := svc.CreateDeal(actor, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	createdUpdatedAt := deal.UpdatedAt

	time.Sleep(10 * time.Millisecond) // let the update timestamp advance

	updated, err := svc.UpdateDeal(actor, deal.ID, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Active",
	})
	if err != nil {
		t.Fatalf("update deal: %v", err)
	}
	if updated.Status != "Active" {
		t.Errorf("status = %q, want Active", updated.Status)
	}
	if !updated.UpdatedAt.After(createdUpdatedAt) {
		t.Errorf("updated_at did not increase: %v -> %v", createdUpdatedAt, updated.UpdatedAt)
	}

	history, err := svc.HistoryForDeal(actor, deal.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	// Most-recent-first.
	if history[0].Status != "Active" || history[0].ChangedByName != "usera" {
		t.Errorf("history[0] = (%q, %q), want (Active, usera)", history[0].Status, history[0].ChangedByName)
	}
	if history[1].Status != "Pending" || history[1].ChangedByName != "usera" {
		t.Errorf("history[1] = (%q, %q), want (Pending, usera)", history[1].Status, history[1].ChangedByName)
	}

	if len(notifier.notified) != 2 { // create + status change
		t.Errorf("expected 2 notifications, got %d", len(notifier.notified))
	}
}

func TestUpdateDealSameStatusIsNoOpOnHistory(t *testing.T) {
	db := setupTestDB(t)
	svc, notifier := newDealService(db)
	actor := seedUser(t, db, "usera", models.RoleUser)

	deal, err := svc.CreateDeal(actor, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	notificationsAfterCreate := len(notifier.notified)

	// Re-submit the same values, only the city changes.
	if _, err := svc.UpdateDeal(actor, deal.ID, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "San Diego", Status: "Pending",
	}); err != nil {
		t.Fatalf("update deal: %v", err)
	}

	history, err := svc.HistoryForDeal(actor, deal.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("status-preserving update must not append history, got %d entries", len(history))
	}
	if len(notifier.notified) != notificationsAfterCreate {
		t.Errorf("status-preserving update must not notify, got %d notifications", len(notifier.notified))
	}
}

func TestUpdateDealPermissionDenied(t *testing.T) {
	db := setupTestDB(t)
	svc, notifier := newDealService(db)
	owner := seedUser(t, db, "owner", models.RoleUser)
	other := seedUser(t, db, "other", models.RoleUser)

	deal, err := svc.CreateDeal(owner, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	notificationsAfterCreate := len(notifier.notified)

	_, err = svc.UpdateDeal(other, deal.ID, models.DealInput{
		DealName: "Hijacked", State: "NY", City: "NYC", Status: "Active",
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// The deal is untouched.
	var stored models.Deal
	if err := db.First(&stored, deal.ID).Error; err != nil {
		t.Fatalf("reload deal: %v", err)
	}
	if stored.DealName != "Test Deal" || stored.Status != "Pending" {
		t.Errorf("deal mutated by denied update: %+v", stored)
	}
	if len(notifier.notified) != notificationsAfterCreate {
		t.Errorf("denied update must not notify")
	}

	if err := svc.DeleteDeal(other, deal.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on delete, got %v", err)
	}
	if _, err := svc.HistoryForDeal(other, deal.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on history, got %v", err)
	}
}

func TestAdminCanManageOthersDeals(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newDealService(db)
	owner := seedUser(t, db, "owner", models.RoleUser)
	admin := seedUser(t, db, "adminuser", models.RoleAdmin)

	deal, err := svc.CreateDeal(owner, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}

	updated, err := svc.UpdateDeal(admin, deal.ID, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Active",
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.UserID != owner.ID {
		t.Errorf("owner must not change on admin update, got user_id %d", updated.UserID)
	}

	history, err := svc.HistoryForDeal(admin, deal.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history[0].ChangedByName != "adminuser" {
		t.Errorf("latest transition recorded by %q, want adminuser", history[0].ChangedByName)
	}

	if err := svc.DeleteDeal(admin, deal.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestListDealsScoping(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newDealService(db)
	userA := seedUser(t, db, "usera", models.RoleUser)
	userB := seedUser(t, db, "userb", models.RoleUser)
	admin := seedUser(t, db, "adminuser", models.RoleAdmin)

	if _, err := svc.CreateDeal(userA, models.DealInput{DealName: "A Deal", State: "CA", City: "LA", Status: "Pending"}); err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := svc.CreateDeal(userB, models.DealInput{DealName: "B Deal", State: "NY", City: "NYC", Status: "Active"}); err != nil {
		t.Fatalf("create B: %v", err)
	}

	adminDeals, err := svc.ListDeals(admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminDeals) != 2 {
		t.Fatalf("admin expected 2 deals, got %d", len(adminDeals))
	}

	aDeals, err := svc.ListDeals(userA)
	if err != nil {
		t.Fatalf("userA list: %v", err)
	}
	if len(aDeals) != 1 {
		t.Fatalf("userA expected 1 deal, got %d", len(aDeals))
	}
	for _, d := range aDeals {
		if d.UserID != userA.ID {
			t.Errorf("userA list contains foreign deal %+v", d)
		}
	}
}

func TestDeleteDealCascades(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newDealService(db)
	actor := seedUser(t, db, "usera", models.RoleUser)

	deal, err := svc.CreateDeal(actor, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Pending",
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	if _, err := svc.UpdateDeal(actor, deal.ID, models.DealInput{
		DealName: "Test Deal", State: "CA", City: "LA", Status: "Active",
	}); err != nil {
		t.Fatalf("update deal: %v", err)
	}
	file := models.FileAttachment{DealID: deal.ID, FileName: "plan.pdf", DropboxLink: "https://example.com/plan", UploadDate: time.Now()}
	if err := db.Create(&file).Error; err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := svc.DeleteDeal(actor, deal.ID); err != nil {
		t.Fatalf("delete deal: %v", err)
	}

	var dealCount, historyCount, fileCount int64
	db.Model(&models.Deal{}).Where("id = ?", deal.ID).Count(&dealCount)
	db.Model(&models.DealStatusHistory{}).Where("deal_id = ?", deal.ID).Count(&historyCount)
	db.Model(&models.FileAttachment{}).Where("deal_id = ?", deal.ID).Count(&fileCount)
	if dealCount != 0 || historyCount != 0 || fileCount != 0 {
		t.Errorf("cascade left rows behind: deals=%d history=%d files=%d", dealCount, historyCount, fileCount)
	}
}

func TestDealNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newDealService(db)
	actor := seedUser(t, db, "usera", models.RoleUser)

	if _, err := svc.UpdateDeal(actor, 9999, models.DealInput{
		DealName: "X", State: "CA", City: "LA", Status: "Pending",
	}); !errors.Is(err, ErrDealNotFound) {
		t.Errorf("update: expected ErrDealNotFound, got %v", err)
	}
	if err := svc.DeleteDeal(actor, 9999); !errors.Is(err, ErrDealNotFound) {
		t.Errorf("delete: expected ErrDealNotFound, got %v", err)
	}
	if _, err := svc.GetDeal(actor, 9999); !errors.Is(err, ErrDealNotFound) {
		t.Errorf("get: expected ErrDealNotFound, got %v", err)
	}
	if _, err := svc.HistoryForDeal(actor, 9999); !errors.Is(err, ErrDealNotFound) {
		t.Errorf("history: expected ErrDealNotFound, got %v", err)
	}
}
