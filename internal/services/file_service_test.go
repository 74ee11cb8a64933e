package services

import (
	"errors"
	"testing"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/repositories"
	"gorm.io/gorm"
)

func newFileFixtures(t *testing.T) (*gorm.DB, FileService, DealService) {
	t.Helper()
	db := setupTestDB(t)
	dealRepo := repositories.NewGormDealRepository(db)
	fileSvc := NewFileService(repositories.NewGormFileRepository(db), dealRepo)
	dealSvc, _ := newDealService(db)
	return db, fileSvc, dealSvc
}

func TestAddFileToMissingDeal(t *testing.T) {
	db, fileSvc, _ := newFileFixtures(t)
	actor := seedUser(t, db, "usera", models.RoleUser)

	if _, err := fileSvc.AddFile(actor, 9999, "plan.pdf", "https://example.com/plan"); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.FileAttachment{}).Count(&count)
	if count != 0 {
		t.Errorf("no attachment rows expected, got %d", count)
	}
}

func TestAddFileValidation(t *testing.T) {
	db, fileSvc, dealSvc := newFileFixtures(t)
	actor := seedUser(t, db, "usera", models.RoleUser)
	deal, err := dealSvc.CreateDeal(actor, models.DealInput{DealName: "D", State: "CA", City: "LA", Status: "Pending"})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}

	_, err = fileSvc.AddFile(actor, deal.ID, "", "https://example.com/plan")
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "file_name" {
		t.Fatalf("expected ValidationError{file_name}, got %v", err)
	}

	_, err = fileSvc.AddFile(actor, deal.ID, "plan.pdf", "  ")
	if !errors.As(err, &vErr) || vErr.Field != "dropbox_link" {
		t.Fatalf("expected ValidationError{dropbox_link}, got %v", err)
	}
}

func TestAddAndListFiles(t *testing.T) {
	db, fileSvc, dealSvc := newFileFixtures(t)
	actor := seedUser(t, db, "usera", models.RoleUser)
	deal, err := dealSvc.CreateDeal(actor, models.DealInput{DealName: "D", State: "CA", City: "LA", Status: "Pending"})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}

	file, err := fileSvc.AddFile(actor, deal.ID, "plan.pdf", "https://www.dropbox.com/s/abc/plan.pdf")
	if err != nil {
		t.Fatalf("add file: %v", err)
	}
	if file.ID == 0 || file.DealID != deal.ID {
		t.Errorf("unexpected attachment: %+v", file)
	}
	if file.UploadDate.IsZero() {
		t.Error("upload_date not set")
	}

	files, err := fileSvc.ListFiles(actor, deal.ID)
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(files) != 1 || files[0].FileName != "plan.pdf" {
		t.Fatalf("unexpected file list: %+v", files)
	}
}

func TestFilePermissionDenied(t *testing.T) {
	db, fileSvc, dealSvc := newFileFixtures(t)
	owner := seedUser(t, db, "owner", models.RoleUser)
	other := seedUser(t, db, "other", models.RoleUser)
	admin := seedUser(t, db, "adminuser", models.RoleAdmin)

	deal, err := dealSvc.CreateDeal(owner, models.DealInput{DealName: "D", State: "CA", City: "LA", Status: "Pending"})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	file, err := fileSvc.AddFile(owner, deal.ID, "plan.pdf", "https://example.com/plan")
	if err != nil {
		t.Fatalf("add file: %v", err)
	}

	if _, err := fileSvc.AddFile(other, deal.ID, "x.pdf", "https://example.com/x"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("add: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := fileSvc.ListFiles(other, deal.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("list: expected ErrPermissionDenied, got %v", err)
	}
	if err := fileSvc.DeleteFile(other, file.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("delete: expected ErrPermissionDenied, got %v", err)
	}

	// The attachment set is unchanged after the denied operations.
	var count int64
	db.Model(&models.FileAttachment{}).Where("deal_id = ?", deal.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 attachment, got %d", count)
	}

	// Admin is allowed throughout.
	if _, err := fileSvc.ListFiles(admin, deal.ID); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if err := fileSvc.DeleteFile(admin, file.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestDeleteFileNotFound(t *testing.T) {
	db, fileSvc, _ := newFileFixtures(t)
	actor := seedUser(t, db, "usera", models.RoleUser)

	if err := fileSvc.DeleteFile(actor, 9999); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
