package services

import (
	"errors"
	"time"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/internal/repositories"
)

// FileService defines the file attachment workflow interface. Authorization
// always resolves through the parent deal's owner.
type FileService interface {
	AddFile(actor policy.Actor, dealID uint, fileName, link string) (*models.FileAttachment, error)
	ListFiles(actor policy.Actor, dealID uint) ([]models.FileAttachment, error)
	DeleteFile(actor policy.Actor, fileID uint) error
}

// fileService is the FileService implementation.
type fileService struct {
	fileRepo repositories.FileRepository
	dealRepo repositories.DealRepository
}

// NewFileService creates a new fileService instance.
func NewFileService(fileRepo repositories.FileRepository, dealRepo repositories.DealRepository) FileService {
	return &fileService{fileRepo: fileRepo, dealRepo: dealRepo}
}

// authorizeDeal loads the parent deal and applies the ownership check shared
// by every file operation.
func (s *fileService) authorizeDeal(actor policy.Actor, dealID uint) (*models.Deal, error) {
	deal, err := s.dealRepo.GetDealByID(dealID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	if !policy.CanManage(actor, deal.UserID) {
		return nil, ErrPermissionDenied
	}
	return deal, nil
}

func (s *fileService) AddFile(actor policy.Actor, dealID uint, fileName, link string) (*models.FileAttachment, error) {
	if _, err := s.authorizeDeal(actor, dealID); err != nil {
		return nil, err
	}

	if err := firstMissingField([]requiredField{
		{name: "file_name", value: fileName},
		{name: "dropbox_link", value: link},
	}); err != nil {
		return nil, err
	}

	file := &models.FileAttachment{
		DealID:      dealID,
		FileName:    fileName,
		DropboxLink: link,
		UploadDate:  time.Now().UTC(),
	}
	return s.fileRepo.CreateFile(file)
}

func (s *fileService) ListFiles(actor policy.Actor, dealID uint) ([]models.FileAttachment, error) {
	if _, err := s.authorizeDeal(actor, dealID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListFilesForDeal(dealID)
}

// DeleteFile resolves the attachment's parent deal to authorize; a missing
// file and a missing parent deal are reported distinctly.
func (s *fileService) DeleteFile(actor policy.Actor, fileID uint) error {
	file, err := s.fileRepo.GetFileByID(fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	if _, err := s.authorizeDeal(actor, file.DealID); err != nil {
		return err
	}
	return s.fileRepo.DeleteFile(fileID)
}
