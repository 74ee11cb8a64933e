package services

import (
	"errors"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/internal/repositories"
)

// DealService defines the deal workflow interface: permission-gated CRUD plus
// the status-history trail.
type DealService interface {
	CreateDeal(actor policy.Actor, input models.DealInput) (*models.Deal, error)
	GetDeal(actor policy.Actor, dealID uint) (*models.Deal, error)
	UpdateDeal(actor policy.Actor, dealID uint, input models.DealInput) (*models.Deal, error)
	DeleteDeal(actor policy.Actor, dealID uint) error
	ListDeals(actor policy.Actor) ([]models.Deal, error)
	HistoryForDeal(actor policy.Actor, dealID uint) ([]models.DealStatusHistory, error)
}

// dealService is the DealService implementation.
type dealService struct {
	dealRepo    repositories.DealRepository
	historyRepo repositories.StatusHistoryRepository
	notifier    Notifier
}

// NewDealService creates a new dealService instance.
func NewDealService(dealRepo repositories.DealRepository, historyRepo repositories.StatusHistoryRepository, notifier Notifier) DealService {
	return &dealService{dealRepo: dealRepo, historyRepo: historyRepo, notifier: notifier}
}

func validateDealInput(input models.DealInput) error {
	return firstMissingField([]requiredField{
		{name: "deal_name", value: input.DealName},
		{name: "state", value: input.State},
		{name: "city", value: input.City},
		{name: "status", value: input.Status},
	})
}

// CreateDeal persists a deal owned by the actor together with the history
// entry recording its initial status, then notifies. Notification happens
// after the transaction committed and cannot fail the creation.
func (s *dealService) CreateDeal(actor policy.Actor, input models.DealInput) (*models.Deal, error) {
	if err := validateDealInput(input); err != nil {
		return nil, err
	}

	deal := &models.Deal{
		DealName: input.DealName,
		State:    input.State,
		City:     input.City,
		Status:   input.Status,
		UserID:   actor.ID,
	}
	created, err := s.dealRepo.CreateDealWithInitialStatus(deal, actor.ID, actor.Username)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyStatusChange(created, actor)
	return created, nil
}

func (s *dealService) GetDeal(actor policy.Actor, dealID uint) (*models.Deal, error) {
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

// UpdateDeal applies all four fields after the existence, permission and
// validation checks pass. A history entry is appended and the notifier
// invoked only when the stored status actually changed.
func (s *dealService) UpdateDeal(actor policy.Actor, dealID uint, input models.DealInput) (*models.Deal, error) {
	existing, err := s.dealRepo.GetDealByID(dealID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	if !policy.CanManage(actor, existing.UserID) {
		return nil, ErrPermissionDenied
	}
	if err := validateDealInput(input); err != nil {
		return nil, err
	}

	updated, statusChanged, err := s.dealRepo.UpdateDealWithHistory(dealID, input, actor.ID, actor.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}

	if statusChanged {
		s.notifier.NotifyStatusChange(updated, actor)
	}
	return updated, nil
}

func (s *dealService) DeleteDeal(actor policy.Actor, dealID uint) error {
	deal, err := s.dealRepo.GetDealByID(dealID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrDealNotFound
		}
		return err
	}
	if !policy.CanManage(actor, deal.UserID) {
		return ErrPermissionDenied
	}
	return s.dealRepo.DeleteDealCascade(dealID)
}

// ListDeals returns the actor's visibility scope: everything for admins, only
// owned deals for everyone else.
func (s *dealService) ListDeals(actor policy.Actor) ([]models.Deal, error) {
	return s.dealRepo.ListDeals(ownerScope(actor))
}

func (s *dealService) HistoryForDeal(actor policy.Actor, dealID uint) ([]models.DealStatusHistory, error) {
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
	return s.historyRepo.HistoryForDeal(dealID)
}

// ownerScope translates the actor into a list filter: nil means unrestricted.
func ownerScope(actor policy.Actor) *uint {
	if actor.Role.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}
