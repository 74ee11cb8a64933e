package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/utils"
)

// DealHandler wraps the deal-related HTTP handling logic.
type DealHandler struct {
	service services.DealService
}

// NewDealHandler creates a new DealHandler instance.
func NewDealHandler(service services.DealService) *DealHandler {
	return &DealHandler{service: service}
}

// DealPayload is the JSON body for creating and updating a deal. Required
// field checks live in the service layer so missing fields are reported by
// name.
type DealPayload struct {
	DealName string `json:"deal_name"`
	State    string `json:"state"`
	City     string `json:"city"`
	Status   string `json:"status"`
}

func (p DealPayload) toInput() models.DealInput {
	return models.DealInput{
		DealName: p.DealName,
		State:    p.State,
		City:     p.City,
		Status:   p.Status,
	}
}

// CreateDeal godoc
// @Summary Create a deal
// @Description Creates a deal owned by the caller and records its initial status in the history ledger.
// @Tags Deals
// @Accept json
// @Produce json
// @Param deal body DealPayload true "Deal fields"
// @Success 201 {object} utils.SuccessResponse{data=models.Deal} "The created deal"
// @Failure 400 {object} utils.APIErrorResponse "Missing required field"
// @Failure 401 {object} utils.APIErrorResponse "Not authenticated"
// @Failure 500 {object} utils.APIErrorResponse "Internal error"
// @Router /deals [post]
// @Security BearerAuth
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var payload DealPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	deal, err := h.service.CreateDeal(actorFromContext(c), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create deal")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, deal, "Deal created successfully")
}

// GetDeals godoc
// @Summary List deals
// @Description Admins see every deal; everyone else sees only the deals they own.
// @Tags Deals
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Deal}
// @Failure 401 {object} utils.APIErrorResponse "Not authenticated"
// @Failure 500 {object} utils.APIErrorResponse "Internal error"
// @Router /deals [get]
// @Security BearerAuth
func (h *DealHandler) GetDeals(c *gin.Context) {
	deals, err := h.service.ListDeals(actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list deals")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, deals, "")
}

// GetDeal godoc
// @Summary Get one deal
// @Tags Deals
// @Produce json
// @Param id path int true "Deal id"
// @Success 200 {object} utils.SuccessResponse{data=models.Deal}
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id} [get]
// @Security BearerAuth
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	deal, err := h.service.GetDeal(actorFromContext(c), dealID)
	if err != nil {
		respondServiceError(c, err, "Failed to get deal")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, deal, "")
}

// UpdateDeal godoc
// @Summary Update a deal
// @Description Applies all four fields. A status history entry is appended only when the status value actually changes.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path int true "Deal id"
// @Param deal body DealPayload true "Deal fields"
// @Success 200 {object} utils.SuccessResponse{data=models.Deal} "The updated deal"
// @Failure 400 {object} utils.APIErrorResponse "Missing required field"
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id} [put]
// @Security BearerAuth
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload DealPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	deal, err := h.service.UpdateDeal(actorFromContext(c), dealID, payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update deal")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, deal, "Deal updated successfully")
}

// DeleteDeal godoc
// @Summary Delete a deal
// @Description Deletes the deal together with its status history and file attachments.
// @Tags Deals
// @Produce json
// @Param id path int true "Deal id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id} [delete]
// @Security BearerAuth
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteDeal(actorFromContext(c), dealID); err != nil {
		respondServiceError(c, err, "Failed to delete deal")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "Deal deleted successfully")
}

// GetDealHistory godoc
// @Summary Get a deal's status history
// @Description Returns the status transitions most-recent-first.
// @Tags Deals
// @Produce json
// @Param id path int true "Deal id"
// @Success 200 {object} utils.SuccessResponse{data=[]models.DealStatusHistory}
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id}/history [get]
// @Security BearerAuth
func (h *DealHandler) GetDealHistory(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	history, err := h.service.HistoryForDeal(actorFromContext(c), dealID)
	if err != nil {
		respondServiceError(c, err, "Failed to get deal history")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, history, "")
}
