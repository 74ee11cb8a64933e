package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/utils"
)

// FileHandler wraps the file-attachment HTTP handling logic.
type FileHandler struct {
	service services.FileService
}

// NewFileHandler creates a new FileHandler instance.
func NewFileHandler(service services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// FilePayload is the JSON body for attaching a file link to a deal.
type FilePayload struct {
	FileName    string `json:"file_name"`
	DropboxLink string `json:"dropbox_link"`
}

// AddFile godoc
// @Summary Attach a file link to a deal
// @Description The link is stored as given; only non-emptiness is validated.
// @Tags Files
// @Accept json
// @Produce json
// @Param id path int true "Deal id"
// @Param file body FilePayload true "File name and external link"
// @Success 201 {object} utils.SuccessResponse{data=models.FileAttachment} "The created attachment"
// @Failure 400 {object} utils.APIErrorResponse "Missing required field"
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id}/files [post]
// @Security BearerAuth
func (h *FileHandler) AddFile(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload FilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	file, err := h.service.AddFile(actorFromContext(c), dealID, payload.FileName, payload.DropboxLink)
	if err != nil {
		respondServiceError(c, err, "Failed to attach file")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, file, "File attached successfully")
}

// ListFiles godoc
// @Summary List a deal's file attachments
// @Tags Files
// @Produce json
// @Param id path int true "Deal id"
// @Success 200 {object} utils.SuccessResponse{data=[]models.FileAttachment}
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "Deal not found"
// @Router /deals/{id}/files [get]
// @Security BearerAuth
func (h *FileHandler) ListFiles(c *gin.Context) {
	dealID, ok := idParam(c, "id")
	if !ok {
		return
	}
	files, err := h.service.ListFiles(actorFromContext(c), dealID)
	if err != nil {
		respondServiceError(c, err, "Failed to list files")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, files, "")
}

// DeleteFile godoc
// @Summary Delete a file attachment
// @Description Authorization resolves through the attachment's parent deal.
// @Tags Files
// @Produce json
// @Param id path int true "File id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.APIErrorResponse "Not the owner and not an admin"
// @Failure 404 {object} utils.APIErrorResponse "File or parent deal not found"
// @Router /files/{id} [delete]
// @Security BearerAuth
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteFile(actorFromContext(c), fileID); err != nil {
		respondServiceError(c, err, "Failed to delete file")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "File deleted successfully")
}
