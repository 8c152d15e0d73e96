package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/dtos"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/services"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

type MessagesController struct {
	messageService *services.MessageService
}

func NewMessagesController(ms *services.MessageService) *MessagesController {
	return &MessagesController{messageService: ms}
}

// ----------------------------------------------------------------
// POST /api/v1/messages  (public contact form)
// ----------------------------------------------------------------
func (c *MessagesController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Name, email and message body are required", nil, err)
		return
	}

	if _, err := c.messageService.SubmitContact(r.Context(), &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to store message", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.ContactResponse{
		Message: "Mensaje recibido. Nos pondremos en contacto contigo en breve.",
	})
}

// ----------------------------------------------------------------
// GET /api/v1/admin/messages?estado=Nueva
// ----------------------------------------------------------------
func (c *MessagesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	var status *models.MessageStatusType
	if raw := r.URL.Query().Get("estado"); raw != "" {
		s := models.MessageStatusType(raw)
		status = &s
	}

	msgs, err := c.messageService.List(r.Context(), status)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidStatus) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
				"Unknown message status", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to list messages", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, msgs)
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/messages/{id}/status
// ----------------------------------------------------------------
func (c *MessagesController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateMessageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"status is required", nil, err)
		return
	}

	err := c.messageService.UpdateStatus(r.Context(), id, models.MessageStatusType(req.Status))
	if err != nil {
		c.respondServiceError(w, err, "Failed to update message status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/messages/{id}/pin
// ----------------------------------------------------------------
func (c *MessagesController) PinHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.PinMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return
	}

	if err := c.messageService.SetPinned(r.Context(), id, req.Pinned); err != nil {
		c.respondServiceError(w, err, "Failed to pin message")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ----------------------------------------------------------------
// DELETE /api/v1/admin/messages/{id}
// ----------------------------------------------------------------
func (c *MessagesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.messageService.Delete(r.Context(), id); err != nil {
		c.respondServiceError(w, err, "Failed to delete message")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

/* ------------------------------------------------------------------
   shared helper
------------------------------------------------------------------ */

func (c *MessagesController) respondServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, utils.ErrMessageNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound,
			"Message not found", nil)
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Unknown message status", nil)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			msg, nil, err)
	}
}
