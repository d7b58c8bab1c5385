package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/audit"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/httpresp"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/models"
)

type FormHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewFormHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *FormHandler {
	return &FormHandler{db: db, audit: auditDispatcher}
}

type EditFormRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	FormURL   *string `json:"form_url"`
}

func (h *FormHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Form{}).
		Preload("Creator").
		Preload("Idea")

	if creatorID := c.Query("creator_id"); creatorID != "" {
		q = q.Where("creator_id = ?", creatorID)
	}
	if ideaID := c.Query("idea_id"); ideaID != "" {
		q = q.Where("idea_id = ?", ideaID)
	}

	var forms []models.Form
	if err := q.Order("created_at DESC").Find(&forms).Error; err != nil {
		httperr.Internal(c, "failed_to_get_forms", "Failed to get forms.")
		return
	}

	httpresp.List(c, forms)
}

func (h *FormHandler) Responses(c *gin.Context) {
	formID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var count int64
	h.db.Model(&models.Form{}).Where("id = ?", formID).Count(&count)
	if count == 0 {
		httperr.NotFound(c, "form_not_found", "Form not found.")
		return
	}

	var responses []models.FormResponse
	err := h.db.
		Preload("Responder").
		Preload("Responder.Information").
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_responses", "Failed to get form responses.")
		return
	}

	httpresp.List(c, responses)
}

func (h *FormHandler) Edit(c *gin.Context) {
	formID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req EditFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var form models.Form
	if err := h.db.First(&form, formID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "form_not_found", "Form not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_form", "Failed to get form.")
		return
	}

	updates := map[string]any{}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339.")
			return
		}
		updates["start_time"] = t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "end_time must be RFC3339.")
			return
		}
		updates["end_time"] = t
	}
	if req.FormURL != nil {
		updates["form_url"] = *req.FormURL
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "nothing_to_update", "No fields to update.")
		return
	}

	if err := h.db.Model(&form).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_form", "Failed to update form.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "form_updated",
		Entity:    "form",
		EntityID:  &form.ID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.OK(c, form)
}

func (h *FormHandler) Delete(c *gin.Context) {
	formID, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", formID).
			Delete(&models.FormResponse{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Form{}, formID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("form_not_found")
		}
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "form_not_found") {
			httperr.NotFound(c, "form_not_found", "Form not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_form", "Failed to delete form.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "form_deleted",
		Entity:    "form",
		EntityID:  &formID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.OK(c, gin.H{"message": "Form deleted successfully"})
}
