package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/audit"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/httpresp"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/models"
	"github.com/outlaw-hq/admin-api/internal/storage"
)

type IdeaHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	store *storage.Store
}

func NewIdeaHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, store *storage.Store) *IdeaHandler {
	return &IdeaHandler{db: db, audit: auditDispatcher, store: store}
}

func (h *IdeaHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Idea{}).
		Preload("User").
		Preload("User.Information")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var ideas []models.Idea
	if err := q.Order("created_at DESC").Find(&ideas).Error; err != nil {
		httperr.Internal(c, "failed_to_get_ideas", "Failed to get ideas.")
		return
	}

	httpresp.List(c, ideas)
}

func (h *IdeaHandler) GetByID(c *gin.Context) {
	ideaID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var idea models.Idea
	err := h.db.
		Preload("User").
		Preload("User.Information").
		First(&idea, ideaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "idea_not_found", "Idea not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_idea", "Failed to get idea.")
		return
	}

	ctx := c.Request.Context()
	log := logging.WithRequestID(middleware.RequestID(c))

	artifacts := gin.H{}
	for name, key := range map[string]string{
		"pitch_deck": idea.PitchDeck,
		"document":   idea.Document,
		"voice_note": idea.VoiceNote,
	} {
		if key == "" {
			continue
		}
		url, err := h.store.DownloadURL(ctx, key)
		if err != nil {
			log.Warn("failed to presign idea artifact",
				zap.String("artifact", name), zap.Error(err))
			continue
		}
		artifacts[name] = url
	}

	httpresp.OK(c, gin.H{
		"idea":          idea,
		"artifact_urls": artifacts,
	})
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	ideaID, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// responses hang off forms, forms off the idea
		var formIDs []uint
		if err := tx.Model(&models.Form{}).
			Where("idea_id = ?", ideaID).
			Pluck("id", &formIDs).Error; err != nil {
			return err
		}

		if len(formIDs) > 0 {
			if err := tx.Where("form_id IN ?", formIDs).
				Delete(&models.FormResponse{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", formIDs).
				Delete(&models.Form{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Idea{}, ideaID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("idea_not_found")
		}
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "idea_not_found") {
			httperr.NotFound(c, "idea_not_found", "Idea not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_idea", "Failed to delete idea.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "idea_deleted",
		Entity:    "idea",
		EntityID:  &ideaID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.OK(c, gin.H{"message": "Idea deleted successfully"})
}
