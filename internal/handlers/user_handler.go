package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/audit"
	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
	"github.com/outlaw-hq/admin-api/internal/dto"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/httpresp"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/models"
	"github.com/outlaw-hq/admin-api/internal/storage"
	"github.com/outlaw-hq/admin-api/internal/validators"
)

type UserHandler struct {
	db         *gorm.DB
	audit      *audit.Dispatcher
	store      *storage.Store
	scheduling SchedulingConfig
}

// SchedulingConfig narrows config to what handlers need for slot validation.
type SchedulingConfig struct {
	MeetingDurationMinutes int
}

func NewUserHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, store *storage.Store, scheduling SchedulingConfig) *UserHandler {
	return &UserHandler{db: db, audit: auditDispatcher, store: store, scheduling: scheduling}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	PersonaType string `json:"persona_type" binding:"required,oneof=founder sme respondent not_selected"`
	Name        string `json:"name" binding:"required"`
	Country     string `json:"country"`
	Industry    string `json:"industry"`
}

type EditUserRequest struct {
	PersonaType        *string `json:"persona_type"`
	Name               *string `json:"name"`
	ProfileTitle       *string `json:"profile_title"`
	Country            *string `json:"country"`
	Industry           *string `json:"industry"`
	LinkedIn           *string `json:"linkedin"`
	Age                *int    `json:"age"`
	AvailableTimeSlots *string `json:"available_time_slots"`
}

type ApproveUserRequest struct {
	IsApproved *bool `json:"isApproved" binding:"required"`
}

// --------- Handlers ---------

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "A user with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to create user.")
		return
	}

	// admin-created accounts skip the OTP flow
	now := time.Now()
	user := models.User{
		Email:           email,
		PasswordHash:    string(hashed),
		AuthType:        "email",
		PersonaType:     req.PersonaType,
		EmailVerifiedAt: &now,
		ConsentedAt:     &now,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		info := models.UserInformation{
			UserID:   user.ID,
			Name:     req.Name,
			Country:  req.Country,
			Industry: req.Industry,
		}
		return tx.Create(&info).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_user", "Failed to create user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "user_created",
		Entity:    "user",
		EntityID:  &user.ID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.Created(c, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"persona_type": user.PersonaType,
		"message":      "User created successfully",
	})
}

func (h *UserHandler) List(c *gin.Context) {
	q := h.db.Model(&models.User{}).
		Preload("Information").
		Preload("Ideas", "idea_capture IS NOT NULL AND idea_capture <> ''").
		Where("deleted_at IS NULL")

	switch c.Query("status") {
	case "verified":
		q = q.Where("email_verified_at IS NOT NULL")
	case "unverified":
		q = q.Where("email_verified_at IS NULL")
	}

	if persona := c.Query("persona_type"); persona != "" {
		q = q.Where("persona_type = ?", persona)
	}

	if start, ok := periodStart(c.Query("period"), time.Now()); ok {
		q = q.Where("created_at >= ?", start)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_get_users", "Failed to get users.")
		return
	}

	out := make([]dto.UserListDTO, 0, len(users))
	for _, u := range users {
		row := dto.UserListDTO{
			ID:              u.ID,
			Email:           u.Email,
			PersonaType:     u.PersonaType,
			AuthType:        u.AuthType,
			CreatedAt:       u.CreatedAt,
			EmailVerifiedAt: u.EmailVerifiedAt,
			ConsentedAt:     u.ConsentedAt,
			IdeasCount:      len(u.Ideas),
		}
		if u.Information != nil {
			row.Name = u.Information.Name
			row.ProfileTitle = u.Information.ProfileTitle
			row.Country = u.Information.Country
			row.Industry = u.Information.Industry
			row.Age = u.Information.Age
			row.LinkedIn = u.Information.LinkedIn
		}
		out = append(out, row)
	}

	httpresp.List(c, out)
}

func (h *UserHandler) Details(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	err := h.db.
		Preload("Information").
		Preload("Ideas").
		Where("id = ? AND deleted_at IS NULL", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Failed to get user details.")
		return
	}

	resp := gin.H{"user": user}

	if user.Information != nil {
		ctx := c.Request.Context()
		log := logging.WithRequestID(middleware.RequestID(c))

		if url, err := h.store.DownloadURL(ctx, user.Information.Avatar); err == nil {
			resp["avatar_url"] = url
		} else {
			log.Warn("failed to presign avatar", zap.Error(err))
		}
		if url, err := h.store.DownloadURL(ctx, user.Information.CVURL); err == nil {
			resp["cv_download_url"] = url
		} else {
			log.Warn("failed to presign cv", zap.Error(err))
		}
	}

	httpresp.OK(c, resp)
}

func (h *UserHandler) Edit(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var user models.User
	if err := h.db.Preload("Information").
		Where("id = ? AND deleted_at IS NULL", userID).
		First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if req.AvailableTimeSlots != nil {
		err := schedule.ValidateWorkingHours(
			[]byte(*req.AvailableTimeSlots),
			h.scheduling.MeetingDurationMinutes,
		)
		switch {
		case httperr.IsBusiness(err, "slot_too_short"):
			httperr.BadRequest(c, "slot_too_short", "A time slot is shorter than one meeting.")
			return
		case httperr.IsBusiness(err, "slots_overlap"):
			httperr.BadRequest(c, "slots_overlap", "Time slots overlap.")
			return
		case err != nil:
			httperr.BadRequest(c, "invalid_slots", "Invalid time slots.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.PersonaType != nil {
			if err := tx.Model(&user).Update("persona_type", *req.PersonaType).Error; err != nil {
				return err
			}
		}

		infoUpdates := map[string]any{}
		if req.Name != nil {
			infoUpdates["name"] = *req.Name
		}
		if req.ProfileTitle != nil {
			infoUpdates["profile_title"] = *req.ProfileTitle
		}
		if req.Country != nil {
			infoUpdates["country"] = *req.Country
		}
		if req.Industry != nil {
			infoUpdates["industry"] = *req.Industry
		}
		if req.LinkedIn != nil {
			infoUpdates["linked_in"] = *req.LinkedIn
		}
		if req.Age != nil {
			infoUpdates["age"] = *req.Age
		}
		if req.AvailableTimeSlots != nil {
			infoUpdates["available_time_slots"] = *req.AvailableTimeSlots
		}

		if len(infoUpdates) == 0 {
			return nil
		}

		if user.Information == nil {
			info := models.UserInformation{UserID: user.ID}
			if err := tx.Create(&info).Error; err != nil {
				return err
			}
			user.Information = &info
		}
		return tx.Model(user.Information).Updates(infoUpdates).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_user", "Failed to update user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "user_updated",
		Entity:    "user",
		EntityID:  &user.ID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.OK(c, gin.H{"message": "User updated successfully"})
}

func (h *UserHandler) Approve(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsApproved == nil {
		httperr.BadRequest(c, "invalid_request", "isApproved must be a boolean value.")
		return
	}

	updates := map[string]any{
		"email_verified_at": nil,
		"consented_at":      nil,
	}
	if *req.IsApproved {
		now := time.Now()
		updates["email_verified_at"] = now
		updates["consented_at"] = now
	}

	res := h.db.Model(&models.User{}).
		Where("id = ? AND deleted_at IS NULL", userID).
		Updates(updates)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_user", "Failed to update user approval.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	action := "user_approval_revoked"
	if *req.IsApproved {
		action = "user_approved"
	}
	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    action,
		Entity:    "user",
		EntityID:  &userID,
		RequestID: middleware.RequestID(c),
	})

	message := "User approval revoked successfully"
	if *req.IsApproved {
		message = "User approved successfully"
	}
	httpresp.OK(c, gin.H{"message": message})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ? AND deleted_at IS NULL", userID).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_user", "Failed to delete user.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "user_deleted",
		Entity:    "user",
		EntityID:  &userID,
		RequestID: middleware.RequestID(c),
	})

	httpresp.OK(c, gin.H{"message": "User deleted successfully"})
}

// --------- Helpers ---------

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "A valid numeric id is required.")
		return 0, false
	}
	return uint(id), true
}
