package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/audit"
	domain "github.com/outlaw-hq/admin-api/internal/domain/booking"
	"github.com/outlaw-hq/admin-api/internal/dto"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/httpresp"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/models"
	ucBooking "github.com/outlaw-hq/admin-api/internal/usecase/booking"
)

type BookingHandler struct {
	db             *gorm.DB
	audit          *audit.Dispatcher
	availableSlots *ucBooking.GetAvailableSlots
}

func NewBookingHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	availableSlotsUC *ucBooking.GetAvailableSlots,
) *BookingHandler {
	return &BookingHandler{
		db:             db,
		audit:          auditDispatcher,
		availableSlots: availableSlotsUC,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	CreatorID     uint   `json:"creatorId" binding:"required"`
	ParticipantID uint   `json:"participantId" binding:"required"`
	StartTime     string `json:"startTime" binding:"required"`
	EndTime       string `json:"endTime" binding:"required"`
}

type EditBookingRequest struct {
	CreatorID     *uint   `json:"creator_id"`
	ParticipantID *uint   `json:"participant_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

// AvailableSlots is the slot-availability endpoint: the target user's weekly
// schedule projected over the booking horizon, minus conflicting bookings.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	targetUserID, err := strconv.ParseUint(c.Query("targetUserId"), 10, 64)
	if err != nil || targetUserID == 0 {
		httperr.BadRequest(c, "missing_target_user", "targetUserId is required")
		return
	}

	result, err := h.availableSlots.Execute(c.Request.Context(), uint(targetUserID), time.Now())
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		logging.WithRequestID(middleware.RequestID(c)).
			Error("available slots computation failed",
				zap.Uint64("target_user_id", targetUserID), zap.Error(err))
		httperr.Internal(c, "failed_to_get_slots", "Cannot fetch users available slots!")
		return
	}

	httpresp.OK(c, result)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.CreatorID == req.ParticipantID {
		httperr.BadRequest(c, "same_user", "Creator and participant must be different users")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "startTime must be RFC3339.")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_time", "endTime must be RFC3339.")
		return
	}
	if !end.After(start) {
		httperr.BadRequest(c, "invalid_time_range", "endTime must be after startTime.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id IN ? AND deleted_at IS NULL", []uint{req.CreatorID, req.ParticipantID}).
		Count(&count)
	if count != 2 {
		httperr.NotFound(c, "user_not_found", "Creator or participant not found.")
		return
	}

	booking := models.Booking{
		CreatorID:     req.CreatorID,
		ParticipantID: req.ParticipantID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.StatusPending),
	}

	if err := h.db.Create(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &booking.ID,
		RequestID: middleware.RequestID(c),
		Metadata:  gin.H{"start": start, "end": end},
	})

	httpresp.Created(c, booking)
}

func (h *BookingHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Booking{}).
		Preload("Creator").
		Preload("Participant")

	now := time.Now()
	switch c.Query("timeFilter") {
	case "upcoming":
		q = q.Where("start_time > ?", now)
	case "active":
		q = q.Where("start_time <= ? AND end_time > ?", now, now)
	case "past":
		q = q.Where("end_time < ?", now)
	}

	if status := c.Query("statusFilter"); status != "" {
		if !domain.IsValid(domain.Status(status)) {
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
			return
		}
		q = q.Where("status = ?", status)
	}

	limit := 100
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	var bookings []models.Booking
	if err := q.Order("start_time DESC").Limit(limit).Offset(offset).Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_get_bookings", "Could not fetch bookings")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:               b.ID,
			StartTime:        b.StartTime,
			EndTime:          b.EndTime,
			Status:           b.Status,
			CreatorEmail:     b.Creator.Email,
			ParticipantEmail: b.Participant.Email,
		})
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) Edit(c *gin.Context) {
	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not fetch booking")
		return
	}

	updates := map[string]any{}

	creatorID := booking.CreatorID
	participantID := booking.ParticipantID
	if req.CreatorID != nil {
		creatorID = *req.CreatorID
		updates["creator_id"] = creatorID
	}
	if req.ParticipantID != nil {
		participantID = *req.ParticipantID
		updates["participant_id"] = participantID
	}
	if creatorID == participantID {
		httperr.BadRequest(c, "same_user", "Creator and participant must be different users")
		return
	}

	var foundIDs []uint
	h.db.Model(&models.User{}).
		Where("id IN ? AND deleted_at IS NULL", []uint{creatorID, participantID}).
		Pluck("id", &foundIDs)
	if code, missing := missingUserCode(foundIDs, creatorID, participantID); missing {
		httperr.NotFound(c, code, "User not found.")
		return
	}

	start := booking.StartTime
	end := booking.EndTime
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339.")
			return
		}
		start = t
		updates["start_time"] = t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "end_time must be RFC3339.")
			return
		}
		end = t
		updates["end_time"] = t
	}
	if !end.After(start) {
		httperr.BadRequest(c, "invalid_time_range", "end_time must be after start_time.")
		return
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "nothing_to_update", "No fields to update.")
		return
	}

	if err := h.db.Model(&booking).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "booking_updated",
		Entity:    "booking",
		EntityID:  &booking.ID,
		RequestID: middleware.RequestID(c),
		Metadata:  updates,
	})

	httpresp.OK(c, booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	next := domain.Status(req.Status)
	if !domain.IsValid(next) {
		httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not fetch booking")
		return
	}

	if err := domain.CanTransition(domain.Status(booking.Status), next); err != nil {
		httperr.BadRequest(c, "invalid_state", "Booking cannot move to this status.")
		return
	}

	if err := h.db.Model(&booking).Update("status", string(next)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:     c.GetString(middleware.ContextAdminEmail),
		Action:    "booking_status_changed",
		Entity:    "booking",
		EntityID:  &booking.ID,
		RequestID: middleware.RequestID(c),
		Metadata:  gin.H{"status": string(next)},
	})

	httpresp.OK(c, booking)
}

// missingUserCode reports which side of a booking points at a user that does
// not exist, checking the creator before the participant.
func missingUserCode(foundIDs []uint, creatorID, participantID uint) (string, bool) {
	found := make(map[uint]bool, len(foundIDs))
	for _, id := range foundIDs {
		found[id] = true
	}

	if !found[creatorID] {
		return "creator_not_found", true
	}
	if !found[participantID] {
		return "participant_not_found", true
	}
	return "", false
}
