package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/outlaw-hq/admin-api/internal/domain/booking"
	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) GetUserAvailability(
	ctx context.Context,
	userID uint,
) ([]byte, error) {

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Information").
		Where("id = ? AND deleted_at IS NULL", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	if user.Information == nil || user.Information.AvailableTimeSlots == "" {
		return nil, nil
	}
	return []byte(user.Information.AvailableTimeSlots), nil
}

func (r *BookingGormRepository) ListConflicts(
	ctx context.Context,
	userID uint,
	from time.Time,
	to time.Time,
	statuses []domain.Status,
) ([]schedule.BookingConflict, error) {

	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("(creator_id = ? OR participant_id = ?)", userID, userID).
		Where("start_time >= ? AND end_time <= ?", from, to).
		Where("status IN ?", statuses).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]schedule.BookingConflict, 0, len(rows))
	for _, b := range rows {
		conflicts = append(conflicts, schedule.BookingConflict{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return conflicts, nil
}
