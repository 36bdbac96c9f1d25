package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NotificationRepository stores inbox entries.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]Notification, int64, error) {
	var items []Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if err := query.Offset((page - 1) * limit).Limit(limit).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkRead marks one of the user's entries read. It reports false when the
// entry does not belong to userID.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint, at time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Notification{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", at).Error
	return err == nil, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	return result.RowsAffected, result.Error
}
