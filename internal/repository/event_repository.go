package repository

import (
	"context"
	"errors"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository defines the interface for event data operations.
type EventRepository interface {
	// CreateIfAbsent inserts the event unless its trace id was already admitted.
	// It reports whether a new row was written.
	CreateIfAbsent(ctx context.Context, event *entity.Event) (bool, error)
	FindByTraceID(ctx context.Context, traceID string) (*entity.Event, error)
	DeleteByTraceID(ctx context.Context, traceID string) error
}

// NewEventRepository creates a new GORM-based event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

type eventRepository struct {
	db *gorm.DB
}

func (r *eventRepository) CreateIfAbsent(ctx context.Context, event *entity.Event) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trace_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FindByTraceID retrieves an admitted event by its trace id.
func (r *eventRepository) FindByTraceID(ctx context.Context, traceID string) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Where("trace_id = ?", traceID).Take(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event %s not found", traceID)
		}
		return nil, err
	}
	return &event, nil
}

// DeleteByTraceID removes an admitted event so its trace id can be admitted again.
func (r *eventRepository) DeleteByTraceID(ctx context.Context, traceID string) error {
	return r.db.WithContext(ctx).Where("trace_id = ?", traceID).Delete(&entity.Event{}).Error
}
