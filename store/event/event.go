package event

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store, events are kept as an outbox for the notifier
func New(db *db.DB) core.EventStore {
	return &eventStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Publish(ctx context.Context, event *core.Event) error {
	return s.db.Update().Where("trace_id = ?", event.TraceID).FirstOrCreate(event).Error
}

func (s *eventStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *eventStore) ListByOwner(ctx context.Context, owner string, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("owner = ?", owner).Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
