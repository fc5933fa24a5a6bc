package notifier

import (
	"context"
	"encoding/json"
	"errors"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/go-redis/redis"
)

const checkpointKey = "notifier_checkpoint"

// DefaultChannel redis channel events are published to
const DefaultChannel = "lending:events"

// Publisher redis pub/sub publisher
type Publisher interface {
	Publish(channel string, message interface{}) *redis.IntCmd
}

// Config notifier config
type Config struct {
	Channel string `json:"channel"`
	Batch   int    `json:"batch"`
}

// Notifier relays stored position events to a redis channel
type Notifier struct {
	worker.TickWorker
	events     core.EventStore
	properties property.Store
	publisher  Publisher
	cfg        Config
}

// New new notifier
func New(
	events core.EventStore,
	properties property.Store,
	publisher Publisher,
	cfg Config,
) *Notifier {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}

	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Notifier{
		events:     events,
		properties: properties,
		publisher:  publisher,
		cfg:        cfg,
	}
}

// Run run worker
func (w *Notifier) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Notifier) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "notifier")

	v, err := w.properties.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	events, err := w.events.List(ctx, uint64(v.Int64()), w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("events.List")
		return err
	}

	if len(events) == 0 {
		return errors.New("EOF")
	}

	for _, event := range events {
		if err := w.publish(event); err != nil {
			log.WithError(err).WithField("event", event.ID).Errorln("publish")
			return err
		}

		if err := w.properties.Save(ctx, checkpointKey, event.ID); err != nil {
			log.WithError(err).Errorln("property.Save", event.ID)
			return err
		}
	}

	return nil
}

func (w *Notifier) publish(event *core.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return w.publisher.Publish(w.cfg.Channel, string(b)).Err()
}
