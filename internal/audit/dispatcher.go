package audit

import (
	"go.uber.org/zap"

	"github.com/outlaw-hq/admin-api/internal/logging"
)

type Event struct {
	Actor     string
	Action    string
	Entity    string
	EntityID  *uint
	RequestID string
	Metadata  any
}

// Dispatcher writes audit entries off the request path through a buffered
// queue. A full queue drops the event: audit must never block or fail the API.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.Actor,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.RequestID,
			ev.Metadata,
		); err != nil {
			logging.L().Error("audit write failed", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logging.L().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
