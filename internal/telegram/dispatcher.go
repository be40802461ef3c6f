package telegram

import (
	"sync/atomic"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
)

// Dispatcher is the thread-safe bridge between request handlers (and
// the driver simulator) and the channel runtime. Send never blocks and
// never returns an error: before the runtime is attached it is a
// logged no-op, and a full queue drops the message. Each call hands
// off at most one unit of work.
type Dispatcher struct {
	rt atomic.Pointer[Runtime]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach binds the runtime once startup configuration completes.
// It must not race with Send producers still expecting the old value.
func (d *Dispatcher) Attach(rt *Runtime) {
	d.rt.Store(rt)
}

func (d *Dispatcher) Notify(destination, text string, buttons ...domain.LinkButton) {
	rt := d.rt.Load()
	if rt == nil {
		logger.Warn("notification dropped: channel runtime not attached", "destination", destination)
		return
	}

	select {
	case rt.queue <- sendJob{chatID: destination, text: text, buttons: buttons}:
	default:
		logger.Warn("notification dropped: dispatch queue full", "destination", destination)
	}
}
