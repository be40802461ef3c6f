package telegram

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
)

// testRuntime builds a runtime without a live bot client; the tests
// only exercise the queue side of the bridge.
func testRuntime() *Runtime {
	return &Runtime{
		queue:   make(chan sendJob, sendQueueSize),
		updates: make(chan tgbotapi.Update, updateQueueSize),
	}
}

func TestDispatcherUnattached(t *testing.T) {
	d := NewDispatcher()
	// Must be a logged no-op, not a panic or an error.
	d.Notify("777", "hola")
}

func TestDispatcherFIFOForSingleCaller(t *testing.T) {
	d := NewDispatcher()
	rt := testRuntime()
	d.Attach(rt)

	for i := 0; i < 5; i++ {
		d.Notify("777", fmt.Sprintf("msg-%d", i))
	}

	require.Len(t, rt.queue, 5)
	for i := 0; i < 5; i++ {
		job := <-rt.queue
		assert.Equal(t, "777", job.chatID)
		assert.Equal(t, fmt.Sprintf("msg-%d", i), job.text)
	}
}

func TestDispatcherCarriesButtons(t *testing.T) {
	d := NewDispatcher()
	rt := testRuntime()
	d.Attach(rt)

	d.Notify("777", "factura", domain.LinkButton{Label: "Ver Factura Web 🧾", URL: "https://x/factura/ORD-1"})

	job := <-rt.queue
	require.Len(t, job.buttons, 1)
	assert.Equal(t, "https://x/factura/ORD-1", job.buttons[0].URL)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher()
	rt := testRuntime()
	d.Attach(rt)

	for i := 0; i < sendQueueSize+10; i++ {
		d.Notify("777", "x")
	}
	// The overflow is dropped, never blocked on.
	assert.Len(t, rt.queue, sendQueueSize)
}

func TestSelectMode(t *testing.T) {
	assert.Equal(t, ModeWebhook, SelectMode("https://pizzeria.example.com"))
	assert.Equal(t, ModePolling, SelectMode(""))
}
