package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
	"github.com/hebertsb/pizzeria-nova-backend/internal/repository"
)

var ErrInvalidOrder = errors.New("invalid order")

// Notifier is the fire-and-forget bridge to the channel runtime.
// Implementations must never block on network I/O.
type Notifier interface {
	Notify(destination, text string, buttons ...domain.LinkButton)
}

// EventPublisher mirrors status writes onto an event stream. Publish
// failures are operational noise, never user-visible.
type EventPublisher interface {
	PublishStatus(ctx context.Context, orderID string, st domain.Status, loc *domain.LatLng) error
}

// SimulatorLauncher starts the background delivery leg for an order.
type SimulatorLauncher interface {
	Launch(orderID string, dest domain.LatLng)
}

type Config struct {
	RestaurantChatID string
	// InvoiceBaseURL is the public base for the "view invoice" button;
	// empty disables the button.
	InvoiceBaseURL string
}

type OrdersService struct {
	repo     repository.OrderRepo
	notifier Notifier
	events   EventPublisher
	sim      SimulatorLauncher
	cfg      Config
}

func NewOrdersService(repo repository.OrderRepo, notifier Notifier, events EventPublisher, cfg Config) *OrdersService {
	return &OrdersService{
		repo:     repo,
		notifier: notifier,
		events:   events,
		cfg:      cfg,
	}
}

// AttachSimulator breaks the construction cycle: the simulator drives
// this service's Transition, so it is built second and attached here
// before traffic begins.
func (s *OrdersService) AttachSimulator(sim SimulatorLauncher) {
	s.sim = sim
}

// SubmitOrder validates and persists an inbound order, notifies the
// customer and the restaurant, and launches the driver simulation.
// Only the persistence failure is returned to the caller; everything
// past the store write is fire-and-forget.
func (s *OrdersService) SubmitOrder(ctx context.Context, chatID string, o *domain.Order) (string, error) {
	if err := o.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	if o.ID == "" {
		o.ID = generateOrderID()
	}
	o.ChatID = chatID
	o.Status = domain.StatusConfirmed
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = o.CreatedAt

	if err := s.repo.PutOrder(ctx, o); err != nil {
		return "", err
	}
	logger.Info("order persisted", "order_id", o.ID, "chat_id", chatID)

	var buttons []domain.LinkButton
	if s.cfg.InvoiceBaseURL != "" {
		buttons = append(buttons, domain.LinkButton{
			Label: "Ver Factura Web 🧾",
			URL:   s.cfg.InvoiceBaseURL + "/factura/" + o.ID,
		})
	}
	s.notifier.Notify(chatID, invoiceText(o), buttons...)

	if s.cfg.RestaurantChatID != "" {
		s.notifier.Notify(s.cfg.RestaurantChatID, restaurantAlert(o))
	}

	s.publishStatus(ctx, o.ID, o.Status, nil)

	if s.sim != nil {
		if o.Location != nil {
			s.sim.Launch(o.ID, *o.Location)
		} else {
			logger.Info("driver simulation skipped: order has no coordinates", "order_id", o.ID)
		}
	}

	return o.ID, nil
}

// Transition applies a status change to an existing order and derives
// the customer notification. The store write and the driver location
// (when supplied) go out in one patch together with the server-side
// update timestamp. It returns only after the write completes;
// dispatch is not awaited and cannot roll the write back.
func (s *OrdersService) Transition(ctx context.Context, orderID string, st domain.Status, loc *domain.LatLng) (*domain.Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"status":     st,
		"updated_at": now,
	}
	if loc != nil {
		fields["driver_location"] = loc
	}

	if err := s.repo.PatchOrder(ctx, orderID, fields); err != nil {
		return nil, err
	}

	o.Status = st
	o.UpdatedAt = now
	if loc != nil {
		o.DriverLocation = loc
	}

	s.notifier.Notify(o.ChatID, st.NotificationText(orderID))
	s.publishStatus(ctx, orderID, st, loc)

	return o, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, orderID)
}

func (s *OrdersService) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx, limit)
}

func (s *OrdersService) publishStatus(ctx context.Context, orderID string, st domain.Status, loc *domain.LatLng) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatus(ctx, orderID, st, loc); err != nil {
		logger.Warn("order event publish failed", "order_id", orderID, "status", st, "err", err)
	}
}

func generateOrderID() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().Unix(), rand.Intn(10000))
}
