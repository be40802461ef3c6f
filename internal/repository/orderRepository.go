package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrStoreUnavailable = errors.New("order store unavailable")
)

type OrderRepo interface {
	PutOrder(ctx context.Context, o *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	PatchOrder(ctx context.Context, id string, fields map[string]any) error
}

// OrderRepository keeps each order as a single jsonb document keyed by
// order id, Firestore-style. created_at is mirrored into a column only
// to serve the newest-first listing.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) PutOrder(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO pizzeria.orders (id, created_at, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`,
		o.ID, o.CreatedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("%w: put order %s: %v", ErrStoreUnavailable, o.ID, err)
	}
	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM pizzeria.orders WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get order %s: %v", ErrStoreUnavailable, id, err)
	}

	var o domain.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order %s: %w", id, err)
	}
	return &o, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT payload FROM pizzeria.orders ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: list orders: %v", ErrStoreUnavailable, err)
		}
		var o domain.Order
		if err := json.Unmarshal(payload, &o); err != nil {
			// A malformed document must not break the whole listing.
			continue
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", ErrStoreUnavailable, err)
	}
	return orders, nil
}

// PatchOrder merges the given fields into the stored document in a
// single write. Unknown ids are reported, never upserted.
func (r *OrderRepository) PatchOrder(ctx context.Context, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal patch for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE pizzeria.orders SET payload = payload || $2::jsonb WHERE id = $1`,
		id, patch,
	)
	if err != nil {
		return fmt.Errorf("%w: patch order %s: %v", ErrStoreUnavailable, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return nil
}
