package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// totalEpsilon absorbs float noise coming from the JS webapp.
const totalEpsilon = 0.005

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Emoji    string  `json:"emoji,omitempty"`
}

func (it Item) Total() float64 {
	return it.Price * float64(it.Quantity)
}

type Order struct {
	ID             string    `json:"id"`
	ChatID         string    `json:"chat_id"`
	Items          []Item    `json:"items"`
	Total          float64   `json:"total"`
	Currency       string    `json:"currency,omitempty"`
	Address        string    `json:"address,omitempty"`
	Location       *LatLng   `json:"location,omitempty"`
	DriverLocation *LatLng   `json:"driver_location,omitempty"`
	PaymentMethod  string    `json:"paymentMethod,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LinkButton is an interactive control attached to a notification.
type LinkButton struct {
	Label string
	URL   string
}

// Validate checks an order as received from the webapp. The total is
// verified against the item sum once here; it is never re-derived later.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return errors.New("order has no items")
	}
	var sum float64
	for i, it := range o.Items {
		if it.Name == "" {
			return fmt.Errorf("item %d has no name", i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("item %q: quantity must be positive", it.Name)
		}
		if it.Price < 0 {
			return fmt.Errorf("item %q: price must not be negative", it.Name)
		}
		sum += it.Total()
	}
	if math.Abs(sum-o.Total) > totalEpsilon {
		return fmt.Errorf("total %.2f does not match item sum %.2f", o.Total, sum)
	}
	return nil
}

// DeliveryAddress renders the delivery target for humans: the free-text
// address if present, the coordinates otherwise.
func (o *Order) DeliveryAddress() string {
	if o.Address != "" {
		return o.Address
	}
	if o.Location != nil {
		return fmt.Sprintf("Lat: %.5f, Lon: %.5f", o.Location.Latitude, o.Location.Longitude)
	}
	return "No especificada"
}
