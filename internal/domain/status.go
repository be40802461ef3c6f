package domain

import "fmt"

// Status is the order lifecycle state. The canonical forward path is
// Confirmed -> InPreparation -> EnRoute -> Delivered; Cancelled is
// reachable from any non-terminal state. The store itself does not
// enforce forward-only ordering: the admin panel may set any value.
type Status string

const (
	StatusConfirmed     Status = "Confirmed"
	StatusInPreparation Status = "InPreparation"
	StatusEnRoute       Status = "EnRoute"
	StatusDelivered     Status = "Delivered"
	StatusCancelled     Status = "Cancelled"
)

func (s Status) Known() bool {
	switch s {
	case StatusConfirmed, StatusInPreparation, StatusEnRoute, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

var statusMessages = map[Status]string{
	StatusConfirmed:     "✅ ¡Tu pedido #%s ha sido confirmado por el local!",
	StatusInPreparation: "👨‍🍳 ¡Estamos preparando tu pedido #%s!",
	StatusEnRoute:       "🛵 ¡Tu pedido #%s ya está en camino! Prepárate para disfrutar.",
	StatusDelivered:     "🎉 ¡Tu pedido #%s ha sido entregado! Gracias por preferirnos.",
	StatusCancelled:     "❌ Lo sentimos, tu pedido #%s ha sido cancelado.",
}

// NotificationText resolves the customer-facing message for a status
// change. Unmapped statuses fall back to a generic notice.
func (s Status) NotificationText(orderID string) string {
	if tpl, ok := statusMessages[s]; ok {
		return fmt.Sprintf(tpl, orderID)
	}
	return fmt.Sprintf("ℹ️ El estado de tu pedido #%s ha cambiado a: %s", orderID, s)
}
