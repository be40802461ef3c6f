package application

import (
	"fmt"
	"strings"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
)

// invoiceText builds the HTML invoice message sent to the customer on
// submission. Item lines are padded into a fixed-width <code> block so
// they align in the Telegram client.
func invoiceText(o *domain.Order) string {
	lines := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		emoji := it.Emoji
		if emoji == "" {
			emoji = "🍕"
		}
		namePart := fmt.Sprintf("%s %s", emoji, it.Name)
		pricePart := fmt.Sprintf("x%d ... $%.2f", it.Quantity, it.Total())
		lines = append(lines, fmt.Sprintf("<code>%-20s %s</code>", namePart, pricePart))
	}

	var b strings.Builder
	b.WriteString("<b>🍕 Pizzeria Nova - Factura 🍕</b>\n\n")
	b.WriteString("¡Gracias por tu pedido! Lo hemos recibido y ya está en marcha.\n\n")
	fmt.Fprintf(&b, "<b>Factura N°:</b> <code>%s</code>\n", o.ID)
	fmt.Fprintf(&b, "<b>Fecha:</b> %s\n", o.CreatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "<b>Estado:</b> %s\n", o.Status)
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("<b>DETALLES DEL PEDIDO:</b>\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "<b>Total a Pagar: $%.2f</b>\n\n", o.Total)
	fmt.Fprintf(&b, "<b>Dirección de Entrega:</b>\n<i>%s</i>\n\n", o.DeliveryAddress())
	if o.PaymentMethod != "" {
		fmt.Fprintf(&b, "<b>Método de Pago:</b> %s\n\n", o.PaymentMethod)
	}
	b.WriteString("Te mantendremos informado sobre el estado de tu pedido.")
	return b.String()
}

// restaurantAlert is the operator-facing new-order summary.
func restaurantAlert(o *domain.Order) string {
	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("  - %s (x%d) - $%.2f", it.Name, it.Quantity, it.Total()))
	}

	return fmt.Sprintf(
		"<b>¡NUEVO PEDIDO!</b> - #%s\n"+
			"<b>Cliente ID:</b> %s\n"+
			"<b>Total:</b> $%.2f\n"+
			"<b>Dirección:</b> %s\n"+
			"<b>Items:</b>\n%s",
		o.ID, o.ChatID, o.Total, o.DeliveryAddress(), strings.Join(items, "\n"),
	)
}
