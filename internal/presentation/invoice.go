package presentation

import (
	"html/template"
	"io"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
)

// Simple printable invoice, inline styles on purpose (renders the same
// in browsers and HTML-to-PDF converters).
const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Factura Pizzeria Nova #{{.Order.ID}}</title>
    <style>
        body { font-family: sans-serif; margin: 20px; }
        .container { max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
        h1 { color: #E94E1B; text-align: center; border-bottom: 2px solid #ddd; padding-bottom: 10px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border-bottom: 1px solid #eee; padding: 8px; }
        th { background-color: #f5f5f5; text-align: left; }
        .summary-table td { border: none; font-weight: bold; }
        .total-row td { border-top: 2px solid #333; font-size: 1.2em; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🍕 Factura Pizzeria Nova</h1>

        <p><strong>Factura N°:</strong> {{.Order.ID}}</p>
        <p><strong>Fecha/Hora:</strong> {{.Date}}</p>
        <p><strong>Cliente ID:</strong> {{.Order.ChatID}}</p>
        <p><strong>Dirección de Entrega:</strong> {{.Order.DeliveryAddress}}</p>
        <p><strong>Método de Pago:</strong> {{.Order.PaymentMethod}}</p>

        <table>
            <thead>
                <tr>
                    <th>Producto</th>
                    <th style="text-align: center;">Cant.</th>
                    <th style="text-align: right;">Precio Unit.</th>
                    <th style="text-align: right;">Total Item</th>
                </tr>
            </thead>
            <tbody>
                {{range .Order.Items}}
                <tr>
                    <td style="text-align: left; padding: 8px 0;">{{.Name}} ({{.Emoji}})</td>
                    <td style="text-align: center;">{{.Quantity}}</td>
                    <td style="text-align: right;">${{printf "%.2f" .Price}}</td>
                    <td style="text-align: right;">${{printf "%.2f" .Total}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>

        <table class="summary-table" style="margin-top: 20px; float: right; width: 50%;">
            <tr class="total-row">
                <td>Total a Pagar:</td>
                <td style="text-align: right;">${{printf "%.2f" .Order.Total}}</td>
            </tr>
        </table>
        <div style="clear: both;"></div>

        <p style="text-align: center; margin-top: 30px; font-size: 0.8em; color: #777;">
            Gracias por tu pedido. Este documento es un comprobante de venta simplificado.
        </p>
    </div>
</body>
</html>`

var invoiceTemplate = template.Must(template.New("invoice").Parse(invoiceHTML))

func renderInvoice(w io.Writer, o *domain.Order) error {
	return invoiceTemplate.Execute(w, struct {
		Order *domain.Order
		Date  string
	}{
		Order: o,
		Date:  o.CreatedAt.Format("02/01/2006 15:04:05"),
	})
}
