package email

import (
	"fmt"
	"strings"
)

// OrderItem represents an order line for email purposes
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
}

// StockItem represents a low-stock product for email purposes
type StockItem struct {
	Name         string
	SKU          string
	Quantity     int
	ReorderLevel int
}

// BuildOrderConfirmationBody builds the HTML body for order confirmation email
func BuildOrderConfirmationBody(customerName, orderID string, total float64, items []OrderItem) string {
	var rows strings.Builder
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		rows.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">$%.2f</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">$%.2f</td>
			</tr>`,
			name,
			item.Quantity,
			item.UnitPrice,
			item.UnitPrice*float64(item.Quantity),
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
	<h2>Thank you for your order, %s!</h2>
	<p>Order reference: %s</p>
	<table style="border-collapse: collapse; width: 100%%;">
		<tr>
			<th style="text-align: left; padding: 12px;">Product</th>
			<th style="padding: 12px;">Qty</th>
			<th style="text-align: right; padding: 12px;">Unit price</th>
			<th style="text-align: right; padding: 12px;">Subtotal</th>
		</tr>
		%s
	</table>
	<p style="font-size: 18px;"><strong>Total: $%.2f</strong></p>
</body>
</html>`, customerName, orderID, rows.String(), total)
}

// BuildLowStockBody builds the HTML body for the low-stock alert email
func BuildLowStockBody(items []StockItem) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%d</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%d</td>
			</tr>`,
			item.Name, item.SKU, item.Quantity, item.ReorderLevel,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
	<h2>%d products are running low on stock</h2>
	<table style="border-collapse: collapse; width: 100%%;">
		<tr>
			<th style="text-align: left; padding: 8px;">Product</th>
			<th style="text-align: left; padding: 8px;">SKU</th>
			<th style="text-align: right; padding: 8px;">On hand</th>
			<th style="text-align: right; padding: 8px;">Reorder level</th>
		</tr>
		%s
	</table>
</body>
</html>`, len(items), rows.String())
}
