// Package render turns derived receipts into printable plain text.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"steakz/internal/core/domain/services"
)

const (
	DefaultWidth = 40
	minWidth     = 24
)

// TextRenderer lays a receipt out for a fixed-width thermal printer.
type TextRenderer struct {
	Title string
	Width int
}

func NewTextRenderer(title string, width int) TextRenderer {
	if width < minWidth {
		width = DefaultWidth
	}
	return TextRenderer{Title: title, Width: width}
}

// Render writes r to w.
func (t TextRenderer) Render(w io.Writer, r services.Receipt) error {
	width := t.Width
	if width < minWidth {
		width = DefaultWidth
	}

	bw := bufio.NewWriter(w)
	rule := strings.Repeat("-", width)

	if t.Title != "" {
		fmt.Fprintln(bw, center(t.Title, width))
	}
	fmt.Fprintln(bw, columns(fmt.Sprintf("Receipt #%d", r.ReceiptID), fmt.Sprintf("Order #%d", r.OrderID), width))
	fmt.Fprintln(bw, r.Timestamp)
	fmt.Fprintf(bw, "Customer: %s\n", r.CustomerName)
	if r.DeliveryAddress != "" {
		fmt.Fprintf(bw, "Deliver to: %s\n", r.DeliveryAddress)
	}

	fmt.Fprintln(bw, rule)
	for _, line := range r.Lines {
		fmt.Fprintln(bw, columns(line.Label, line.Amount.Format(), width))
	}
	fmt.Fprintln(bw, rule)

	fmt.Fprintln(bw, columns("Subtotal", r.SubtotalText(), width))
	fmt.Fprintln(bw, columns("Tax", r.TaxText(), width))
	fmt.Fprintln(bw, columns("TOTAL", r.TotalText(), width))
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, columns("Payment", r.MethodText(), width))
	fmt.Fprintln(bw, columns("Status", r.StatusText(), width))

	return bw.Flush()
}

// String renders r into a string.
func (t TextRenderer) String(r services.Receipt) string {
	var sb strings.Builder
	_ = t.Render(&sb, r)
	return sb.String()
}

// columns puts left and right on one line, truncating left when both do not fit.
func columns(left, right string, width int) string {
	room := width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		return right
	}
	if utf8.RuneCountInString(left) > room {
		left = string([]rune(left)[:room-1]) + "~"
	}
	pad := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	return left + strings.Repeat(" ", pad) + right
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
