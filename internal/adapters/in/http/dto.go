package http

import (
	"time"

	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/domain/services"
)

// Request bodies.
type (
	MenuItem struct {
		ID          int64        `json:"id"`
		Name        string       `json:"name"`
		Price       kernel.Money `json:"price"`
		Description string       `json:"description,omitempty"`
	}

	AddCartItem struct {
		MenuItem MenuItem `json:"menuItem"`
		Quantity *int     `json:"quantity,omitempty"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}

	PlaceOrder struct {
		DeliveryAddress string  `json:"deliveryAddress"`
		BranchID        *int64  `json:"branchId,omitempty"`
		PaymentMethod   string  `json:"paymentMethod,omitempty"`
		CustomerName    *string `json:"customerName,omitempty"`
	}

	ChangeOrderStatus struct {
		Status string `json:"status"`
	}
)

type CartLine struct {
	ID       string   `json:"id"`
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
	Total    string   `json:"total"`
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalPrice string     `json:"totalPrice"`
	TotalItems int        `json:"totalItems"`
}

type Customer struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type OrderItem struct {
	MenuItemID int64  `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Amount     string `json:"amount"`
}

type Payment struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	Subtotal     string    `json:"subtotal"`
	Tax          string    `json:"tax"`
	Amount       string    `json:"amount"`
	Method       string    `json:"paymentMethod"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Order struct {
	ID                   int64       `json:"id"`
	Status               string      `json:"status"`
	Items                []OrderItem `json:"items"`
	TotalAmount          string      `json:"totalAmount"`
	Customer             *Customer   `json:"customer,omitempty"`
	DeliveryAddress      string      `json:"deliveryAddress,omitempty"`
	BranchID             int64       `json:"branchId"`
	CreatedAt            time.Time   `json:"createdAt"`
	Payment              *Payment    `json:"payment,omitempty"`
	AvailableTransitions []string    `json:"availableTransitions,omitempty"`
}

type Placement struct {
	Order          Order    `json:"order"`
	Receipt        *Payment `json:"receipt,omitempty"`
	BranchID       int64    `json:"branchId"`
	Subtotal       string   `json:"subtotal"`
	Tax            string   `json:"tax"`
	Total          string   `json:"total"`
	ReceiptPending bool     `json:"receiptPending"`
	Warning        string   `json:"warning,omitempty"`
}

type PlacementState struct {
	Placing bool `json:"placing"`
}

type StatusChange struct {
	Order     Order   `json:"order"`
	Orders    []Order `json:"orders"`
	Refreshed bool    `json:"refreshed"`
}

type ReceiptLine struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	Amount   string `json:"amount"`
	Text     string `json:"text"`
}

type Receipt struct {
	OrderID         int64         `json:"orderId"`
	ReceiptID       int64         `json:"receiptId"`
	CustomerName    string        `json:"customerName"`
	Timestamp       string        `json:"timestamp"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	Lines           []ReceiptLine `json:"lines"`
	Subtotal        string        `json:"subtotal"`
	Tax             string        `json:"tax"`
	Total           string        `json:"total"`
	PaymentMethod   string        `json:"paymentMethod"`
	Status          string        `json:"status"`
}

type ReceiptStats struct {
	Revenue        string            `json:"revenue"`
	CompletedCount int               `json:"completedCount"`
	ByMethod       map[string]string `json:"byMethod"`
}

type ReceiptList struct {
	Receipts []Payment    `json:"receipts"`
	Stats    ReceiptStats `json:"stats"`
}

func toCart(contents cartstore.Contents) Cart {
	out := Cart{
		Items:      make([]CartLine, 0, len(contents.Lines)),
		TotalPrice: contents.TotalPrice.Format(),
		TotalItems: contents.TotalItems,
	}
	for _, l := range contents.Lines {
		out.Items = append(out.Items, CartLine{
			ID:       l.ID().String(),
			MenuItem: toMenuItem(l.MenuItem()),
			Quantity: l.Quantity(),
			Total:    l.Total().Format(),
		})
	}
	return out
}

func toMenuItem(m cart.MenuItem) MenuItem {
	return MenuItem{ID: m.ID(), Name: m.Name(), Price: m.Price(), Description: m.Description()}
}

func toPayment(p payment.Payment) Payment {
	return Payment{
		ID:           p.ID,
		OrderID:      p.OrderID,
		Subtotal:     p.Subtotal.Format(),
		Tax:          p.Tax.Format(),
		Amount:       p.Amount.Format(),
		Method:       p.Method.String(),
		Status:       p.Status.String(),
		CustomerName: p.CustomerName,
		CreatedAt:    p.CreatedAt,
	}
}

func toOrder(o order.Order, transitions []order.Status) Order {
	out := Order{
		ID:              o.ID,
		Status:          o.Status.String(),
		Items:           make([]OrderItem, 0, len(o.Items)),
		TotalAmount:     o.TotalAmount.Format(),
		DeliveryAddress: o.DeliveryAddress,
		BranchID:        o.BranchID,
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.Format(),
			Amount:     it.LineAmount().Format(),
		})
	}
	if o.Customer != nil {
		out.Customer = &Customer{ID: o.Customer.ID, Username: o.Customer.Username}
	}
	if o.Payment != nil {
		p := toPayment(*o.Payment)
		out.Payment = &p
	}
	for _, st := range transitions {
		out.AvailableTransitions = append(out.AvailableTransitions, st.String())
	}
	return out
}

func toOrders(orders []order.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o, nil))
	}
	return out
}

func toReceipt(r services.Receipt) Receipt {
	out := Receipt{
		OrderID:         r.OrderID,
		ReceiptID:       r.ReceiptID,
		CustomerName:    r.CustomerName,
		Timestamp:       r.Timestamp,
		DeliveryAddress: r.DeliveryAddress,
		Lines:           make([]ReceiptLine, 0, len(r.Lines)),
		Subtotal:        r.SubtotalText(),
		Tax:             r.TaxText(),
		Total:           r.TotalText(),
		PaymentMethod:   r.MethodText(),
		Status:          r.StatusText(),
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, ReceiptLine{
			Quantity: l.Quantity,
			Name:     l.Name,
			Label:    l.Label,
			Amount:   l.Amount.Format(),
			Text:     l.Text(),
		})
	}
	return out
}

func toReceiptList(receipts []payment.Payment, stats services.ReceiptStats) ReceiptList {
	out := ReceiptList{
		Receipts: make([]Payment, 0, len(receipts)),
		Stats: ReceiptStats{
			Revenue:        stats.Revenue.Format(),
			CompletedCount: stats.CompletedCount,
			ByMethod:       make(map[string]string, len(stats.ByMethod)),
		},
	}
	for _, p := range receipts {
		out.Receipts = append(out.Receipts, toPayment(p))
	}
	for m, total := range stats.ByMethod {
		out.Stats.ByMethod[m.String()] = total.Format()
	}
	return out
}
