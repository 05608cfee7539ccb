package apiclient

import (
	"fmt"
	"time"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
)

type createOrderBody struct {
	BranchID        int64           `json:"branchId"`
	Items           []orderLineBody `json:"items"`
	DeliveryAddress string          `json:"deliveryAddress"`
}

type orderLineBody struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

type createReceiptBody struct {
	OrderID       int64   `json:"orderId"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
	CustomerName  string  `json:"customerName"`
}

type updateStatusBody struct {
	Status string `json:"status"`
}

// apiError is the error body the backend sends.
type apiError struct {
	Message string `json:"message"`
}

type orderDTO struct {
	ID              int64          `json:"id"`
	Status          string         `json:"status"`
	Items           []orderItemDTO `json:"items"`
	TotalAmount     float64        `json:"totalAmount"`
	Customer        *customerDTO   `json:"customer"`
	DeliveryAddress string         `json:"deliveryAddress"`
	BranchID        int64          `json:"branchId"`
	CreatedAt       time.Time      `json:"createdAt"`
	Payment         *paymentDTO    `json:"payment"`
}

type orderItemDTO struct {
	MenuItemID int64        `json:"menuItemId"`
	Name       string       `json:"name"`
	MenuItem   *menuItemDTO `json:"menuItem"`
	Quantity   int          `json:"quantity"`
	UnitPrice  float64      `json:"unitPrice"`
	Subtotal   float64      `json:"subtotal"`
}

type menuItemDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type customerDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type paymentDTO struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	Amount       float64   `json:"amount"`
	Tax          float64   `json:"tax"`
	Subtotal     float64   `json:"subtotal"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (d orderDTO) toDomain() (order.Order, error) {
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %d: %w", d.ID, err)
	}

	o := order.Order{
		ID:              d.ID,
		Status:          status,
		Items:           make([]order.Item, 0, len(d.Items)),
		TotalAmount:     kernel.MoneyFromFloat(d.TotalAmount),
		DeliveryAddress: d.DeliveryAddress,
		BranchID:        d.BranchID,
		CreatedAt:       d.CreatedAt,
	}
	if d.Customer != nil {
		o.Customer = &order.Customer{ID: d.Customer.ID, Username: d.Customer.Username}
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, it.toDomain())
	}
	if d.Payment != nil {
		p, pErr := d.Payment.toDomain()
		if pErr != nil {
			return order.Order{}, fmt.Errorf("order %d: %w", d.ID, pErr)
		}
		o.Payment = &p
	}
	return o, nil
}

func (d orderItemDTO) toDomain() order.Item {
	item := order.Item{
		MenuItemID: d.MenuItemID,
		Name:       d.Name,
		Quantity:   d.Quantity,
		UnitPrice:  kernel.MoneyFromFloat(d.UnitPrice),
		Subtotal:   kernel.MoneyFromFloat(d.Subtotal),
	}
	if d.MenuItem != nil {
		if item.Name == "" {
			item.Name = d.MenuItem.Name
		}
		if item.MenuItemID == 0 {
			item.MenuItemID = d.MenuItem.ID
		}
	}
	return item
}

func (d paymentDTO) toDomain() (payment.Payment, error) {
	method, err := payment.ParseMethod(d.Method)
	if err != nil {
		return payment.Payment{}, err
	}
	status, err := payment.ParseStatus(d.Status)
	if err != nil {
		return payment.Payment{}, err
	}
	return payment.Payment{
		ID:           d.ID,
		OrderID:      d.OrderID,
		Amount:       kernel.MoneyFromFloat(d.Amount),
		Tax:          kernel.MoneyFromFloat(d.Tax),
		Subtotal:     kernel.MoneyFromFloat(d.Subtotal),
		Method:       method,
		Status:       status,
		CustomerName: d.CustomerName,
		CreatedAt:    d.CreatedAt,
	}, nil
}
