// Package apiclient implements ports.OrderGateway against the restaurant backend's HTTP API.
package apiclient

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/ports"
	"steakz/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:3000/api.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ ports.OrderGateway = (*Client)(nil)

func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api_client")

	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: logger})
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}

	return &Client{http: http, logger: logger}
}

func (c *Client) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (order.Order, error) {
	body := createOrderBody{
		BranchID:        req.BranchID,
		Items:           make([]orderLineBody, 0, len(req.Items)),
		DeliveryAddress: req.DeliveryAddress,
	}
	for _, it := range req.Items {
		body.Items = append(body.Items, orderLineBody{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	var out orderDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/orders")
	if err = c.check(ports.OpCreateOrder, resp, err); err != nil {
		return order.Order{}, err
	}

	o, err := out.toDomain()
	if err != nil {
		return order.Order{}, decodeFailure(ports.OpCreateOrder, err)
	}
	return o, nil
}

func (c *Client) CreateReceipt(ctx context.Context, req ports.CreateReceiptRequest) (payment.Payment, error) {
	body := createReceiptBody{
		OrderID:       req.OrderID,
		Subtotal:      req.Subtotal.Float64(),
		Tax:           req.Tax.Float64(),
		Total:         req.Total.Float64(),
		PaymentMethod: req.PaymentMethod.String(),
		CustomerName:  req.CustomerName,
	}

	var out paymentDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/receipts")
	if err = c.check(ports.OpCreateReceipt, resp, err); err != nil {
		return payment.Payment{}, err
	}

	p, err := out.toDomain()
	if err != nil {
		return payment.Payment{}, decodeFailure(ports.OpCreateReceipt, err)
	}
	return p, nil
}

func (c *Client) GetOrders(ctx context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	r := c.http.R().SetContext(ctx)
	if filter.Status != nil {
		r.SetQueryParam("status", filter.Status.String())
	}
	if filter.BranchID != nil {
		r.SetQueryParam("branchId", strconv.FormatInt(*filter.BranchID, 10))
	}

	var out []orderDTO
	resp, err := r.SetResult(&out).SetError(&apiError{}).Get("/orders")
	if err = c.check(ports.OpGetOrders, resp, err); err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(out))
	for _, d := range out {
		o, dErr := d.toDomain()
		if dErr != nil {
			c.logger.WarnContext(ctx, "skipping undecodable order", "order_id", d.ID, "error", dErr)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status order.Status) (order.Order, error) {
	var out orderDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(orderID, 10)).
		SetBody(updateStatusBody{Status: status.String()}).
		SetResult(&out).
		SetError(&apiError{}).
		Patch("/orders/{id}/status")
	if err = c.check(ports.OpUpdateOrderStatus, resp, err); err != nil {
		return order.Order{}, err
	}

	o, err := out.toDomain()
	if err != nil {
		return order.Order{}, decodeFailure(ports.OpUpdateOrderStatus, err)
	}
	return o, nil
}

// check turns transport errors and non-2xx responses into RemoteRequestFailedError, preferring
// the server's message over the operation's fallback.
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return errs.NewRemoteRequestFailedErrorWithCause(op, ports.FallbackMessage(op), err)
	}
	if !resp.IsError() {
		return nil
	}

	message := ports.FallbackMessage(op)
	if body, ok := resp.Error().(*apiError); ok && strings.TrimSpace(body.Message) != "" {
		message = body.Message
	}
	c.logger.Warn("backend request failed",
		"operation", op, "status", resp.StatusCode(), "message", message)
	return errs.NewRemoteRequestFailedError(op, message, resp.StatusCode())
}

func decodeFailure(op string, err error) error {
	return errs.NewRemoteRequestFailedErrorWithCause(op, ports.FallbackMessage(op), fmt.Errorf("unexpected response: %w", err))
}

// restyLogger routes resty's internal logging to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
