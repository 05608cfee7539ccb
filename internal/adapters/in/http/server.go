// Package http exposes the terminal core to the terminal UI as a JSON API served by echo.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"steakz/internal/adapters/out/render"
	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/application/usecases/commands"
	"steakz/internal/core/application/usecases/queries"
	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/domain/services"
	"steakz/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiPrefix = "/api/v1"

// CartStore is the terminal's cart.
type CartStore interface {
	AddToCart(ctx context.Context, item cart.MenuItem, quantity int) error
	RemoveFromCart(ctx context.Context, lineID kernel.UUID)
	UpdateQuantity(ctx context.Context, lineID kernel.UUID, quantity int)
	ClearCart(ctx context.Context)
	Contents() cartstore.Contents
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	cart CartStore

	// Command handlers
	placeOrderHandler   *commands.PlaceOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrdersHandler   queries.GetOrdersQueryHandler
	getReceiptHandler  queries.GetReceiptQueryHandler
	getReceiptsHandler queries.GetReceiptsQueryHandler

	renderer render.TextRenderer
	logger   *slog.Logger
}

func NewServer(
	cartStore CartStore,
	placeOrderHandler *commands.PlaceOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getReceiptHandler queries.GetReceiptQueryHandler,
	getReceiptsHandler queries.GetReceiptsQueryHandler,
	renderer render.TextRenderer,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cart:                cartStore,
		placeOrderHandler:   placeOrderHandler,
		changeStatusHandler: changeStatusHandler,
		getOrdersHandler:    getOrdersHandler,
		getReceiptHandler:   getReceiptHandler,
		getReceiptsHandler:  getReceiptsHandler,
		renderer:            renderer,
		logger:              logger.With("component", "http"),
	}
}

// Register installs middleware and routes on e. Requests under /api/v1 are validated against doc.
func (s *Server) Register(e *echo.Echo, doc *openapi3.T) error {
	validator, err := openAPIValidator(doc, apiPrefix)
	if err != nil {
		return err
	}
	if err := registerSwagger(doc); err != nil {
		return err
	}

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	g := e.Group(apiPrefix, validator)

	g.GET("/cart", s.GetCart)
	g.DELETE("/cart", s.ClearCart)
	g.POST("/cart/items", s.AddCartItem)
	g.PATCH("/cart/items/:lineId", s.UpdateCartItem)
	g.DELETE("/cart/items/:lineId", s.RemoveCartItem)

	g.GET("/orders", s.ListOrders)
	g.POST("/orders", s.PlaceOrder)
	g.GET("/orders/placement", s.GetPlacementState)
	g.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)

	g.GET("/receipts", s.ListReceipts)
	g.GET("/receipts/:receiptId", s.GetReceipt)
	g.GET("/receipts/:receiptId/text", s.GetReceiptText)

	return nil
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, toCart(s.cart.Contents()))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	s.cart.ClearCart(c.Request().Context())
	return c.JSON(http.StatusOK, toCart(s.cart.Contents()))
}

// AddCartItem handles POST /api/v1/cart/items. Quantity defaults to 1.
func (s *Server) AddCartItem(c echo.Context) error {
	var body AddCartItem
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	item, err := cart.NewMenuItem(body.MenuItem.ID, body.MenuItem.Name, body.MenuItem.Price, body.MenuItem.Description)
	if err != nil {
		return s.fail(c, err)
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	if err := s.cart.AddToCart(c.Request().Context(), item, quantity); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCart(s.cart.Contents()))
}

// UpdateCartItem handles PATCH /api/v1/cart/items/{lineId}. A quantity of zero or less removes
// the line.
func (s *Server) UpdateCartItem(c echo.Context) error {
	lineID, err := lineIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body UpdateCartItem
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	s.cart.UpdateQuantity(c.Request().Context(), lineID, body.Quantity)
	return c.JSON(http.StatusOK, toCart(s.cart.Contents()))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{lineId}.
func (s *Server) RemoveCartItem(c echo.Context) error {
	lineID, err := lineIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	s.cart.RemoveFromCart(c.Request().Context(), lineID)
	return c.JSON(http.StatusOK, toCart(s.cart.Contents()))
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body PlaceOrder
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	method, err := payment.ParseMethod(body.PaymentMethod)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(caller, body.DeliveryAddress, body.BranchID, method, body.CustomerName)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.placeOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil && !errors.Is(err, commands.ErrReceiptPending) {
		return s.fail(c, err)
	}

	response := Placement{
		Order:          toOrder(result.Order, nil),
		BranchID:       result.BranchID,
		Subtotal:       result.Totals.Subtotal.Format(),
		Tax:            result.Totals.Tax.Format(),
		Total:          result.Totals.Total.Format(),
		ReceiptPending: result.ReceiptPending,
	}
	if result.Receipt != nil {
		p := toPayment(*result.Receipt)
		response.Receipt = &p
	}
	if err != nil {
		response.Warning = err.Error()
	}

	return c.JSON(http.StatusCreated, response)
}

// GetPlacementState handles GET /api/v1/orders/placement.
func (s *Server) GetPlacementState(c echo.Context) error {
	return c.JSON(http.StatusOK, PlacementState{Placing: s.placeOrderHandler.IsPlacingOrder()})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var rawStatus, search string
	var refresh bool
	if err := bindQuery(c, "status", &rawStatus); err != nil {
		return s.fail(c, err)
	}
	if err := bindQuery(c, "search", &search); err != nil {
		return s.fail(c, err)
	}
	if err := bindQuery(c, "refresh", &refresh); err != nil {
		return s.fail(c, err)
	}

	var status *order.Status
	if rawStatus != "" {
		st, parseErr := order.ParseStatus(rawStatus)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		status = &st
	}

	query, err := queries.NewGetOrdersQuery(caller, status, search, refresh)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.getOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Order, 0, len(views))
	for _, v := range views {
		response = append(response, toOrder(v.Order, v.AvailableTransitions))
	}
	return c.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	orderID, err := int64Param(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var body ChangeOrderStatus
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(caller, orderID, target)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, StatusChange{
		Order:     toOrder(result.Order, nil),
		Orders:    toOrders(result.Orders),
		Refreshed: result.Refreshed,
	})
}

// ListReceipts handles GET /api/v1/receipts.
func (s *Server) ListReceipts(c echo.Context) error {
	var rawMethod, rawStatus, search string
	var refresh bool
	for name, dest := range map[string]any{
		"method":  &rawMethod,
		"status":  &rawStatus,
		"search":  &search,
		"refresh": &refresh,
	} {
		if err := bindQuery(c, name, dest); err != nil {
			return s.fail(c, err)
		}
	}

	method := payment.UnknownMethod
	if strings.TrimSpace(rawMethod) != "" {
		m, err := payment.ParseMethod(rawMethod)
		if err != nil {
			return s.fail(c, err)
		}
		method = m
	}

	status := payment.UnknownStatus
	if strings.TrimSpace(rawStatus) != "" {
		st, err := payment.ParseStatus(rawStatus)
		if err != nil {
			return s.fail(c, err)
		}
		status = st
	}

	response, err := s.getReceiptsHandler.Handle(c.Request().Context(),
		queries.NewGetReceiptsQuery(method, status, search, refresh))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toReceiptList(response.Receipts, response.Stats))
}

// GetReceipt handles GET /api/v1/receipts/{receiptId}.
func (s *Server) GetReceipt(c echo.Context) error {
	receipt, err := s.receipt(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toReceipt(receipt))
}

// GetReceiptText handles GET /api/v1/receipts/{receiptId}/text.
func (s *Server) GetReceiptText(c echo.Context) error {
	receipt, err := s.receipt(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.String(http.StatusOK, s.renderer.String(receipt))
}

func (s *Server) receipt(c echo.Context) (services.Receipt, error) {
	receiptID, err := int64Param(c, "receiptId")
	if err != nil {
		return services.Receipt{}, err
	}
	query, err := queries.NewGetReceiptQuery(receiptID)
	if err != nil {
		return services.Receipt{}, err
	}
	return s.getReceiptHandler.Handle(c.Request().Context(), query)
}

func int64Param(c echo.Context, name string) (int64, error) {
	var v int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func lineIDParam(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "lineId", c.Param("lineId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("lineId", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("lineId", err)
	}
	return id, nil
}

func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}
