// Package http implements the inbound HTTP adapter.
// It coordinates between HTTP handlers and application use cases, translating
// transport concerns (binding, status codes) at the boundary so the
// application layer stays transport-agnostic.
package http

import (
	"errors"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one requested product line in an order request.
// Amounts travel as decimal strings ("10.00"); absent discounts default to zero.
type OrderLineRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	DiscountAmount string `json:"discountAmount,omitempty"`
}

// ComposeOrderRequest is the body of POST /api/v1/orders.
type ComposeOrderRequest struct {
	UserID         string             `json:"userId"`
	Items          []OrderLineRequest `json:"items"`
	DiscountAmount string             `json:"discountAmount,omitempty"`
}

// ComposeOrderResponse returns the identifier assigned to the new order.
type ComposeOrderResponse struct {
	OrderID string `json:"orderId"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateQuantityRequest is the body of PUT /api/v1/orders/:id/items/:itemId.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateDiscountRequest is the body of PUT /api/v1/orders/:id/discount.
type UpdateDiscountRequest struct {
	DiscountAmount string `json:"discountAmount"`
}

// OrderSummary is one row of the order list responses.
type OrderSummary struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	OrderDate      time.Time `json:"orderDate"`
	Status         string    `json:"status"`
	ItemCount      int       `json:"itemCount"`
	DiscountAmount string    `json:"discountAmount"`
	FinalAmount    string    `json:"finalAmount"`
}

// Server implements the HTTP handlers for the order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	composeOrderHandler   commands.ComposeOrderCommandHandler
	updateStatusHandler   commands.UpdateOrderStatusCommandHandler
	addItemHandler        commands.AddOrderItemCommandHandler
	removeItemHandler     commands.RemoveOrderItemCommandHandler
	updateQuantityHandler commands.UpdateItemQuantityCommandHandler
	updateDiscountHandler commands.UpdateOrderDiscountCommandHandler

	// Query handlers
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler
	getUndeliveredHandler  queries.GetUndeliveredOrdersQueryHandler

	// OpenAPI contract served at /openapi.json
	openapiDoc *openapi3.T
}

// NewServer creates a new HTTP server with the required command and query handlers.
// The OpenAPI document is loaded and validated from the given path at startup,
// so a malformed contract fails fast instead of at first request.
func NewServer(
	composeOrderHandler commands.ComposeOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	addItemHandler commands.AddOrderItemCommandHandler,
	removeItemHandler commands.RemoveOrderItemCommandHandler,
	updateQuantityHandler commands.UpdateItemQuantityCommandHandler,
	updateDiscountHandler commands.UpdateOrderDiscountCommandHandler,
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler,
	getUndeliveredHandler queries.GetUndeliveredOrdersQueryHandler,
	openapiPath string,
) (*Server, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openapiPath)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	return &Server{
		composeOrderHandler:    composeOrderHandler,
		updateStatusHandler:    updateStatusHandler,
		addItemHandler:         addItemHandler,
		removeItemHandler:      removeItemHandler,
		updateQuantityHandler:  updateQuantityHandler,
		updateDiscountHandler:  updateDiscountHandler,
		getOrdersByUserHandler: getOrdersByUserHandler,
		getUndeliveredHandler:  getUndeliveredHandler,
		openapiDoc:             doc,
	}, nil
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/openapi.json", s.OpenAPI)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.ComposeOrder)
	v1.GET("/orders", s.GetOrders)
	v1.POST("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/items", s.AddOrderItem)
	v1.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)
	v1.PUT("/orders/:id/items/:itemId", s.UpdateItemQuantity)
	v1.PUT("/orders/:id/discount", s.UpdateOrderDiscount)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// OpenAPI handles GET /openapi.json - serves the API contract.
func (s *Server) OpenAPI(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.openapiDoc)
}

// ComposeOrder handles POST /api/v1/orders - places a new order.
func (s *Server) ComposeOrder(ctx echo.Context) error {
	var req ComposeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		line, lineErr := parseOrderLine(item)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	discount, err := parseOptionalAmount(req.DiscountAmount)
	if err != nil {
		return badRequest(ctx, "Invalid discount amount: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewComposeOrderCommand(orderID, userID, lines, discount)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.composeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ComposeOrderResponse{OrderID: orderID.String()})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req OrderLineRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}

	discount, err := parseOptionalAmount(req.DiscountAmount)
	if err != nil {
		return badRequest(ctx, "Invalid discount amount: "+err.Error())
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, productID, req.Quantity, discount)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if err = s.addItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:itemId.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id: "+err.Error())
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return badRequest(ctx, "Invalid removal data: "+err.Error())
	}

	if err = s.removeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItemQuantity handles PUT /api/v1/orders/:id/items/:itemId.
func (s *Server) UpdateItemQuantity(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id: "+err.Error())
	}

	var req UpdateQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemQuantityCommand(orderID, itemID, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity data: "+err.Error())
	}

	if err = s.updateQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderDiscount handles PUT /api/v1/orders/:id/discount.
func (s *Server) UpdateOrderDiscount(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req UpdateDiscountRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	amount, err := kernel.MoneyFromString(req.DiscountAmount)
	if err != nil {
		return badRequest(ctx, "Invalid discount amount: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderDiscountCommand(orderID, amount)
	if err != nil {
		return badRequest(ctx, "Invalid discount data: "+err.Error())
	}

	if err = s.updateDiscountHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders.
// With a userId query parameter it returns that user's order history;
// without one it returns all undelivered orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	var userIDParam string
	if err := runtime.BindQueryParameter(
		"form", true, false, "userId", ctx.QueryParams(), &userIDParam,
	); err != nil {
		return badRequest(ctx, "Invalid userId parameter: "+err.Error())
	}

	if userIDParam == "" {
		summaries, err := s.getUndeliveredHandler.Handle(
			ctx.Request().Context(), queries.NewGetUndeliveredOrdersQuery(),
		)
		if err != nil {
			return mapDomainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toSummaries(summaries))
	}

	userID, err := kernel.UUIDFromString(userIDParam)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	query, err := queries.NewGetOrdersByUserQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summaries, err := s.getOrdersByUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSummaries(summaries))
}

func parseOrderLine(req OrderLineRequest) (commands.OrderLine, error) {
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return commands.OrderLine{}, err
	}

	discount, err := parseOptionalAmount(req.DiscountAmount)
	if err != nil {
		return commands.OrderLine{}, err
	}

	return commands.NewOrderLine(productID, req.Quantity, discount)
}

// parseOptionalAmount treats an absent amount as zero.
func parseOptionalAmount(s string) (kernel.Money, error) {
	if s == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.MoneyFromString(s)
}

func toSummaries(rows []queries.OrderSummaryResponse) []OrderSummary {
	response := make([]OrderSummary, len(rows))
	for i, row := range rows {
		response[i] = OrderSummary{
			ID:             row.ID.String(),
			UserID:         row.UserID.String(),
			OrderDate:      row.OrderDate,
			Status:         row.Status,
			ItemCount:      row.ItemCount,
			DiscountAmount: row.DiscountAmount.StringFixed(2),
			FinalAmount:    row.FinalAmount.StringFixed(2),
		}
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates application errors into HTTP status codes.
// Unclassified errors surface as 500 without leaking internals.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
