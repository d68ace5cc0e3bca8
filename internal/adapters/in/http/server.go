// Package http is the request/response half of the session gateway. Routes
// keep the paths and JSON field names the store dashboards already use.
package http

import (
	"context"
	"net/http"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/application/usecases/queries"
	"logistica/internal/core/domain/model/history"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
}

type AssignOrderHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrderCommand) error
}

type CompleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (*history.Record, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type DeleteHistoryHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteHistoryCommand) error
}

type VerifyDeliveryCodeHandler interface {
	Handle(ctx context.Context, query queries.VerifyDeliveryCodeQuery) (bool, error)
}

type GetDashboardHandler interface {
	Handle(ctx context.Context, query queries.GetDashboardQuery) (queries.GetDashboardQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   CreateOrderHandler
	assignOrderHandler   AssignOrderHandler
	completeOrderHandler CompleteOrderHandler
	deleteOrderHandler   DeleteOrderHandler
	deleteHistoryHandler DeleteHistoryHandler

	// Query handlers
	verifyDeliveryCodeHandler VerifyDeliveryCodeHandler
	getDashboardHandler       GetDashboardHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	assignOrderHandler AssignOrderHandler,
	completeOrderHandler CompleteOrderHandler,
	deleteOrderHandler DeleteOrderHandler,
	deleteHistoryHandler DeleteHistoryHandler,
	verifyDeliveryCodeHandler VerifyDeliveryCodeHandler,
	getDashboardHandler GetDashboardHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		assignOrderHandler:        assignOrderHandler,
		completeOrderHandler:      completeOrderHandler,
		deleteOrderHandler:        deleteOrderHandler,
		deleteHistoryHandler:      deleteHistoryHandler,
		verifyDeliveryCodeHandler: verifyDeliveryCodeHandler,
		getDashboardHandler:       getDashboardHandler,
	}
}

// Register mounts every route of the server on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/", s.Root)
	e.GET("/health", s.Health)
	e.GET("/api/dashboard/:store", s.GetDashboard)
	e.POST("/register-delivery", s.RegisterDelivery)
	e.POST("/assign-order", s.AssignOrder)
	e.POST("/verify-code", s.VerifyCode)
	e.POST("/complete-delivery", s.CompleteDelivery)
	e.DELETE("/orders/:id", s.DeleteOrder)
	e.DELETE("/history/:id", s.DeleteHistory)
}

// Root handles GET /.
func (s *Server) Root(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Logistica multi-store dispatch online")
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetDashboard handles GET /api/dashboard/:store.
func (s *Server) GetDashboard(ctx echo.Context) error {
	query, err := queries.NewGetDashboardQuery(ctx.Param("store"))
	if err != nil {
		return writeError(ctx, err)
	}

	dashboard, err := s.getDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dashboard)
}

// RegisterDelivery handles POST /register-delivery - creates a new order.
func (s *Server) RegisterDelivery(ctx echo.Context) error {
	var req RegisterDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.StoreKey, req.ClientName, req.Address, req.Phone, req.Price, req.Lat, req.Lng,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RegisterDeliveryResponse{
		Success: true,
		Order:   newCreatedOrder(result),
	})
}

// AssignOrder handles POST /assign-order.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewAssignOrderCommand(req.OrderID, req.StoreKey, req.DriverName, req.DriverPhone)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// VerifyCode handles POST /verify-code.
func (s *Server) VerifyCode(ctx echo.Context) error {
	var req VerifyCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	query, err := queries.NewVerifyDeliveryCodeQuery(req.OrderID, req.Code)
	if err != nil {
		return writeError(ctx, err)
	}

	valid, err := s.verifyDeliveryCodeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, VerifyCodeResponse{Valid: valid})
}

// CompleteDelivery handles POST /complete-delivery.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	var req CompleteDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewCompleteOrderCommand(req.OrderID, req.StoreKey, req.Signature)
	if err != nil {
		return writeError(ctx, err)
	}

	if _, err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// DeleteOrder handles DELETE /orders/:id - cancels a live order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	cmd, err := commands.NewDeleteOrderCommand(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// DeleteHistory handles DELETE /history/:id.
func (s *Server) DeleteHistory(ctx echo.Context) error {
	cmd, err := commands.NewDeleteHistoryCommand(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteHistoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}
