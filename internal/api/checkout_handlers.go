package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/b3dotfun/sdk-go/internal/api/middleware"
	"github.com/b3dotfun/sdk-go/internal/checkout"
	"github.com/b3dotfun/sdk-go/internal/models"
)

var validate = validator.New()

// handleCreateCheckoutSession opens a session with the checkout backend and
// stores a local snapshot for later listing.
func (s *APIServer) handleCreateCheckoutSession(c *fiber.Ctx) error {
	if s.checkout == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "checkout backend is not configured",
		})
	}

	var req models.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session, err := s.checkout.CreateSession(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	record := &models.CheckoutSessionRecord{
		ID:          session.ID,
		Status:      session.Status,
		CheckoutURL: session.CheckoutURL,
		OrderID:     session.OrderID,
		OrderStatus: session.OrderStatus,
		OrderType:   req.OrderType,
		SrcChainID:  req.SrcChainID,
		DstChainID:  req.DstChainID,
		ExpiresAt:   session.ExpiresAt,
	}
	if user := middleware.GetAuthenticatedUser(c); user != nil {
		record.UserID = &user.Sub
	}
	// The backend session exists regardless; losing the snapshot only
	// affects local listing.
	_ = s.sessions.CreateSession(record)

	return c.Status(fiber.StatusCreated).JSON(session)
}

// handleGetCheckoutSession returns the backend's current view of a session
// plus the display classification of its order, refreshing the local snapshot
// on the way through.
func (s *APIServer) handleGetCheckoutSession(c *fiber.Ctx) error {
	if s.checkout == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "checkout backend is not configured",
		})
	}

	session, err := s.checkout.GetSession(c.Context(), c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Snapshot staleness is tolerable; the backend response is truth.
	_ = s.sessions.SyncSession(session)

	return c.JSON(fiber.Map{
		"session": session,
		"display": checkout.GetStatusDisplay(models.Order{
			ID:         session.OrderID,
			Status:     session.OrderStatus,
			Settlement: session.Settlement,
		}),
	})
}

// handleGetOrderStatus returns the display classification for an order
func (s *APIServer) handleGetOrderStatus(c *fiber.Ctx) error {
	if s.checkout == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "checkout backend is not configured",
		})
	}

	order, err := s.checkout.GetOrder(c.Context(), c.Params("order_id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := fiber.Map{
		"order":   order,
		"display": checkout.GetStatusDisplay(*order),
	}
	if order.Status == models.OrderStatusFailure {
		resp["error_message"] = checkout.GetErrorDisplay(order.ErrorDetails)
	}
	return c.JSON(resp)
}
