package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// handleListDeployments returns recorded token deployments, optionally
// filtered by user via the user_id query parameter.
func (s *APIServer) handleListDeployments(c *fiber.Ctx) error {
	if userID := c.Query("user_id"); userID != "" {
		deployments, err := s.deployments.ListDeploymentsByUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"deployments": deployments})
	}

	deployments, err := s.deployments.ListDeployments()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"deployments": deployments})
}

// handleGetDeployment returns one deployment by token address
func (s *APIServer) handleGetDeployment(c *fiber.Ctx) error {
	deployment, err := s.deployments.GetDeploymentByTokenAddress(c.Params("token_address"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "deployment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(deployment)
}

// handleListSwaps returns the recorded swap history for a wallet
func (s *APIServer) handleListSwaps(c *fiber.Ctx) error {
	records, err := s.swaps.ListSwapRecordsByUser(c.Params("user_address"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"swaps": records})
}
