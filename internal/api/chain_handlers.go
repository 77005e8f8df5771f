package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/b3dotfun/sdk-go/internal/gasoracle"
	"github.com/b3dotfun/sdk-go/internal/registry"
)

// handleListChains returns every chain in the registry
func (s *APIServer) handleListChains(c *fiber.Ctx) error {
	ids := registry.ChainIDs()
	chains := make([]fiber.Map, 0, len(ids))
	for _, id := range ids {
		chain, err := registry.GetChain(id)
		if err != nil {
			continue
		}
		chains = append(chains, fiber.Map{
			"chain_id":      chain.ID,
			"name":          chain.Name,
			"gas_supported": gasoracle.IsSupported(chain.ID),
		})
	}
	return c.JSON(fiber.Map{"chains": chains})
}

// handleGetChain returns one chain's registry entry
func (s *APIServer) handleGetChain(c *fiber.Ctx) error {
	chainID, err := strconv.ParseInt(c.Params("chain_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid chain id",
		})
	}

	chain, err := registry.GetChain(chainID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(chain)
}

// handleListChainTokens returns the default token list for a chain, native
// token first.
func (s *APIServer) handleListChainTokens(c *fiber.Ctx) error {
	chainID, err := strconv.ParseInt(c.Params("chain_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid chain id",
		})
	}

	if !registry.IsSupported(chainID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown chain",
		})
	}
	return c.JSON(fiber.Map{"tokens": registry.DefaultTokens(chainID)})
}

// handleGetGasPrice proxies the gas oracle for one chain
func (s *APIServer) handleGetGasPrice(c *fiber.Ctx) error {
	chainID, err := strconv.ParseInt(c.Params("chain_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid chain id",
		})
	}
	if !gasoracle.IsSupported(chainID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "gas oracle does not support this chain",
		})
	}

	data, err := s.gas.Fetch(c.Context(), chainID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(data)
}
