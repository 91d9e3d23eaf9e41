package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

func (h *Handler) HandleBuyerDashboard(c *fiber.Ctx) error {
	favs, err := h.API.Favorites(c.Context(), local.GetToken(c))
	if err != nil {
		return h.apiError(c, err, "Failed to load your favorites")
	}
	return render(c, ui.BuyerDashboardPage(viewer(c), favs))
}
