package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/ui"
)

func (h *Handler) HandleSell(c *fiber.Ctx) error {
	var cats []api.Category
	if u := currentUser(c); u != nil && u.IsDealer() {
		cats = h.categories(c)
	}
	return render(c, ui.SellCarsPage(viewer(c), cats))
}
