package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leonexus/site/dealership"
	"github.com/leonexus/site/ui"
)

// HandleDealers lists dealerships. The search runs against the cached full
// list so typing does not hit the backend on every keystroke.
func (h *Handler) HandleDealers(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("search"))
	list, err := h.Catalog.Dealerships(c.Context(), "")
	if err != nil {
		if isHTMX(c) {
			return h.formError(c, err, "Failed to load dealers")
		}
		return h.apiError(c, err, "Failed to load dealers")
	}
	list = dealership.Filter(list, q)
	if isHTMX(c) {
		return render(c, ui.DealershipList(list))
	}
	return render(c, ui.DealersPage(viewer(c), q, list))
}
