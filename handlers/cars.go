package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/listing"
	"github.com/leonexus/site/ui"
)

func (h *Handler) layout(c *fiber.Ctx) string {
	switch l := c.Query("layout"); l {
	case cookie.LayoutGrid, cookie.LayoutList:
		cookie.SetLayout(c, l)
		return l
	}
	return cookie.GetLayout(c)
}

// HandleCars renders the listing page, or just the results for htmx
// requests from the filter form, pagination and layout toggle.
func (h *Handler) HandleCars(c *fiber.Ctx) error {
	f := listing.ParseFilter(queryGetter(c))
	layout := h.layout(c)

	page, err := h.API.Cars(c.Context(), f.Values())
	if err != nil {
		if isHTMX(c) {
			return h.formError(c, err, "Failed to load cars")
		}
		return h.apiError(c, err, "Failed to load cars")
	}

	if isHTMX(c) {
		return render(c, ui.CarResults(page, f, layout))
	}

	cats, err := h.Catalog.Categories(c.Context())
	if err != nil {
		zap.S().Warnf("[API] Categories unavailable: %v", err)
	}
	return render(c, ui.CarsPage(viewer(c), f, page, cats, layout))
}

func (h *Handler) HandleSuggestions(c *fiber.Ctx) error {
	list, err := h.API.SearchSuggestions(c.Context(), getQueryParam(c, "search"))
	if err != nil {
		zap.S().Warnf("[API] Suggestions failed: %v", err)
		list = []api.Suggestion{}
	}
	return render(c, ui.Suggestions(list))
}
