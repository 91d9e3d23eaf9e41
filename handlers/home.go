package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/ui"
)

const featuredCount = 6

// HandleHome renders the landing page. Both sections degrade to empty when
// the backend is unavailable.
func (h *Handler) HandleHome(c *fiber.Ctx) error {
	var (
		stats    *api.Stats
		featured []api.Car
	)
	eg, ctx := errgroup.WithContext(c.Context())
	eg.Go(func() error {
		s, err := h.Catalog.Stats(ctx)
		if err != nil {
			zap.S().Warnf("[API] Landing stats unavailable: %v", err)
			return nil
		}
		stats = &s
		return nil
	})
	eg.Go(func() error {
		page, err := h.API.Cars(ctx, url.Values{"ordering": {"-created_at"}})
		if err != nil {
			zap.S().Warnf("[API] Featured cars unavailable: %v", err)
			return nil
		}
		featured = page.Cars
		if len(featured) > featuredCount {
			featured = featured[:featuredCount]
		}
		return nil
	})
	_ = eg.Wait()

	return render(c, ui.LandingPage(viewer(c), stats, featured))
}
