package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// HandleToggleFavorite flips the car in the buyer's favorites and swaps the
// button.
func (h *Handler) HandleToggleFavorite(c *fiber.Ctx) error {
	carID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	favorited, err := h.API.ToggleFavorite(c.Context(), local.GetToken(c), carID)
	if err != nil {
		return h.formError(c, err, "Failed to update favorites")
	}
	zap.S().Infof("[FAVORITE] userID=%d car=%d favorited=%t", currentUserID(c), carID, favorited)
	return render(c, ui.FavoriteButton(carID, favorited))
}

// HandleRemoveFavorite deletes a favorite and re-renders the grid.
func (h *Handler) HandleRemoveFavorite(c *fiber.Ctx) error {
	favID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	token := local.GetToken(c)
	if err := h.API.RemoveFavorite(c.Context(), token, favID); err != nil {
		return h.formError(c, err, "Failed to remove favorite")
	}
	favs, err := h.API.Favorites(c.Context(), token)
	if err != nil {
		return h.formError(c, err, "Failed to load favorites")
	}
	return render(c, ui.Favorites(favs))
}
