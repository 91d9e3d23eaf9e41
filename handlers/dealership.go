package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/dealership"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// myDealership returns the dealer's dealership, or false when none exists.
func (h *Handler) myDealership(c *fiber.Ctx) (api.Dealership, bool, error) {
	d, err := h.API.MyDealership(c.Context(), local.GetToken(c))
	if errors.Is(err, api.ErrNotFound) {
		return api.Dealership{}, false, nil
	}
	if err != nil {
		return api.Dealership{}, false, err
	}
	return d, true, nil
}

// HandleDealershipForm opens the create or edit dealership modal.
func (h *Handler) HandleDealershipForm(c *fiber.Ctx) error {
	d, exists, err := h.myDealership(c)
	if err != nil {
		return h.formError(c, err, "Failed to load your dealership")
	}
	return render(c, ui.DealershipModal(dealership.FormFrom(d), exists))
}

// HandleSaveDealership creates the dealership on first save and updates it
// afterwards.
func (h *Handler) HandleSaveDealership(c *fiber.Ctx) error {
	in, err := dealership.ParseForm(formGetter(c)).Validate()
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	files, err := formFiles(c, "avatar")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	var avatar *api.File
	if len(files) > 0 {
		avatar = &files[0]
	}

	_, exists, err := h.myDealership(c)
	if err != nil {
		return h.formError(c, err, "Failed to save your dealership")
	}
	token := local.GetToken(c)
	if exists {
		_, err = h.API.UpdateDealership(c.Context(), token, in, avatar)
	} else {
		_, err = h.API.CreateDealership(c.Context(), token, in, avatar)
	}
	if err != nil {
		return h.formError(c, err, "Failed to save your dealership")
	}
	h.Catalog.Invalidate()
	zap.S().Infof("[DEALERSHIP] userID=%d saved dealership name=%s created=%t", currentUserID(c), in.Name, !exists)
	return render(c, ui.SuccessMessage("Dealership saved", "/dashboard"))
}
