package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// HandleProfileForm opens the role profile modal. A missing profile is
// prefilled from the account.
func (h *Handler) HandleProfileForm(c *fiber.Ctx) error {
	u := currentUser(c)
	token := local.GetToken(c)
	p := ui.ProfileFields{Dealer: u.IsDealer(), FirstName: u.FirstName, LastName: u.LastName}

	var err error
	if u.IsDealer() {
		var dp api.DealerProfile
		if dp, err = h.API.DealerProfile(c.Context(), token); err == nil {
			p.FirstName, p.LastName, p.Phone, p.Address = dp.FirstName, dp.LastName, dp.Phone, dp.Address
		}
	} else {
		var bp api.BuyerProfile
		if bp, err = h.API.BuyerProfile(c.Context(), token); err == nil {
			p.FirstName, p.LastName, p.Phone = bp.FirstName, bp.LastName, bp.Phone
		}
	}
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		return h.formError(c, err, "Failed to load your profile")
	}
	return render(c, ui.ProfileModal(p))
}

// HandleSaveProfile updates the role profile, creating it when the backend
// has none, and refreshes the names held in the session.
func (h *Handler) HandleSaveProfile(c *fiber.Ctx) error {
	u := *currentUser(c)
	firstName, err := ValidateRequired(c, "first_name", "First name")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	lastName, err := ValidateRequired(c, "last_name", "Last name")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	phone := trimmed(c, "phone")
	token := local.GetToken(c)

	if u.IsDealer() {
		p := api.DealerProfile{FirstName: firstName, LastName: lastName, Phone: phone, Address: trimmed(c, "address")}
		_, err = h.API.UpdateDealerProfile(c.Context(), token, p)
		if errors.Is(err, api.ErrNotFound) {
			_, err = h.API.CreateDealerProfile(c.Context(), token, p)
		}
	} else {
		p := api.BuyerProfile{FirstName: firstName, LastName: lastName, Phone: phone}
		_, err = h.API.UpdateBuyerProfile(c.Context(), token, p)
		if errors.Is(err, api.ErrNotFound) {
			_, err = h.API.CreateBuyerProfile(c.Context(), token, p)
		}
	}
	if err != nil {
		return h.formError(c, err, "Failed to save your profile")
	}

	u.FirstName, u.LastName = firstName, lastName
	if err := h.Sessions.UpdateUser(c.Context(), local.GetSessionID(c), u); err != nil {
		zap.S().Errorf("[SESSION] Profile refresh failed: %v", err)
	}
	local.SetUser(c, u)
	zap.S().Infof("[PROFILE] userID=%d updated profile", u.ID)
	return render(c, ui.SuccessMessage("Profile saved", ui.DashboardPath(&u)))
}
