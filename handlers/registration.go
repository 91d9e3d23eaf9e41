package handlers

import (
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/password"
	"github.com/leonexus/site/ui"
)

func (h *Handler) HandleSignUp(c *fiber.Ctx) error {
	if u := currentUser(c); u != nil {
		return c.Redirect(ui.DashboardPath(u), fiber.StatusSeeOther)
	}
	return render(c, ui.SignUpPage(viewer(c)))
}

// HandleSignUpSubmission registers the account, signs it in and creates the
// role profile. A failed profile creation does not block the sign-up.
func (h *Handler) HandleSignUpSubmission(c *fiber.Ctx) error {
	reg := api.Registration{
		Role:      api.ParseRole(c.FormValue("role")),
		FirstName: trimmed(c, "first_name"),
		LastName:  trimmed(c, "last_name"),
	}
	phone := trimmed(c, "phone")

	var err error
	if reg.Username, err = ValidateRequired(c, "username", "Username"); err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	if reg.Email, err = ValidateRequired(c, "email", "Email"); err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return ValidationErrorResponse(c, "Enter a valid email address")
	}
	reg.Password = c.FormValue("password")
	if err := password.ValidateNewPassword(reg.Password, c.FormValue("password2"), reg.Username, reg.Email); err != nil {
		return ValidationErrorResponse(c, err.Error())
	}

	zap.S().Infof("[AUTH] Sign up attempt: username=%s, role=%s", reg.Username, reg.Role)

	if _, err := h.API.Register(c.Context(), reg); err != nil {
		zap.S().Infof("[AUTH] Sign up failed: username=%s: %v", reg.Username, err)
		return h.formError(c, err, "Registration failed")
	}

	resp, err := h.API.Login(c.Context(), api.Credentials{Username: reg.Username, Password: reg.Password})
	if err != nil {
		zap.S().Errorf("[AUTH] Sign in after sign up failed: %v", err)
		return render(c, ui.SuccessMessage("Account created. Please sign in.", "/signin"))
	}
	u := resp.User()
	if u.Role == "" {
		u.Role = reg.Role
	}

	h.createRoleProfile(c, resp.Token, u, phone)

	if err := h.startSession(c, resp.Token, u); err != nil {
		zap.S().Errorf("[AUTH] Session start failed: %v", err)
		return render(c, ui.SuccessMessage("Account created. Please sign in.", "/signin"))
	}

	zap.S().Infof("[AUTH] Sign up successful: userID=%d, username=%s", u.ID, u.Username)
	return render(c, ui.SuccessMessage("Account created. Welcome to Leonexus!", ui.DashboardPath(&u)))
}

func (h *Handler) createRoleProfile(c *fiber.Ctx, token string, u api.User, phone string) {
	var err error
	if u.IsDealer() {
		_, err = h.API.CreateDealerProfile(c.Context(), token, api.DealerProfile{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     phone,
		})
	} else {
		_, err = h.API.CreateBuyerProfile(c.Context(), token, api.BuyerProfile{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     phone,
		})
	}
	if err != nil {
		zap.S().Warnf("[AUTH] Profile creation failed for userID=%d: %v", u.ID, err)
	}
}
