package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// landingFor picks where a freshly signed-in user goes.
func landingFor(u api.User, next string) string {
	if next = safeNext(next); next != "" {
		return next
	}
	return ui.DashboardPath(&u)
}

func (h *Handler) HandleSignIn(c *fiber.Ctx) error {
	next := safeNext(c.Query("next"))
	if u := currentUser(c); u != nil {
		return c.Redirect(landingFor(*u, next), fiber.StatusSeeOther)
	}
	return render(c, ui.SignInPage(viewer(c), next))
}

func (h *Handler) HandleSignInSubmission(c *fiber.Ctx) error {
	username, err := ValidateRequired(c, "username", "Username or email")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	password := c.FormValue("password")
	if password == "" {
		return ValidationErrorResponse(c, "Password is required")
	}

	zap.S().Infof("[AUTH] Sign in attempt: username=%s", username)

	resp, err := h.API.Login(c.Context(), api.Credentials{Username: username, Password: password})
	if err != nil {
		zap.S().Infof("[AUTH] Sign in failed: username=%s: %v", username, err)
		return h.formError(c, err, "Invalid username or password")
	}
	u := resp.User()
	if err := h.startSession(c, resp.Token, u); err != nil {
		zap.S().Errorf("[AUTH] Session start failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error, unable to sign you in.")
	}

	zap.S().Infof("[AUTH] Sign in successful: userID=%d, role=%s", u.ID, u.Role)
	return render(c, ui.SuccessMessage("Welcome back, "+u.FullName(), landingFor(u, c.FormValue("next"))))
}

// HandleSignOut ends the session here and, best effort, at the backend.
func (h *Handler) HandleSignOut(c *fiber.Ctx) error {
	if token := local.GetToken(c); token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.API.Logout(ctx, token); err != nil {
			zap.S().Warnf("[AUTH] Backend logout failed: %v", err)
		}
	}
	userID := currentUserID(c)
	h.endSession(c)
	zap.S().Infof("[AUTH] Signed out: userID=%d", userID)
	cookie.SetFlash(c, cookie.FlashSuccess, "You have been signed out.")
	return redirect(c, "/")
}

func trimmed(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}
