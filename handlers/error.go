package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/ui"
)

// CustomErrorHandler handles application errors with user context
func CustomErrorHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again."

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		zap.S().Errorf("[HTTP] %s %s: %v", ctx.Method(), ctx.Path(), err)
	}

	ctx.Status(code)
	if isHTMX(ctx) {
		return render(ctx, ui.ValidationError(message))
	}
	return render(ctx, ui.ErrorPage(code, message, viewer(ctx)))
}

// apiError maps a backend failure onto a page-level error. A rejected token
// ends the local session and sends the user to sign in.
func (h *Handler) apiError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		zap.S().Infof("[AUTH] Backend rejected token for user=%d", currentUserID(c))
		if local.GetSessionID(c) != "" {
			h.endSession(c)
			cookie.SetFlash(c, cookie.FlashError, "Your session has expired. Please sign in again.")
		}
		return redirectToSignIn(c)
	case errors.Is(err, api.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, api.Message(err, "Not found"))
	case errors.Is(err, api.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, api.Message(err, "You do not have permission to do that"))
	case errors.Is(err, api.ErrTransport):
		zap.S().Errorf("[API] %v", err)
		return fiber.NewError(fiber.StatusBadGateway, "The marketplace is unreachable right now. Please try again shortly.")
	}
	zap.S().Errorf("[API] %v", err)
	return fiber.NewError(fiber.StatusBadGateway, api.Message(err, fallback))
}

// formError renders a backend failure inline in a form's result slot.
func (h *Handler) formError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return h.apiError(c, err, fallback)
	}
	if !errors.Is(err, api.ErrTransport) {
		return ValidationErrorResponse(c, api.Message(err, fallback))
	}
	zap.S().Errorf("[API] %v", err)
	return ValidationErrorResponse(c, fallback)
}

func currentUserID(c *fiber.Ctx) int {
	if u := currentUser(c); u != nil {
		return u.ID
	}
	return 0
}
