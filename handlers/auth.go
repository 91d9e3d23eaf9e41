package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/cookie"
	"github.com/leonexus/site/jwt"
	"github.com/leonexus/site/local"
	"github.com/leonexus/site/session"
	"github.com/leonexus/site/ui"
)

// SessionMiddleware resolves the auth cookie into the signed-in user.
// Any invalid cookie is cleared and the request continues anonymously.
func (h *Handler) SessionMiddleware(c *fiber.Ctx) error {
	tokenString := cookie.GetJWT(c)
	if tokenString == "" {
		return c.Next()
	}

	claims, err := jwt.ValidateToken(tokenString, h.Config.JWTSecret)
	if err != nil {
		zap.S().Debugf("[AUTH] Rejected cookie: %v", err)
		cookie.ClearJWT(c)
		return c.Next()
	}

	sess, err := h.Sessions.Get(c.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			zap.S().Errorf("[SESSION] Lookup failed: %v", err)
		}
		cookie.ClearJWT(c)
		return c.Next()
	}

	local.SetSessionID(c, sess.ID)
	local.SetToken(c, sess.Token)
	local.SetUser(c, sess.User)
	return c.Next()
}

// AuthRequired is a middleware that requires a user to be logged in.
func AuthRequired(c *fiber.Ctx) error {
	if local.GetUserID(c) == 0 {
		return redirectToSignIn(c)
	}
	return c.Next()
}

// DealerRequired lets dealers through and sends everyone else home.
func DealerRequired(c *fiber.Ctx) error {
	return requireRole(c, api.RoleDealer)
}

// BuyerRequired lets buyers through and sends everyone else home.
func BuyerRequired(c *fiber.Ctx) error {
	return requireRole(c, api.RoleBuyer)
}

func requireRole(c *fiber.Ctx, role api.Role) error {
	u := currentUser(c)
	if u == nil {
		return redirectToSignIn(c)
	}
	if u.Role != role {
		return redirect(c, ui.DashboardPath(u))
	}
	return c.Next()
}

func redirectToSignIn(c *fiber.Ctx) error {
	target := "/signin"
	// htmx fragment URLs make poor return targets; use the page the user is on
	next := requestURI(c)
	if isHTMX(c) {
		if cur, err := url.Parse(c.Get("HX-Current-URL")); err == nil && cur.Path != "" {
			next = cur.RequestURI()
		} else {
			next = ""
		}
	}
	if next = safeNext(next); next != "" && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	return redirect(c, target)
}

// endSession forgets the signed-in user locally. The backend token is not
// revoked here.
func (h *Handler) endSession(c *fiber.Ctx) {
	if id := local.GetSessionID(c); id != "" {
		if err := h.Sessions.Delete(c.Context(), id); err != nil {
			zap.S().Errorf("[SESSION] Delete failed: %v", err)
		}
	}
	cookie.ClearJWT(c)
	local.SetSessionID(c, "")
	local.SetToken(c, "")
	local.SetUser(c, api.User{})
}

// startSession stores the backend token and sets the signed cookie.
func (h *Handler) startSession(c *fiber.Ctx, token string, u api.User) error {
	sess, err := h.Sessions.Create(c.Context(), token, u, h.Config.SessionTTL)
	if err != nil {
		return err
	}
	signed, err := jwt.GenerateToken(sess.ID, u, h.Config.JWTSecret, h.Config.SessionTTL)
	if err != nil {
		if delErr := h.Sessions.Delete(c.Context(), sess.ID); delErr != nil {
			zap.S().Errorf("[SESSION] Cleanup failed: %v", delErr)
		}
		return err
	}
	cookie.SetJWT(c, signed, h.Config.SessionTTL)
	local.SetSessionID(c, sess.ID)
	local.SetToken(c, token)
	local.SetUser(c, u)
	return nil
}
