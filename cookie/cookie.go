package cookie

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	authCookie   = "auth_token"
	layoutCookie = "car_layout"
	flashCookie  = "flash"
	flashKind    = "flash_kind"
)

// Listing layouts
const (
	LayoutGrid = "grid"
	LayoutList = "list"
)

func GetLayout(c *fiber.Ctx) string {
	if c.Cookies(layoutCookie) == LayoutList {
		return LayoutList
	}
	return LayoutGrid
}

func SetLayout(c *fiber.Ctx, layout string) {
	if layout != LayoutList {
		layout = LayoutGrid
	}
	c.Cookie(&fiber.Cookie{
		Name:     layoutCookie,
		Value:    layout,
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
	})
}

func SetJWT(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
		MaxAge:   int(ttl.Seconds()),
	})
}

func ClearJWT(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func GetJWT(c *fiber.Ctx) string {
	return c.Cookies(authCookie)
}

// Flash message kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// SetFlash stores a one-shot message shown on the next full page render.
func SetFlash(c *fiber.Ctx, kind, msg string) {
	if kind != FlashError {
		kind = FlashSuccess
	}
	for name, val := range map[string]string{flashCookie: url.QueryEscape(msg), flashKind: kind} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    val,
			HTTPOnly: true,
			Secure:   true,
			Path:     "/",
			SameSite: "Lax",
			MaxAge:   60,
		})
	}
}

// PopFlash returns and clears the pending flash message, if any.
func PopFlash(c *fiber.Ctx) (kind, msg string) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return "", ""
	}
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		msg = raw
	}
	kind = c.Cookies(flashKind, FlashSuccess)
	for _, name := range []string{flashCookie, flashKind} {
		c.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Expires: time.Unix(0, 0),
			MaxAge:  -1,
		})
	}
	return kind, msg
}
