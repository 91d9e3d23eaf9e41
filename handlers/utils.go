package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// getQueryParam gets a parameter from either query string or form data
func getQueryParam(ctx *fiber.Ctx, key string) string {
	if value := ctx.Query(key); value != "" {
		return value
	}
	return ctx.FormValue(key)
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") != ""
}

// redirect sends the browser to target. htmx requests get HX-Redirect so
// the whole page navigates instead of swapping the response in.
func redirect(c *fiber.Ctx, target string) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", target)
		return c.Status(fiber.StatusSeeOther).SendString("")
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// safeNext returns next when it is a local, already escaped path, else "".
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\<>\"' ") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.RequestURI() != next {
		return ""
	}
	return next
}

// requestURI is the path and query of the current request.
func requestURI(c *fiber.Ctx) string {
	return string(c.Request().URI().RequestURI())
}

func queryGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}

func formGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.FormValue(key) }
}
