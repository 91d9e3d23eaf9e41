package local

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leonexus/site/api"
)

func GetUser(c *fiber.Ctx) (api.User, bool) {
	u, ok := c.Locals("user").(api.User)
	return u, ok
}

func SetUser(c *fiber.Ctx, u api.User) {
	c.Locals("user", u)
}

func GetUserID(c *fiber.Ctx) int {
	u, _ := GetUser(c)
	return u.ID
}

// GetToken returns the backend API token for the signed-in user.
func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals("apiToken").(string)
	return token
}

func SetToken(c *fiber.Ctx, token string) {
	c.Locals("apiToken", token)
}

func GetSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("sessionID").(string)
	return id
}

func SetSessionID(c *fiber.Ctx, id string) {
	c.Locals("sessionID", id)
}
