package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware barra requisições sem usuário autenticado na sessão.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// GuestMiddleware impede usuários já logados de ver as telas de convidado.
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID > 0 {
		return c.Redirect("/panel/forms", fiber.StatusSeeOther)
	}
	return c.Next()
}
