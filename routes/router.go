package routes

import (
	"formulario.link/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes registra middlewares globais e todos os grupos de rotas.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	registerAuthRoutes(app)
	registerPanelRoutes(app)
	registerPublicRoutes(app)

	app.Get("/", rootRedirector)

	// Depois de tudo: captura qualquer rota não resolvida.
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals expõe a sessão e o usuário logado via Locals.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := sessionStore.Get(c)
		if err != nil {
			return c.Next()
		}
		if userID, ok := sess.Get("user_id").(uint); ok && userID > 0 {
			c.Locals("userID", userID)
		}
		if userName, ok := sess.Get("user_name").(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID > 0 {
		return c.Redirect("/panel/forms", fiber.StatusFound)
	}
	return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
}

func notFoundHandler(c *fiber.Ctx) error {
	if c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recurso não encontrado"})
	}
	return c.Status(fiber.StatusNotFound).Render("errors/404",
		fiber.Map{"Title": "Página não encontrada"}, "layouts/error_layout")
}
