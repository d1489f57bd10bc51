package routes

import (
	public_handlers "formulario.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

func registerPublicRoutes(app *fiber.App) {
	formHandler := public_handlers.NewPublicFormHandler()

	app.Get("/f/:slug", formHandler.ShowForm)
	app.Post("/f/:slug", formHandler.SubmitForm)
}
