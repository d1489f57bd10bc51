package routes

import (
	panel_handlers "formulario.link/handlers/panel"
	"formulario.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerPanelRoutes(app *fiber.App) {
	formHandler := panel_handlers.NewPanelFormHandler()
	fieldHandler := panel_handlers.NewPanelFieldHandler()
	subHandler := panel_handlers.NewPanelSubmissionHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware)

	// Formulários
	panelGroup.Get("/forms", formHandler.ListForms)
	panelGroup.Get("/forms/create", formHandler.ShowCreateForm)
	panelGroup.Post("/forms/create", formHandler.CreateForm)
	panelGroup.Get("/forms/update/:id", formHandler.ShowUpdateForm)
	panelGroup.Post("/forms/update/:id", formHandler.UpdateForm)
	panelGroup.Post("/forms/status/:id", formHandler.UpdateStatus)
	panelGroup.Post("/forms/delete/:id", formHandler.DeleteForm)

	// Campos
	panelGroup.Post("/forms/:id/fields", fieldHandler.CreateField)
	panelGroup.Post("/forms/:id/fields/:fieldID/update", fieldHandler.UpdateField)
	panelGroup.Post("/forms/:id/fields/:fieldID/delete", fieldHandler.DeleteField)
	panelGroup.Post("/forms/:id/fields/reorder", fieldHandler.ReorderFields)

	// Respostas
	panelGroup.Get("/forms/:id/submissions", subHandler.ListSubmissions)
	panelGroup.Post("/forms/:id/submissions/:subID/delete", subHandler.DeleteSubmission)
	panelGroup.Get("/forms/:id/submissions/export", subHandler.ExportCSV)
}
