package handlers // handlers/panel

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"formulario.link/configs/configslog"
	"formulario.link/pkg/flashmessages"
	"formulario.link/pkg/renderer"
	"formulario.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelSubmissionHandler lista, exclui e exporta respostas.
type PanelSubmissionHandler struct {
	formService   services.IFormService
	subService    services.ISubmissionService
	exportService services.IExportService
}

// NewPanelSubmissionHandler cria o handler com os serviços padrão.
func NewPanelSubmissionHandler() *PanelSubmissionHandler {
	return &PanelSubmissionHandler{
		formService:   services.NewFormService(),
		subService:    services.NewSubmissionService(),
		exportService: services.NewExportService(),
	}
}

// ListSubmissions exibe a tabela de respostas de um formulário.
func (h *PanelSubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}

	form, err := h.formService.GetFormWithFields(c.UserContext(), formID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Formulário não encontrado.")
		return c.Redirect("/panel/forms")
	}

	submissions, err := h.subService.GetSubmissionsWithValues(c.UserContext(), formID)

	data := fiber.Map{
		"Title":       "Respostas: " + form.Title,
		"Form":        form,
		"Fields":      form.Fields,
		"Submissions": submissions,
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))

	if err != nil {
		data[renderer.FlashErrorKeyView] = "Erro ao carregar as respostas."
		configslog.Log.Error("Panel - ListSubmissions", zap.Uint("formID", formID), zap.Error(err))
	}
	return renderer.Render(c, "panel/submissions/list", "layouts/panel_layout", data, http.StatusOK)
}

// DeleteSubmission exclui uma resposta.
func (h *PanelSubmissionHandler) DeleteSubmission(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}
	subID, err := c.ParamsInt("subID")
	if err != nil || subID <= 0 {
		return c.Redirect("/panel/forms")
	}

	if err := h.subService.DeleteSubmission(c.UserContext(), userID, uint(subID)); err != nil {
		if !errors.Is(err, services.ErrSubmissionNotFound) {
			configslog.Log.Error("Panel - DeleteSubmission", zap.Int("subID", subID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Resposta excluída.")
	}
	return c.Redirect(fmt.Sprintf("/panel/forms/%d/submissions", formID), fiber.StatusFound)
}

// ExportCSV baixa as respostas do formulário em CSV.
func (h *PanelSubmissionHandler) ExportCSV(c *fiber.Ctx) error {
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}

	form, err := h.formService.GetFormWithFields(c.UserContext(), formID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Formulário não encontrado.")
		return c.Redirect("/panel/forms")
	}

	submissions, err := h.subService.GetSubmissionsWithValues(c.UserContext(), formID)
	if err != nil {
		configslog.Log.Error("Panel - ExportCSV", zap.Uint("formID", formID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao exportar as respostas.")
		return c.Redirect(fmt.Sprintf("/panel/forms/%d/submissions", formID), fiber.StatusSeeOther)
	}

	payload := h.exportService.BuildCSV(form.Fields, submissions)
	filename := h.exportService.Filename(form.Slug, time.Now())

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(payload)
}
