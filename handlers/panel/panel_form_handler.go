package handlers // handlers/panel

import (
	"errors"
	"fmt"
	"net/http"

	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/flashmessages"
	"formulario.link/pkg/queryparams"
	"formulario.link/pkg/renderer"
	"formulario.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFormHandler cuida do CRUD de formulários no painel.
type PanelFormHandler struct {
	service    services.IFormService
	subService services.ISubmissionService
}

// NewPanelFormHandler cria o handler com os serviços padrão.
func NewPanelFormHandler() *PanelFormHandler {
	return &PanelFormHandler{
		service:    services.NewFormService(),
		subService: services.NewSubmissionService(),
	}
}

// formRequest é o corpo dos formulários de criação/edição do painel.
type formRequest struct {
	Title       string              `form:"title"`
	Description string              `form:"description"`
	Slug        string              `form:"slug"`
	Status      string              `form:"status"`
	Settings    models.FormSettings `form:"settings"`
}

func (r formRequest) toModel() models.Form {
	return models.Form{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		Status:      r.Status,
		Settings:    r.Settings,
	}
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok && userID > 0
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// ListForms lista os formulários com paginação e filtro por título/status.
func (h *PanelFormHandler) ListForms(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetFormsPaginated(c.UserContext(), params)

	data := fiber.Map{
		"Title":  "Formulários",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))

	if err != nil {
		data[renderer.FlashErrorKeyView] = "Erro ao listar formulários."
		data["Result"] = &queryparams.PaginatedResult{Data: []models.Form{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListForms", zap.Error(err))
	}
	return renderer.Render(c, "panel/forms/list", "layouts/panel_layout", data, http.StatusOK)
}

// ShowCreateForm exibe o formulário de criação.
func (h *PanelFormHandler) ShowCreateForm(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Novo formulário"}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/forms/create", "layouts/panel_layout", data, http.StatusOK)
}

// CreateForm cria um formulário em rascunho.
func (h *PanelFormHandler) CreateForm(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	var req formRequest
	if err := c.BodyParser(&req); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados de formulário inválidos.")
		return c.Redirect("/panel/forms/create", fiber.StatusSeeOther)
	}

	form, err := h.service.CreateForm(c.UserContext(), userID, req.toModel())
	if err != nil {
		if !errors.Is(err, services.ErrFormTitleRequired) && !errors.Is(err, services.ErrDuplicateSlug) {
			configslog.Log.Error("Panel - CreateForm", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/forms/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Formulário criado com sucesso.")
	return c.Redirect(fmt.Sprintf("/panel/forms/update/%d", form.ID), fiber.StatusFound)
}

// ShowUpdateForm exibe o formulário de edição com os campos atuais.
func (h *PanelFormHandler) ShowUpdateForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/panel/forms")
	}

	form, err := h.service.GetFormWithFields(c.UserContext(), id)
	if err != nil {
		msg := "Formulário não encontrado."
		if !errors.Is(err, services.ErrFormNotFound) {
			msg = "Erro ao carregar o formulário."
			configslog.Log.Error("Panel - ShowUpdateForm", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		return c.Redirect("/panel/forms")
	}

	count, _ := h.service.GetSubmissionCount(c.UserContext(), id)

	data := fiber.Map{
		"Title":           "Editar formulário",
		"Form":            form,
		"Fields":          form.Fields,
		"SubmissionCount": count,
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/forms/update", "layouts/panel_layout", data, http.StatusOK)
}

// UpdateForm salva título, descrição, status e configurações.
func (h *PanelFormHandler) UpdateForm(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	id, err := paramID(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/panel/forms")
	}
	redirectPath := fmt.Sprintf("/panel/forms/update/%d", id)

	var req formRequest
	if err := c.BodyParser(&req); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados de formulário inválidos.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if err := h.service.UpdateForm(c.UserContext(), userID, id, req.toModel()); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Formulário atualizado.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}

// UpdateStatus publica, arquiva ou volta o formulário para rascunho.
func (h *PanelFormHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	id, err := paramID(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/panel/forms")
	}

	status := c.FormValue("status")
	if err := h.service.UpdateStatus(c.UserContext(), userID, id, status); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Status alterado.")
	}
	return c.Redirect(fmt.Sprintf("/panel/forms/update/%d", id), fiber.StatusFound)
}

// DeleteForm exclui o formulário e tudo que pende dele.
func (h *PanelFormHandler) DeleteForm(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	id, err := paramID(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/panel/forms")
	}

	if err := h.service.DeleteForm(c.UserContext(), userID, id); err != nil {
		if !errors.Is(err, services.ErrFormNotFound) {
			configslog.Log.Error("Panel - DeleteForm", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Formulário excluído.")
	}
	return c.Redirect("/panel/forms", fiber.StatusFound)
}
