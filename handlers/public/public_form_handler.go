package handlers // handlers/public

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"formulario.link/configs/configslog"
	"formulario.link/pkg/renderer"
	"formulario.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicFormHandler serve o formulário publicado em /f/:slug e recebe as
// submissões de visitantes.
type PublicFormHandler struct {
	formService services.IFormService
	subService  services.ISubmissionService
}

// NewPublicFormHandler cria o handler com os serviços padrão.
func NewPublicFormHandler() *PublicFormHandler {
	return &PublicFormHandler{
		formService: services.NewFormService(),
		subService:  services.NewSubmissionService(),
	}
}

// ShowForm renderiza o formulário publicado. Rascunhos e arquivados caem no
// 404 público, sem distinção.
func (h *PublicFormHandler) ShowForm(c *fiber.Ctx) error {
	form, err := h.formService.GetPublishedFormBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if !errors.Is(err, services.ErrFormNotFound) {
			configslog.Log.Error("Public - ShowForm", zap.String("slug", c.Params("slug")), zap.Error(err))
		}
		return renderNotFound(c)
	}

	return renderer.Render(c, "public/form_view", "layouts/public_layout", fiber.Map{
		"Title":  form.Title,
		"Form":   form,
		"Fields": form.Fields,
		"Errors": map[uint]string{},
		"Values": map[uint]string{},
	}, http.StatusOK)
}

// SubmitForm recebe as respostas. Erros de validação reapresentam o formulário
// com as mensagens por campo e os valores digitados; sucesso honra a mensagem
// ou o redirecionamento configurados.
func (h *PublicFormHandler) SubmitForm(c *fiber.Ctx) error {
	form, err := h.formService.GetPublishedFormBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return renderNotFound(c)
	}

	values := collectFieldValues(c)
	meta := services.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	_, err = h.subService.SubmitForm(c.UserContext(), form.ID, values, meta)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return renderer.Render(c, "public/form_view", "layouts/public_layout", fiber.Map{
				"Title":  form.Title,
				"Form":   form,
				"Fields": form.Fields,
				"Errors": vErr.Fields,
				"Values": values,
			}, http.StatusUnprocessableEntity)
		}
		configslog.Log.Error("Public - SubmitForm", zap.Uint("formID", form.ID), zap.Error(err))
		data := fiber.Map{
			"Title":  form.Title,
			"Form":   form,
			"Fields": form.Fields,
			"Errors": map[uint]string{},
			"Values": values,
		}
		data[renderer.FlashErrorKeyView] = "Não foi possível enviar suas respostas. Tente novamente."
		return renderer.Render(c, "public/form_view", "layouts/public_layout", data, http.StatusInternalServerError)
	}

	if redirect := form.Settings.RedirectURL; redirect != "" {
		return c.Redirect(redirect, fiber.StatusFound)
	}

	message := form.Settings.SuccessMessage
	if message == "" {
		message = "Respostas enviadas com sucesso. Obrigado!"
	}
	return renderer.Render(c, "public/form_success", "layouts/public_layout", fiber.Map{
		"Title":   form.Title,
		"Form":    form,
		"Message": message,
	}, http.StatusOK)
}

// collectFieldValues extrai do corpo os inputs nomeados field_{id}. Chaves
// repetidas (grupos de checkbox) são agregadas em um único valor separado por
// vírgulas, na ordem de envio.
func collectFieldValues(c *fiber.Ctx) map[uint]string {
	values := map[uint]string{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		name := string(key)
		if !strings.HasPrefix(name, "field_") {
			return
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(name, "field_"), 10, 32)
		if err != nil {
			return
		}
		fieldID := uint(id)
		if prev, ok := values[fieldID]; ok && prev != "" && len(value) > 0 {
			values[fieldID] = prev + "," + string(value)
			return
		}
		values[fieldID] = string(value)
	})
	return values
}

func renderNotFound(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{
		"Title": "Página não encontrada",
	}, http.StatusNotFound)
}
