package handlers // handlers/panel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/flashmessages"
	"formulario.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFieldHandler cuida dos campos de um formulário no painel.
type PanelFieldHandler struct {
	service services.IFieldService
}

// NewPanelFieldHandler cria o handler com o serviço padrão.
func NewPanelFieldHandler() *PanelFieldHandler {
	return &PanelFieldHandler{service: services.NewFieldService()}
}

// fieldRequest é o corpo dos formulários de campo do painel.
type fieldRequest struct {
	Label       string `form:"label"`
	FieldType   string `form:"field_type"`
	Placeholder string `form:"placeholder"`
	HelpText    string `form:"help_text"`
	Required    bool   `form:"required"`
	Options     string `form:"options"`
	MinLength   string `form:"min_length"`
	MaxLength   string `form:"max_length"`
	Pattern     string `form:"pattern"`
}

// parseOptions aceita uma opção por linha, no formato "valor|rótulo" ou só o
// rótulo (usado também como valor).
func parseOptions(raw string) models.FieldOptionList {
	var out models.FieldOptionList
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		value, label, found := strings.Cut(line, "|")
		if !found {
			label = value
		}
		out = append(out, models.FieldOption{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
	}
	return out
}

func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func (r fieldRequest) toModel(formID uint) models.FormField {
	return models.FormField{
		FormID:      formID,
		Label:       strings.TrimSpace(r.Label),
		FieldType:   r.FieldType,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
		Required:    r.Required,
		Options:     parseOptions(r.Options),
		Validation: models.FieldValidation{
			MinLength: parseOptionalInt(r.MinLength),
			MaxLength: parseOptionalInt(r.MaxLength),
			Pattern:   strings.TrimSpace(r.Pattern),
		},
	}
}

// CreateField adiciona um campo ao final do formulário.
func (h *PanelFieldHandler) CreateField(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}
	redirectPath := fmt.Sprintf("/panel/forms/update/%d", formID)

	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados de campo inválidos.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if _, err := h.service.CreateField(c.UserContext(), userID, req.toModel(formID)); err != nil {
		if !errors.Is(err, services.ErrFieldLabelRequired) && !errors.Is(err, services.ErrFieldUnknownType) {
			configslog.Log.Error("Panel - CreateField", zap.Uint("formID", formID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Campo adicionado.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}

// UpdateField salva as alterações de um campo.
func (h *PanelFieldHandler) UpdateField(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}
	fieldID, err := c.ParamsInt("fieldID")
	if err != nil || fieldID <= 0 {
		return c.Redirect("/panel/forms")
	}
	redirectPath := fmt.Sprintf("/panel/forms/update/%d", formID)

	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados de campo inválidos.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if err := h.service.UpdateField(c.UserContext(), userID, uint(fieldID), req.toModel(formID)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Campo atualizado.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}

// DeleteField remove o campo e fecha o buraco na ordenação.
func (h *PanelFieldHandler) DeleteField(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}
	fieldID, err := c.ParamsInt("fieldID")
	if err != nil || fieldID <= 0 {
		return c.Redirect("/panel/forms")
	}
	redirectPath := fmt.Sprintf("/panel/forms/update/%d", formID)

	if err := h.service.DeleteField(c.UserContext(), userID, uint(fieldID)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Campo removido.")
	}
	return c.Redirect(redirectPath, fiber.StatusFound)
}

// ReorderFields aplica a nova ordem enviada como lista de IDs separada por
// vírgula (ex.: "5,2,9").
func (h *PanelFieldHandler) ReorderFields(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/auth/login")
	}
	formID, err := paramID(c)
	if err != nil {
		return c.Redirect("/panel/forms")
	}
	redirectPath := fmt.Sprintf("/panel/forms/update/%d", formID)

	var fieldIDs []uint
	for _, part := range strings.Split(c.FormValue("order"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Ordem inválida.")
			return c.Redirect(redirectPath, fiber.StatusSeeOther)
		}
		fieldIDs = append(fieldIDs, uint(id))
	}

	if err := h.service.ReorderFields(c.UserContext(), userID, formID, fieldIDs); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Ordem dos campos atualizada.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}
