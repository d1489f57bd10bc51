// Package renderer centraliza a renderização de views com layout e flash.
package renderer

import (
	"strings"

	"formulario.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// Chaves expostas às views.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages copia as mensagens de flash consumidas para o mapa da view.
func SetFlashMessages(data fiber.Map, flashes map[string]string) {
	if msg, ok := flashes[flashmessages.FlashSuccessKey]; ok {
		data[FlashSuccessKeyView] = msg
	}
	if msg, ok := flashes[flashmessages.FlashErrorKey]; ok {
		data[FlashErrorKeyView] = msg
	}
}

// HasOption informa se option aparece no valor agregado por vírgulas de um
// grupo de checkboxes. Registrada como função de template para marcar as
// opções selecionadas ao reapresentar o formulário.
func HasOption(joined, option string) bool {
	if joined == "" {
		return false
	}
	for _, v := range strings.Split(joined, ",") {
		if v == option {
			return true
		}
	}
	return false
}

// Render aplica o layout e o status informados à view.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	return c.Status(status).Render(view, data, layout)
}
