package services

import (
	"strings"

	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
)

// ValidationError carrega o mapa campo→mensagem de uma submissão recusada.
// É um resultado esperado e corrigível pelo usuário, nunca uma falha de
// sistema; por isso não é logado como erro.
type ValidationError struct {
	Fields map[uint]string
}

func (e *ValidationError) Error() string {
	return "submissão inválida"
}

// ValidateSubmission aplica o motor de validação a todos os campos do
// formulário contra o mapa de valores brutos, na ordem do formulário.
// Coleta todos os erros em vez de parar no primeiro, para que quem envia veja
// todos os problemas de uma vez. Mapa vazio significa submissão válida.
//
// Ordem por campo: (1) obrigatório e vazio → erro; (2) vazio e opcional →
// válido, sem mais checagens; (3) regra específica do tipo via catálogo.
// Campos text com "nome" no rótulo recebem a checagem de plausibilidade.
// Restrições consultivas (min/max/pattern) não são aplicadas aqui; são
// metadados para a camada de apresentação — lacuna conhecida, não defeito.
func ValidateSubmission(fields []models.FormField, values map[uint]string) map[uint]string {
	errs := map[uint]string{}

	for _, field := range fields {
		raw := values[field.ID]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			if field.Required {
				errs[field.ID] = fieldtypes.MsgRequired
			}
			continue
		}

		entry, ok := fieldtypes.Catalog[field.FieldType]
		if !ok {
			continue
		}
		if msg := entry.Validate(trimmed); msg != "" {
			errs[field.ID] = msg
			continue
		}

		if field.FieldType == fieldtypes.TypeText && labelMentionsName(field.Label) {
			if msg := fieldtypes.ValidateName(trimmed); msg != "" {
				errs[field.ID] = msg
			}
		}
	}

	return errs
}

func labelMentionsName(label string) bool {
	return strings.Contains(strings.ToLower(label), "nome")
}
