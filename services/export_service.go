package services

import (
	"fmt"
	"strings"
	"time"

	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
)

// utf8BOM na frente do arquivo faz o Excel reconhecer UTF-8 direto.
const utf8BOM = "\xEF\xBB\xBF"

// metadataColumns são as colunas fixas que precedem os campos do formulário.
var metadataColumns = []string{"codigo", "status", "produto_id", "produto_nome", "cliente_nome"}

// IExportService gera exportações de submissões.
type IExportService interface {
	BuildCSV(fields []models.FormField, submissions []models.SubmissionWithValues) []byte
	Filename(formSlug string, at time.Time) string
}

// ExportService implementa IExportService. Transformação pura: recebe dados já
// carregados e devolve bytes, sem tocar no banco.
type ExportService struct{}

// NewExportService cria o serviço de exportação.
func NewExportService() IExportService {
	return &ExportService{}
}

// BuildCSV monta o CSV com delimitador ";", toda célula entre aspas e BOM
// UTF-8 no início. Colunas: os cinco metadados fixos, a data de envio e um
// campo do formulário por coluna, na ordem de exibição.
//
// encoding/csv não serve aqui: ele não força aspas em célula sem caractere
// especial nem emite BOM, e planilhas em pt-BR esperam exatamente esse formato.
func (s *ExportService) BuildCSV(fields []models.FormField, submissions []models.SubmissionWithValues) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)

	header := make([]string, 0, len(metadataColumns)+1+len(fields))
	header = append(header, metadataColumns...)
	header = append(header, "Data")
	for _, field := range fields {
		header = append(header, field.Label)
	}
	writeRow(&b, header)

	for _, sub := range submissions {
		row := make([]string, 0, len(header))
		for _, col := range metadataColumns {
			value := sub.Metadata[col]
			if col == "cliente_nome" && value == "" {
				value = firstNameFieldValue(fields, sub.ValueMap)
			}
			row = append(row, value)
		}
		row = append(row, fieldtypes.FormatDateTime(sub.SubmittedAt))
		for _, field := range fields {
			row = append(row, fieldtypes.Format(field.FieldType, sub.ValueMap[field.ID]))
		}
		writeRow(&b, row)
	}

	return []byte(b.String())
}

// Filename deriva o nome do arquivo de exportação: {slug}_{AAAA-MM-DD}.csv.
func (s *ExportService) Filename(formSlug string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", formSlug, at.Format("2006-01-02"))
}

// firstNameFieldValue devolve o valor do primeiro campo com "nome" no rótulo,
// mesmo critério heurístico usado na extração de cliente do pipeline.
func firstNameFieldValue(fields []models.FormField, values map[uint]string) string {
	for _, field := range fields {
		if labelMentionsName(field.Label) {
			if v := strings.TrimSpace(values[field.ID]); v != "" {
				return v
			}
		}
	}
	return ""
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

var _ IExportService = (*ExportService)(nil)
