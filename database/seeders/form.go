package seeders

import (
	"errors"

	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const demoFormSlug = "formulario-de-exemplo"

// SeedDemoForm cria um formulário publicado de exemplo, uma vez só.
func SeedDemoForm(db *gorm.DB) error {
	var existing models.Form
	result := db.Where("slug = ?", demoFormSlug).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debug("Formulário de exemplo já existe, seed ignorado.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Erro ao verificar formulário de exemplo", zap.Error(result.Error))
		return result.Error
	}

	form := models.Form{
		Title:       "Formulário de exemplo",
		Description: "Coleta de dados para emissão de certificado.",
		Slug:        demoFormSlug,
		Status:      models.FormStatusPublished,
		Settings: models.FormSettings{
			SuccessMessage: "Recebemos suas respostas. Obrigado!",
		},
		Fields: []models.FormField{
			{Label: "Nome completo", FieldType: fieldtypes.TypeText, Required: true, FieldOrder: 0},
			{Label: "E-mail", FieldType: fieldtypes.TypeEmail, Required: true, FieldOrder: 1},
			{Label: "CPF", FieldType: fieldtypes.TypeCPF, Required: true, FieldOrder: 2},
			{Label: "Telefone", FieldType: fieldtypes.TypePhone, FieldOrder: 3},
		},
	}
	if err := db.Create(&form).Error; err != nil {
		configslog.Log.Error("Erro ao criar formulário de exemplo", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Formulário de exemplo criado (ID: %d, Slug: %s)", form.ID, form.Slug)
	return nil
}
