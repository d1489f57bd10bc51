package migrations

import (
	"formulario.link/configs/configslog"
	"formulario.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormFieldsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating form_fields table...")
	if err := db.AutoMigrate(&models.FormField{}); err != nil {
		configslog.Log.Error("Failed to migrate form_fields table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Form fields table migrated successfully")
	return nil
}
