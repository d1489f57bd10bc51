package migrations

import (
	"formulario.link/configs/configslog"
	"formulario.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSubmissionsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating form_submissions & submission_values tables...")
	if err := db.AutoMigrate(&models.FormSubmission{}, &models.SubmissionValue{}); err != nil {
		configslog.Log.Error("Failed to migrate submissions tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Submissions tables migrated successfully")
	return nil
}
