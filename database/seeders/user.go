package seeders

import (
	"errors"
	"os"

	"formulario.link/configs/configslog"
	"formulario.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser garante o usuário administrador do painel. E-mail e senha
// vêm do ambiente; os padrões servem apenas para desenvolvimento local.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	if email == "" {
		email = "admin@formulario.link"
	}
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		password = "admin123"
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD não definido, usando senha padrão de desenvolvimento.")
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Usuário do sistema '%s' já existe, seed ignorado.", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Erro ao verificar usuário do sistema", zap.Error(result.Error))
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		IsSystem:     true,
		IsEnabled:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Erro ao criar usuário do sistema", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Usuário do sistema criado: %s (ID: %d)", email, user.ID)
	return nil
}
