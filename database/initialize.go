package database

import (
	"formulario.link/configs/configslog"
	"formulario.link/database/migrations"
	"formulario.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize roda migrações e/ou seeders dentro de uma única transação.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Nenhuma flag de migrate ou seed informada, nada a fazer.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Não foi possível iniciar a transação", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Inicialização do banco falhou (panic)", zap.Any("panic_info", r))
		}
	}()

	configslog.SLog.Info("Inicialização do banco de dados começando...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migração falhou, desfazendo", zap.Error(err))
			tx.Rollback()
			return
		}
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding falhou, desfazendo", zap.Error(err))
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit da inicialização falhou", zap.Error(err))
		return
	}
	configslog.SLog.Info("Inicialização do banco de dados concluída.")
}

// RunMigrationsInOrder migra as tabelas respeitando as dependências de chave
// estrangeira: usuários, formulários, campos, submissões e valores.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Executando migrações em ordem...")

	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateFormsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateFormFieldsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateSubmissionsTables(db); err != nil {
		return err
	}

	configslog.SLog.Info("Todas as migrações executadas com sucesso.")
	return nil
}

// CheckAndRunSeeders roda os seeders idempotentes.
func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedSystemUser(db); err != nil {
		return err
	}
	if err := seeders.SeedDemoForm(db); err != nil {
		return err
	}
	configslog.SLog.Info("Todos os seeders verificados/executados.")
	return nil
}
