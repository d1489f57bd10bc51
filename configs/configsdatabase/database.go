package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"formulario.link/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB carrega o .env (se existir) e abre a conexão com o Postgres.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info("Arquivo .env não encontrado, usando variáveis de ambiente.")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		env("DB_HOST", "localhost"),
		env("DB_USER", "postgres"),
		env("DB_PASSWORD", "postgres"),
		env("DB_NAME", "formulario"),
		env("DB_PORT", "5432"),
		env("DB_SSLMODE", "disable"),
		env("DB_TIMEZONE", "America/Sao_Paulo"),
	)

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	conn, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		configslog.Log.Fatal("Não foi possível conectar ao banco de dados", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Não foi possível obter o pool de conexões", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db = conn
	configslog.SLog.Info("Conexão com o banco de dados estabelecida.")
}

// GetDB retorna a conexão global. InitDB deve ter sido chamado antes.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB chamado antes de InitDB")
	}
	return db
}

// CloseDB encerra o pool de conexões.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Erro ao obter pool para fechamento", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Erro ao fechar conexão com o banco", zap.Error(err))
	}
}
