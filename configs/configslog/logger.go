package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log é o logger estruturado principal da aplicação.
var Log *zap.Logger

// SLog é a variante "sugared" para mensagens formatadas.
var SLog *zap.SugaredLogger

// InitLogger inicializa os loggers globais. APP_ENV=production gera JSON,
// qualquer outro valor gera saída de console legível.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("não foi possível inicializar o logger: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger descarrega buffers pendentes. Deve ser chamado via defer no main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
