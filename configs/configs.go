package configs

import (
	"os"
	"time"

	"formulario.link/configs/configsdatabase"

	"gorm.io/gorm"
)

// GetDB é um atalho para a conexão global do banco.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// AppAddr retorna o endereço de escuta do servidor HTTP.
func AppAddr() string {
	return env("APP_ADDR", ":3000")
}

// CademiPostbackURL retorna o endpoint de postback da Cademí.
// Sobrescrever via env só faz sentido em homologação/testes.
func CademiPostbackURL() string {
	return env("CADEMI_POSTBACK_URL", "https://membros.cademi.com.br/api/postback")
}

// OutboundTimeout limita chamadas HTTP de saída (postback Cademí).
func OutboundTimeout() time.Duration {
	if v := os.Getenv("OUTBOUND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 10 * time.Second
}
