package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "relatorio", Normalize("Relatório"))
	assert.Equal(t, "pesquisa de opiniao", Normalize("Pesquisa de Opinião"))
	assert.Equal(t, "inscricao", Normalize("INSCRIÇÃO"))
	assert.Equal(t, "sem acento", Normalize("sem acento"))
}

func TestSQLFilterNormalizaOsDoisLados(t *testing.T) {
	fragment, args := SQLFilter("title", "Relatório")

	// O termo chega sem acentos e o fragmento transliterará a coluna antes
	// da comparação, então "Relatório" armazenado casa com "relatorio".
	assert.Equal(t, []interface{}{"%relatorio%"}, args)
	assert.Contains(t, fragment, "translate(title, ")
	assert.Contains(t, fragment, "ILIKE ?")
	assert.Contains(t, fragment, "ó")
}

func TestSQLFilterTransliteracaoEspelhada(t *testing.T) {
	// Cada caractere acentuado precisa de exatamente um correspondente plano,
	// senão o translate() do Postgres apagaria caracteres da coluna.
	assert.Equal(t, len([]rune(accentedChars)), len([]rune(plainChars)))

	for i, r := range []rune(accentedChars) {
		assert.Equal(t, Normalize(string(r)), Normalize(string([]rune(plainChars)[i])))
	}
}
