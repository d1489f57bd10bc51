package fieldtypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "529.982.247-25", FormatCPF("529.982.247-25"))
	assert.Equal(t, "123", FormatCPF("123"))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "abc", FormatCNPJ("abc"))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", FormatPhone("11987654321"))
	assert.Equal(t, "(11) 3333-4444", FormatPhone("1133334444"))
	assert.Equal(t, "123", FormatPhone("123"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatCurrency("123456"))
	assert.Equal(t, "R$ 0,05", FormatCurrency("5"))
	assert.Equal(t, "", FormatCurrency(""))
	assert.Equal(t, "abc", FormatCurrency("abc"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "09/03/2024", FormatDate("2024-03-09"))
	assert.Equal(t, "09/03/2024", FormatDate("2024-03-09T14:30:00"))
	assert.Equal(t, "texto livre", FormatDate("texto livre"))
}

func TestFormatDateTime(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2024 14:30", FormatDateTime(at))
}

func TestCatalogCoversAllTypes(t *testing.T) {
	types := []string{
		TypeText, TypeEmail, TypePhone, TypeCPF, TypeCNPJ,
		TypeSelect, TypeRadio, TypeCheckbox, TypeTextarea,
		TypeNumber, TypeDate, TypeCurrency, TypeFile,
	}
	for _, ft := range types {
		entry, ok := Catalog[ft]
		assert.True(t, ok, "tipo %s fora do catálogo", ft)
		assert.NotNil(t, entry.Validate)
		assert.NotNil(t, entry.Format)
	}
	assert.Len(t, Catalog, len(types))
	assert.False(t, IsValidType("inexistente"))
}
