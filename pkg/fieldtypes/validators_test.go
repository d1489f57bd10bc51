package fieldtypes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	t.Run("válidos com e sem máscara", func(t *testing.T) {
		assert.True(t, IsValidCPF("529.982.247-25"))
		assert.True(t, IsValidCPF("52998224725"))
	})

	t.Run("sequências repetidas são inválidas mesmo com dígitos corretos", func(t *testing.T) {
		for d := 0; d <= 9; d++ {
			cpf := fmt.Sprintf("%d%d%d%d%d%d%d%d%d%d%d", d, d, d, d, d, d, d, d, d, d, d)
			assert.False(t, IsValidCPF(cpf), "cpf: %s", cpf)
		}
	})

	t.Run("último dígito corrompido", func(t *testing.T) {
		assert.False(t, IsValidCPF("52998224724"))
		assert.False(t, IsValidCPF("52998224726"))
	})

	t.Run("tamanho errado", func(t *testing.T) {
		assert.False(t, IsValidCPF("1234567890"))
		assert.False(t, IsValidCPF(""))
		assert.False(t, IsValidCPF("529.982.247-2"))
	})
}

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("11222333000181"))

	// Qualquer mutação de um dígito verificador invalida.
	assert.False(t, IsValidCNPJ("11222333000180"))
	assert.False(t, IsValidCNPJ("11222333000191"))

	assert.False(t, IsValidCNPJ("11111111111111"))
	assert.False(t, IsValidCNPJ("1122233300018"))
	assert.False(t, IsValidCNPJ(""))
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, ValidateEmail("joao.silva@example.com.br"))
	assert.Empty(t, ValidateEmail("a+b@dominio.co"))

	assert.Equal(t, MsgInvalidEmail, ValidateEmail("sem-arroba"))
	assert.Equal(t, MsgInvalidEmail, ValidateEmail("a@b"))
	assert.Equal(t, MsgInvalidEmail, ValidateEmail("a@b."))
	assert.Equal(t, MsgInvalidEmail, ValidateEmail("@dominio.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.Empty(t, ValidatePhone("(11) 98765-4321"))
	assert.Empty(t, ValidatePhone("1133334444"))

	assert.Equal(t, MsgInvalidPhone, ValidatePhone("12345"))
	assert.Equal(t, MsgInvalidPhone, ValidatePhone("119876543210"))
}

func TestValidateName(t *testing.T) {
	assert.Empty(t, ValidateName("Maria Oliveira"))
	assert.Empty(t, ValidateName("João da Silva"))

	assert.Equal(t, MsgNameTooShort, ValidateName("Jo"))
	assert.Equal(t, MsgNameNoSurname, ValidateName("Mariana"))
	assert.Equal(t, MsgNameBadChars, ValidateName("Maria 123"))
	assert.Equal(t, MsgNameLooksFake, ValidateName("Teste da Silva"))
	assert.Equal(t, MsgNameLooksFake, ValidateName("asdf qwer"))
}
