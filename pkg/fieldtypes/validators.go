package fieldtypes

import (
	"regexp"
	"strings"
)

// Mensagens de validação exibidas ao usuário.
const (
	MsgRequired     = "Campo obrigatório"
	MsgInvalidEmail = "E-mail inválido"
	MsgInvalidCPF   = "CPF inválido"
	MsgInvalidCNPJ  = "CNPJ inválido"
	MsgInvalidPhone = "Telefone inválido"

	MsgNameTooShort  = "Nome muito curto"
	MsgNameNoSurname = "Informe nome e sobrenome"
	MsgNameBadChars  = "Nome contém caracteres inválidos"
	MsgNameLooksFake = "Por favor, informe seu nome real"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonDigits       = regexp.MustCompile(`\D`)
	nameBadChars    = regexp.MustCompile(`[0-9!@#$%^&*()_+=\[\]{};:"\\|,.<>/?]`)
	nameFakePattern = regexp.MustCompile(`(?i)(teste|test|asdf|qwer|xxxx|aaaa|fake|anonimo|anonymous)`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// OnlyDigits remove tudo que não for dígito.
func OnlyDigits(v string) string {
	return nonDigits.ReplaceAllString(v, "")
}

// ValidateEmail exige o formato local@dominio.tld.
func ValidateEmail(v string) string {
	if !emailPattern.MatchString(v) {
		return MsgInvalidEmail
	}
	return ""
}

// ValidatePhone aceita telefone brasileiro: 10 dígitos (fixo) ou 11 (celular).
func ValidatePhone(v string) string {
	d := OnlyDigits(v)
	if len(d) != 10 && len(d) != 11 {
		return MsgInvalidPhone
	}
	return ""
}

// ValidateCPF aplica o algoritmo completo dos dois dígitos verificadores.
func ValidateCPF(v string) string {
	if !IsValidCPF(v) {
		return MsgInvalidCPF
	}
	return ""
}

// IsValidCPF informa se o CPF (com ou sem máscara) é válido.
func IsValidCPF(v string) bool {
	cpf := OnlyDigits(v)
	if len(cpf) != 11 {
		return false
	}
	if allSameDigit(cpf) {
		return false
	}

	// Primeiro dígito verificador: pesos 10..2.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	digit1 := (sum * 10) % 11
	if digit1 == 10 {
		digit1 = 0
	}

	// Segundo dígito verificador: pesos 11..2 sobre os dez primeiros dígitos.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	digit2 := (sum * 10) % 11
	if digit2 == 10 {
		digit2 = 0
	}

	return int(cpf[9]-'0') == digit1 && int(cpf[10]-'0') == digit2
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCNPJ aplica o algoritmo completo dos dois dígitos verificadores.
func ValidateCNPJ(v string) string {
	if !IsValidCNPJ(v) {
		return MsgInvalidCNPJ
	}
	return ""
}

// IsValidCNPJ informa se o CNPJ (com ou sem máscara) é válido.
func IsValidCNPJ(v string) bool {
	cnpj := OnlyDigits(v)
	if len(cnpj) != 14 {
		return false
	}
	if allSameDigit(cnpj) {
		return false
	}

	sum := 0
	for i := 0; i < 12; i++ {
		sum += int(cnpj[i]-'0') * cnpjWeights1[i]
	}
	digit1 := sum % 11
	if digit1 < 2 {
		digit1 = 0
	} else {
		digit1 = 11 - digit1
	}

	sum = 0
	for i := 0; i < 13; i++ {
		sum += int(cnpj[i]-'0') * cnpjWeights2[i]
	}
	digit2 := sum % 11
	if digit2 < 2 {
		digit2 = 0
	} else {
		digit2 = 11 - digit2
	}

	return int(cnpj[12]-'0') == digit1 && int(cnpj[13]-'0') == digit2
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

// ValidateName é a checagem de plausibilidade anti-fake aplicada a campos de
// texto cujo rótulo contém "nome". Devolve "" quando plausível.
func ValidateName(v string) string {
	name := strings.TrimSpace(v)

	if len([]rune(name)) < 3 {
		return MsgNameTooShort
	}
	if len(whitespace.Split(name, -1)) < 2 {
		return MsgNameNoSurname
	}
	if nameBadChars.MatchString(name) {
		return MsgNameBadChars
	}
	if nameFakePattern.MatchString(name) {
		return MsgNameLooksFake
	}
	return ""
}
