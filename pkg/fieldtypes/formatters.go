package fieldtypes

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCPF exibe 000.000.000-00. Valores fora de 11 dígitos passam intactos.
func FormatCPF(v string) string {
	d := OnlyDigits(v)
	if len(d) != 11 {
		return v
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ exibe 00.000.000/0000-00. Valores fora de 14 dígitos passam intactos.
func FormatCNPJ(v string) string {
	d := OnlyDigits(v)
	if len(d) != 14 {
		return v
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// FormatPhone exibe (00) 00000-0000 ou (00) 0000-0000 conforme o tamanho.
func FormatPhone(v string) string {
	d := OnlyDigits(v)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return v
	}
}

// FormatCurrency interpreta os dígitos como centavos e exibe em pt-BR,
// ex.: "123456" -> "R$ 1.234,56". Sem dígitos, o valor passa intacto.
func FormatCurrency(v string) string {
	d := OnlyDigits(v)
	if d == "" {
		return v
	}
	cents, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return v
	}
	amount := float64(cents) / 100
	return ptBR.Sprintf("R$ %v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatDate exibe dd/mm/aaaa a partir de entradas ISO; o que não for
// reconhecido passa intacto.
func FormatDate(v string) string {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return v
}

// FormatDateTime exibe dd/mm/aaaa hh:mm, usado na coluna de data do CSV.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
