// Package fieldtypes define o catálogo fechado de tipos de campo e, para cada
// tipo, sua regra de validação e seu formatador de exibição. Adicionar um tipo
// significa adicionar uma entrada na tabela, nunca ramificar lógica fora daqui.
package fieldtypes

// Identificadores do conjunto fechado de tipos de campo.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypePhone    = "phone"
	TypeCPF      = "cpf"
	TypeCNPJ     = "cnpj"
	TypeSelect   = "select"
	TypeRadio    = "radio"
	TypeCheckbox = "checkbox"
	TypeTextarea = "textarea"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeCurrency = "currency"
	TypeFile     = "file"
)

// Validator devolve "" quando o valor é válido, ou a mensagem de erro
// destinada ao usuário. O valor chega já garantidamente não vazio.
type Validator func(value string) string

// Formatter converte o valor bruto armazenado na sua forma de exibição.
type Formatter func(value string) string

// Entry descreve as capacidades de um tipo de campo.
type Entry struct {
	Validate Validator
	Format   Formatter
}

func identity(v string) string { return v }

// valid aceita qualquer valor; tipos cujas restrições extras são apenas
// consultivas validam somente a regra de obrigatoriedade, aplicada fora
// do catálogo.
func valid(string) string { return "" }

// Catalog mapeia cada tipo às suas regras. Conjunto polimórfico fechado.
var Catalog = map[string]Entry{
	TypeText:     {Validate: valid, Format: identity},
	TypeEmail:    {Validate: ValidateEmail, Format: identity},
	TypePhone:    {Validate: ValidatePhone, Format: FormatPhone},
	TypeCPF:      {Validate: ValidateCPF, Format: FormatCPF},
	TypeCNPJ:     {Validate: ValidateCNPJ, Format: FormatCNPJ},
	TypeSelect:   {Validate: valid, Format: identity},
	TypeRadio:    {Validate: valid, Format: identity},
	TypeCheckbox: {Validate: valid, Format: identity},
	TypeTextarea: {Validate: valid, Format: identity},
	TypeNumber:   {Validate: valid, Format: identity},
	TypeDate:     {Validate: valid, Format: FormatDate},
	TypeCurrency: {Validate: valid, Format: FormatCurrency},
	TypeFile:     {Validate: valid, Format: identity},
}

// IsValidType informa se o identificador pertence ao catálogo.
func IsValidType(t string) bool {
	_, ok := Catalog[t]
	return ok
}

// Format aplica o formatador do tipo; tipos desconhecidos passam inalterados.
func Format(fieldType, value string) string {
	if entry, ok := Catalog[fieldType]; ok {
		return entry.Format(value)
	}
	return value
}
