package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FieldOption é um par (rótulo, valor) de campos de escolha.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldOptionList persiste a lista ordenada de opções como JSONB.
type FieldOptionList []FieldOption

func (l FieldOptionList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldOptionList{}
	}
	return json.Marshal(l)
}

func (l *FieldOptionList) Scan(value interface{}) error {
	if value == nil {
		*l = FieldOptionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("tipo inesperado para FieldOptionList")
	}
}

// FieldValidation guarda restrições consultivas por campo (min/max, padrão).
// O motor de validação central não as aplica; ficam disponíveis para a camada
// de apresentação e integrações.
type FieldValidation struct {
	MinLength     *int     `json:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Pattern       string   `json:"pattern,omitempty"`
	CustomMessage string   `json:"customMessage,omitempty"`
}

func (v FieldValidation) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *FieldValidation) Scan(value interface{}) error {
	if value == nil {
		*v = FieldValidation{}
		return nil
	}
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, v)
	case string:
		return json.Unmarshal([]byte(raw), v)
	default:
		return errors.New("tipo inesperado para FieldValidation")
	}
}

// FormField é a definição de um campo de entrada dentro de um formulário.
// FieldOrder é denso (0..n-1) e único dentro do formulário.
type FormField struct {
	BaseModel
	FormID      uint            `gorm:"index;not null"`
	Label       string          `gorm:"type:varchar(255);not null"`
	FieldType   string          `gorm:"type:varchar(20);not null"`
	Placeholder string          `gorm:"type:varchar(255)"`
	HelpText    string          `gorm:"type:text"`
	Required    bool            `gorm:"default:false"`
	Options     FieldOptionList `gorm:"type:jsonb"`
	Validation  FieldValidation `gorm:"type:jsonb"`
	FieldOrder  int             `gorm:"not null;index:idx_form_field_order"`
}
