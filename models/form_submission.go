package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// MetadataMap carrega os dados derivados da integração (codigo, status,
// produto, cliente) como JSONB. Vazio quando a integração está desligada.
type MetadataMap map[string]string

func (m MetadataMap) Value() (driver.Value, error) {
	if m == nil {
		m = MetadataMap{}
	}
	return json.Marshal(m)
}

func (m *MetadataMap) Scan(value interface{}) error {
	if value == nil {
		*m = MetadataMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("tipo inesperado para MetadataMap")
	}
}

// FormSubmission é uma resposta completa a um formulário. Criada uma única
// vez; nunca alterada depois, exceto por exclusão.
type FormSubmission struct {
	BaseModel
	FormID      uint        `gorm:"index;not null"`
	SubmittedAt time.Time   `gorm:"index;not null"`
	IPAddress   string      `gorm:"type:varchar(45)"`
	UserAgent   string      `gorm:"type:varchar(500)"`
	Metadata    MetadataMap `gorm:"type:jsonb"`

	Values []SubmissionValue `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// SubmissionWithValues agrega uma submissão ao mapa campo→valor dela.
type SubmissionWithValues struct {
	FormSubmission
	ValueMap map[uint]string
}
