package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Status de publicação de um formulário. Apenas formulários publicados são
// resolvíveis pela URL pública.
const (
	FormStatusDraft     = "draft"
	FormStatusPublished = "published"
	FormStatusArchived  = "archived"
)

// FormSettings é o saco de configurações do formulário, persistido como JSONB.
type FormSettings struct {
	Theme             string  `json:"theme,omitempty" form:"theme"`
	PrimaryColor      string  `json:"primaryColor,omitempty" form:"primary_color"`
	ShowLogo          bool    `json:"showLogo,omitempty" form:"show_logo"`
	LogoURL           string  `json:"logoUrl,omitempty" form:"logo_url"`
	SuccessMessage    string  `json:"successMessage,omitempty" form:"success_message"`
	RedirectURL       string  `json:"redirectUrl,omitempty" form:"redirect_url"`
	BackgroundImage   string  `json:"backgroundImageUrl,omitempty" form:"background_image_url"`
	BackgroundOpacity float64 `json:"backgroundOpacity,omitempty" form:"background_opacity"`

	// Integração Cademí
	CademiEnabled     bool   `json:"cademiEnabled,omitempty" form:"cademi_enabled"`
	CademiProductID   string `json:"cademiProductId,omitempty" form:"cademi_product_id"`
	CademiProductName string `json:"cademiProductName,omitempty" form:"cademi_product_name"`
	CademiToken       string `json:"cademiToken,omitempty" form:"cademi_token"`
	CademiStatus      string `json:"cademiStatus,omitempty" form:"cademi_status"`
}

func (s FormSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *FormSettings) Scan(value interface{}) error {
	if value == nil {
		*s = FormSettings{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("tipo inesperado para FormSettings")
	}
}

// Form é o registro principal de um formulário de coleta.
type Form struct {
	BaseModel
	Title       string       `gorm:"type:varchar(255);not null"`
	Description string       `gorm:"type:text"`
	Slug        string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	Status      string       `gorm:"type:varchar(20);not null;default:'draft';index"`
	Settings    FormSettings `gorm:"type:jsonb"`

	// GORM Relações
	Fields      []FormField      `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Submissions []FormSubmission `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsPublished informa se o formulário está visível no caminho público.
func (f *Form) IsPublished() bool {
	return f.Status == FormStatusPublished
}
