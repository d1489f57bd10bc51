package models

// User é a conta que acessa o painel. A autenticação em si é colaboradora
// externa do domínio; os serviços recebem o ID do usuário explicitamente.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsSystem     bool   `gorm:"default:false"`
	IsEnabled    bool   `gorm:"default:true"`
}
