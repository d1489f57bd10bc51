package models

// SubmissionValue é uma resposta a um campo dentro de uma submissão.
// Só existe linha para respostas não vazias; o campo referenciado pertence
// ao mesmo formulário da submissão.
type SubmissionValue struct {
	BaseModel
	SubmissionID uint   `gorm:"index;not null"`
	FieldID      uint   `gorm:"index;not null"`
	Value        string `gorm:"type:text"`
}
