package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// contextUserIDKey transporta o ID do usuário autenticado até os hooks do GORM.
const contextUserIDKey contextKey = "current_user_id"

// ContextWithUserID devolve um contexto carregando o usuário responsável
// pela operação. Os hooks do BaseModel usam esse valor para auditoria.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext extrai o usuário do contexto, se presente.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(contextUserIDKey).(uint)
	return id, ok
}

// BaseModel é embutido em todos os modelos: chave, timestamps, soft delete
// e colunas de auditoria preenchidas a partir do contexto.
type BaseModel struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint
	UpdatedBy *uint
	DeletedBy *uint
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok && id != 0 {
		m.CreatedBy = &id
		m.UpdatedBy = &id
	}
	return nil
}

func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok && id != 0 {
		m.UpdatedBy = &id
	}
	return nil
}
