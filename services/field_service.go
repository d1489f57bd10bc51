package services

import (
	"context"
	"errors"
	"fmt"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
	"formulario.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FieldServiceError são os erros tipados do serviço de campos.
type FieldServiceError string

func (e FieldServiceError) Error() string { return string(e) }

const (
	ErrFieldNotFound       FieldServiceError = "campo não encontrado"
	ErrFieldInvalidInput   FieldServiceError = "dados de campo inválidos"
	ErrFieldLabelRequired  FieldServiceError = "o rótulo do campo é obrigatório"
	ErrFieldUnknownType    FieldServiceError = "tipo de campo desconhecido"
	ErrFieldCreationFailed FieldServiceError = "não foi possível criar o campo"
	ErrFieldUpdateFailed   FieldServiceError = "não foi possível atualizar o campo"
	ErrFieldDeletionFailed FieldServiceError = "não foi possível excluir o campo"
	ErrFieldReorderInvalid FieldServiceError = "lista de reordenação não corresponde aos campos do formulário"
)

// IFieldService define as operações sobre campos de formulário.
type IFieldService interface {
	GetFieldsByFormID(ctx context.Context, formID uint) ([]models.FormField, error)
	CreateField(ctx context.Context, creatorUserID uint, field models.FormField) (*models.FormField, error)
	UpdateField(ctx context.Context, updatingUserID uint, id uint, field models.FormField) error
	DeleteField(ctx context.Context, deletingUserID uint, id uint) error
	ReorderFields(ctx context.Context, updatingUserID uint, formID uint, fieldIDs []uint) error
}

// FieldService implementa IFieldService.
type FieldService struct {
	repo repositories.IFieldRepository

	// runTx e repoTx existem para que os testes troquem a transação real por
	// fakes sem banco.
	runTx  func(ctx context.Context, fn func(tx *gorm.DB) error) error
	repoTx func(tx *gorm.DB) repositories.IFieldRepository
}

// NewFieldService cria o serviço com as dependências padrão.
func NewFieldService() IFieldService {
	db := configs.GetDB()
	return &FieldService{
		repo: repositories.NewFieldRepository(),
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
		repoTx: repositories.NewFieldRepositoryTx,
	}
}

// ValidateFieldInput aplica as validações básicas de criação/edição de campo.
func ValidateFieldInput(field models.FormField) error {
	if field.Label == "" {
		return ErrFieldLabelRequired
	}
	if !fieldtypes.IsValidType(field.FieldType) {
		return ErrFieldUnknownType
	}
	return nil
}

// GetFieldsByFormID devolve os campos na ordem de exibição.
func (s *FieldService) GetFieldsByFormID(ctx context.Context, formID uint) ([]models.FormField, error) {
	if formID == 0 {
		return nil, fmt.Errorf("%w: formulário inválido", ErrFieldInvalidInput)
	}
	return s.repo.FindAllByFormID(ctx, formID)
}

// CreateField cria um campo na próxima posição livre. A linha do formulário é
// travada na transação para que criações concorrentes não cunhem posições
// duplicadas.
func (s *FieldService) CreateField(ctx context.Context, creatorUserID uint, field models.FormField) (*models.FormField, error) {
	if err := ValidateFieldInput(field); err != nil {
		return nil, err
	}
	if field.FormID == 0 || creatorUserID == 0 {
		return nil, fmt.Errorf("%w: formulário ou usuário inválido", ErrFieldInvalidInput)
	}

	var created *models.FormField
	txErr := s.runTx(ctx, func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, creatorUserID)
		repoTx := s.repoTx(tx)

		if err := repoTx.LockForm(txCtx, field.FormID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		maxOrder, err := repoTx.MaxOrder(txCtx, field.FormID)
		if err != nil {
			return err
		}
		field.FieldOrder = maxOrder + 1

		if err := repoTx.Create(txCtx, &field); err != nil {
			return err
		}
		created = &field
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrFormNotFound) {
			return nil, txErr
		}
		configslog.Log.Error("CreateField: transação falhou", zap.Uint("form_id", field.FormID), zap.Error(txErr))
		return nil, ErrFieldCreationFailed
	}

	configslog.SLog.Infof("Campo criado: ID %d, Tipo %s, Ordem %d (Formulário: %d)",
		created.ID, created.FieldType, created.FieldOrder, created.FormID)
	return created, nil
}

// UpdateField atualiza rótulo, tipo, opções e restrições consultivas.
// A posição não muda aqui; use ReorderFields.
func (s *FieldService) UpdateField(ctx context.Context, updatingUserID uint, id uint, input models.FormField) error {
	if err := ValidateFieldInput(input); err != nil {
		return err
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrFieldInvalidInput)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFieldNotFound
		}
		return err
	}

	existing.Label = input.Label
	existing.FieldType = input.FieldType
	existing.Placeholder = input.Placeholder
	existing.HelpText = input.HelpText
	existing.Required = input.Required
	existing.Options = input.Options
	existing.Validation = input.Validation

	txCtx := models.ContextWithUserID(ctx, updatingUserID)
	if err := s.repo.Update(txCtx, existing); err != nil {
		configslog.Log.Error("UpdateField: erro ao salvar", zap.Uint("id", id), zap.Error(err))
		return ErrFieldUpdateFailed
	}
	configslog.SLog.Infof("Campo atualizado: ID %d (Usuário: %d)", id, updatingUserID)
	return nil
}

// DeleteField exclui o campo e re-densifica as posições restantes (0..n-1).
func (s *FieldService) DeleteField(ctx context.Context, deletingUserID uint, id uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrFieldInvalidInput)
	}

	field, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFieldNotFound
		}
		return err
	}

	txErr := s.runTx(ctx, func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, deletingUserID)
		repoTx := s.repoTx(tx)

		if err := repoTx.LockForm(txCtx, field.FormID); err != nil {
			return err
		}
		if err := repoTx.Delete(txCtx, field, deletingUserID); err != nil {
			return err
		}

		remaining, err := repoTx.FindAllByFormID(txCtx, field.FormID)
		if err != nil {
			return err
		}
		for i, f := range remaining {
			if f.FieldOrder != i {
				if err := repoTx.UpdateOrder(txCtx, f.ID, i); err != nil {
					return err
				}
			}
		}
		return nil
	})

	if txErr != nil {
		configslog.Log.Error("DeleteField: transação falhou", zap.Uint("id", id), zap.Error(txErr))
		return ErrFieldDeletionFailed
	}
	configslog.SLog.Infof("Campo excluído: ID %d (Usuário: %d)", id, deletingUserID)
	return nil
}

// ReorderFields reatribui posições densas 0..n-1 seguindo a lista informada.
// A lista deve conter exatamente os campos do formulário, sem IDs estranhos.
func (s *FieldService) ReorderFields(ctx context.Context, updatingUserID uint, formID uint, fieldIDs []uint) error {
	if formID == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: formulário ou usuário inválido", ErrFieldInvalidInput)
	}

	txErr := s.runTx(ctx, func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, updatingUserID)
		repoTx := s.repoTx(tx)

		if err := repoTx.LockForm(txCtx, formID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		current, err := repoTx.FindAllByFormID(txCtx, formID)
		if err != nil {
			return err
		}
		if len(current) != len(fieldIDs) {
			return ErrFieldReorderInvalid
		}
		owned := make(map[uint]bool, len(current))
		for _, f := range current {
			owned[f.ID] = true
		}
		seen := make(map[uint]bool, len(fieldIDs))
		for _, id := range fieldIDs {
			if !owned[id] || seen[id] {
				return ErrFieldReorderInvalid
			}
			seen[id] = true
		}

		for position, id := range fieldIDs {
			if err := repoTx.UpdateOrder(txCtx, id, position); err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrFieldReorderInvalid) || errors.Is(txErr, ErrFormNotFound) {
			return txErr
		}
		configslog.Log.Error("ReorderFields: transação falhou", zap.Uint("form_id", formID), zap.Error(txErr))
		return ErrFieldUpdateFailed
	}
	configslog.SLog.Infof("Campos do formulário %d reordenados (Usuário: %d)", formID, updatingUserID)
	return nil
}

var _ IFieldService = (*FieldService)(nil)
