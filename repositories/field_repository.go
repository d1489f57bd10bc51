package repositories

import (
	"context"
	"errors"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IFieldRepository define as operações de banco sobre campos de formulário.
type IFieldRepository interface {
	Create(ctx context.Context, field *models.FormField) error
	FindByID(ctx context.Context, id uint) (*models.FormField, error)
	FindAllByFormID(ctx context.Context, formID uint) ([]models.FormField, error)
	Update(ctx context.Context, field *models.FormField) error
	UpdateOrder(ctx context.Context, fieldID uint, order int) error
	Delete(ctx context.Context, field *models.FormField, deletedByUserID uint) error
	LockForm(ctx context.Context, formID uint) error
	MaxOrder(ctx context.Context, formID uint) (int, error)
}

// FieldRepository implementa IFieldRepository.
type FieldRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormField]
}

// NewFieldRepository cria o repositório com a conexão global.
func NewFieldRepository() IFieldRepository {
	return newFieldRepository(configs.GetDB())
}

// NewFieldRepositoryTx cria o repositório preso a uma transação.
func NewFieldRepositoryTx(tx *gorm.DB) IFieldRepository {
	return newFieldRepository(tx)
}

func newFieldRepository(db *gorm.DB) *FieldRepository {
	return &FieldRepository{db: db, base: NewBaseRepository[models.FormField](db)}
}

func (r *FieldRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *FieldRepository) Create(ctx context.Context, field *models.FormField) error {
	if field == nil || field.FormID == 0 {
		return errors.New("campo sem formulário não pode ser criado")
	}
	return r.getDB(ctx).Create(field).Error
}

func (r *FieldRepository) FindByID(ctx context.Context, id uint) (*models.FormField, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllByFormID devolve os campos do formulário na ordem de exibição.
func (r *FieldRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.FormField, error) {
	var fields []models.FormField
	err := r.getDB(ctx).
		Where("form_id = ?", formID).
		Order("field_order ASC").
		Find(&fields).Error
	if err != nil {
		configslog.Log.Error("FieldRepository.FindAllByFormID: erro de banco", zap.Uint("form_id", formID), zap.Error(err))
		return nil, err
	}
	return fields, nil
}

func (r *FieldRepository) Update(ctx context.Context, field *models.FormField) error {
	if field == nil || field.ID == 0 {
		return errors.New("campo inválido para atualização")
	}
	return r.getDB(ctx).Save(field).Error
}

// UpdateOrder grava apenas a posição do campo.
func (r *FieldRepository) UpdateOrder(ctx context.Context, fieldID uint, order int) error {
	result := r.getDB(ctx).Model(&models.FormField{}).
		Where("id = ?", fieldID).
		Update("field_order", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FieldRepository) Delete(ctx context.Context, field *models.FormField, deletedByUserID uint) error {
	if field == nil || field.ID == 0 {
		return errors.New("campo inválido para exclusão")
	}
	db := r.getDB(ctx)
	if err := db.Model(field).Update("deleted_by", &deletedByUserID).Error; err != nil {
		return err
	}
	return db.Delete(field).Error
}

// LockForm trava a linha do formulário pai (FOR UPDATE). A atribuição de
// posição é leitura-então-escrita; sem a trava, criações concorrentes no
// mesmo formulário podem cunhar posições duplicadas.
func (r *FieldRepository) LockForm(ctx context.Context, formID uint) error {
	var form models.Form
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&form, formID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// MaxOrder devolve a maior posição do formulário, ou -1 quando não há campos.
func (r *FieldRepository) MaxOrder(ctx context.Context, formID uint) (int, error) {
	var max *int
	err := r.getDB(ctx).Model(&models.FormField{}).
		Where("form_id = ?", formID).
		Select("MAX(field_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

var _ IFieldRepository = (*FieldRepository)(nil)
