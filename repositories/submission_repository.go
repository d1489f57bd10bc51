package repositories

import (
	"context"
	"errors"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISubmissionRepository define as operações de banco sobre submissões e seus
// valores.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.FormSubmission) error
	CreateValues(ctx context.Context, values []models.SubmissionValue) error
	FindByID(ctx context.Context, id uint) (*models.FormSubmission, error)
	FindAllByFormID(ctx context.Context, formID uint) ([]models.FormSubmission, error)
	FindValuesBySubmissionIDs(ctx context.Context, submissionIDs []uint) ([]models.SubmissionValue, error)
	CountByFormID(ctx context.Context, formID uint) (int64, error)
	Delete(ctx context.Context, submission *models.FormSubmission, deletedByUserID uint) error
}

// SubmissionRepository implementa ISubmissionRepository.
type SubmissionRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormSubmission]
}

// NewSubmissionRepository cria o repositório com a conexão global.
func NewSubmissionRepository() ISubmissionRepository {
	return newSubmissionRepository(configs.GetDB())
}

// NewSubmissionRepositoryTx cria o repositório preso a uma transação.
func NewSubmissionRepositoryTx(tx *gorm.DB) ISubmissionRepository {
	return newSubmissionRepository(tx)
}

func newSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db, base: NewBaseRepository[models.FormSubmission](db)}
}

func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.FormSubmission) error {
	if submission == nil || submission.FormID == 0 {
		return errors.New("submissão sem formulário não pode ser criada")
	}
	return r.getDB(ctx).Create(submission).Error
}

// CreateValues insere os valores em lote. Deve rodar na mesma transação da
// criação da submissão.
func (r *SubmissionRepository) CreateValues(ctx context.Context, values []models.SubmissionValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.getDB(ctx).Create(&values).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*models.FormSubmission, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllByFormID lista as submissões do formulário, mais recentes primeiro.
func (r *SubmissionRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.FormSubmission, error) {
	var submissions []models.FormSubmission
	err := r.getDB(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllByFormID: erro de banco", zap.Uint("form_id", formID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

// FindValuesBySubmissionIDs busca em lote os valores de várias submissões.
func (r *SubmissionRepository) FindValuesBySubmissionIDs(ctx context.Context, submissionIDs []uint) ([]models.SubmissionValue, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	var values []models.SubmissionValue
	err := r.getDB(ctx).
		Where("submission_id IN ?", submissionIDs).
		Find(&values).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindValuesBySubmissionIDs: erro de banco", zap.Error(err))
		return nil, err
	}
	return values, nil
}

func (r *SubmissionRepository) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.FormSubmission{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	return count, err
}

// Delete exclui a submissão e os valores dela na mesma transação.
func (r *SubmissionRepository) Delete(ctx context.Context, submission *models.FormSubmission, deletedByUserID uint) error {
	if submission == nil || submission.ID == 0 {
		return errors.New("submissão inválida para exclusão")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submission.ID).
			Delete(&models.SubmissionValue{}).Error; err != nil {
			return err
		}
		if err := tx.Model(submission).Update("deleted_by", &deletedByUserID).Error; err != nil {
			return err
		}
		return tx.Delete(submission).Error
	})
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
