package repositories

import (
	"context"
	"errors"
	"time"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/queryparams"
	"formulario.link/pkg/textsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormRepository define as operações de banco sobre formulários.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindByIDWithFields(ctx context.Context, id uint) (*models.Form, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Form, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error)
	Update(ctx context.Context, form *models.Form) error
	UpdateStatus(ctx context.Context, id uint, status string, updatedByUserID uint) error
	Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error
	CountAll(ctx context.Context) (int64, error)
}

// FormRepository implementa IFormRepository.
type FormRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Form]
}

// NewFormRepository cria o repositório com a conexão global.
func NewFormRepository() IFormRepository {
	return newFormRepository(configs.GetDB())
}

// NewFormRepositoryTx cria o repositório preso a uma transação.
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	return newFormRepository(tx)
}

func newFormRepository(db *gorm.DB) *FormRepository {
	base := NewBaseRepository[models.Form](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "title", "status", "slug"})
	return &FormRepository{db: db, base: base}
}

func (r *FormRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create insere um novo formulário.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.Slug == "" {
		return errors.New("formulário sem slug não pode ser criado")
	}
	return r.getDB(ctx).Create(form).Error
}

// FindByID busca um formulário pelo ID.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, errors.New("ID de formulário inválido")
	}
	var form models.Form
	err := r.getDB(ctx).First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: erro de banco", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindByIDWithFields busca um formulário com os campos na ordem do formulário.
func (r *FormRepository) FindByIDWithFields(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, errors.New("ID de formulário inválido")
	}
	var form models.Form
	err := r.getDB(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("field_order ASC") }).
		First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByIDWithFields: erro de banco", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindPublishedBySlug resolve o caminho público: apenas status published.
// Qualquer outro status é invisível aqui (NotFound, nunca Forbidden).
func (r *FormRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.Form, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var form models.Form
	err := r.getDB(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("field_order ASC") }).
		Where("slug = ? AND status = ?", slug, models.FormStatusPublished).
		First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindPublishedBySlug: erro de banco", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// SlugExists verifica unicidade global de slug, opcionalmente ignorando um ID.
func (r *FormRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.getDB(ctx).Model(&models.Form{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("FormRepository.SlugExists: erro de banco", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// FindAllPaginated lista formulários com filtro por título/status e ordenação.
func (r *FormRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error) {
	var forms []models.Form
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Form{})

	if params.Name != "" {
		fragment, args := textsearch.SQLFilter("title", params.Name)
		query = query.Where(fragment, args...)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("FormRepository.FindAllPaginated: erro no count", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return forms, 0, nil
	}

	orderColumn := r.base.OrderColumn(params.SortBy)
	err := query.
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllPaginated: erro no find", zap.Error(err))
		return nil, totalCount, err
	}
	return forms, totalCount, nil
}

// Update salva o formulário inteiro.
func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("formulário inválido para atualização")
	}
	return r.getDB(ctx).Save(form).Error
}

// UpdateStatus altera apenas a coluna de status. Não reescreve o registro
// inteiro, então uma edição concorrente de título ou configurações não é
// sobrescrita pela mudança de ciclo de vida.
func (r *FormRepository) UpdateStatus(ctx context.Context, id uint, status string, updatedByUserID uint) error {
	if id == 0 {
		return errors.New("ID de formulário inválido")
	}
	result := r.getDB(ctx).Model(&models.Form{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_by": &updatedByUserID})
	if result.Error != nil {
		configslog.Log.Error("FormRepository.UpdateStatus: erro de banco", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete faz soft delete do formulário e, em cascata, de campos, submissões e
// valores, tudo na mesma transação.
func (r *FormRepository) Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error {
	if form == nil || form.ID == 0 {
		return errors.New("formulário inválido para exclusão")
	}
	db := r.getDB(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		var submissionIDs []uint
		if err := tx.Model(&models.FormSubmission{}).
			Where("form_id = ?", form.ID).
			Pluck("id", &submissionIDs).Error; err != nil {
			return err
		}
		if len(submissionIDs) > 0 {
			if err := tx.Where("submission_id IN ?", submissionIDs).
				Delete(&models.SubmissionValue{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("form_id = ?", form.ID).Delete(&models.FormSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", form.ID).Delete(&models.FormField{}).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Form{}).
			Where("id = ? AND deleted_at IS NULL", form.ID).
			Updates(map[string]interface{}{"deleted_at": time.Now().UTC(), "deleted_by": &deletedByUserID})
		if result.Error != nil {
			configslog.Log.Error("FormRepository.Delete: erro ao excluir", zap.Uint("id", form.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountAll conta todos os formulários.
func (r *FormRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IFormRepository = (*FormRepository)(nil)
