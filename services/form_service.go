package services

import (
	"context"
	"errors"
	"fmt"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/queryparams"
	"formulario.link/pkg/slug"
	"formulario.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormServiceError são os erros tipados do serviço de formulários.
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound       FormServiceError = "formulário não encontrado"
	ErrFormTitleRequired  FormServiceError = "o título do formulário é obrigatório"
	ErrFormInvalidInput   FormServiceError = "dados de formulário inválidos"
	ErrFormInvalidStatus  FormServiceError = "status de formulário inválido"
	ErrDuplicateSlug      FormServiceError = "já existe um formulário com esse slug"
	ErrFormCreationFailed FormServiceError = "não foi possível criar o formulário"
	ErrFormUpdateFailed   FormServiceError = "não foi possível atualizar o formulário"
	ErrFormDeletionFailed FormServiceError = "não foi possível excluir o formulário"
)

// IFormService define as operações sobre formulários.
type IFormService interface {
	CreateForm(ctx context.Context, creatorUserID uint, input models.Form) (*models.Form, error)
	GetFormByID(ctx context.Context, id uint) (*models.Form, error)
	GetFormWithFields(ctx context.Context, id uint) (*models.Form, error)
	GetPublishedFormBySlug(ctx context.Context, slugValue string) (*models.Form, error)
	GetFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateForm(ctx context.Context, updatingUserID uint, id uint, input models.Form) error
	UpdateStatus(ctx context.Context, updatingUserID uint, id uint, status string) error
	DeleteForm(ctx context.Context, deletingUserID uint, id uint) error
	GetSubmissionCount(ctx context.Context, formID uint) (int64, error)
}

// FormService implementa IFormService.
type FormService struct {
	repo    repositories.IFormRepository
	subRepo repositories.ISubmissionRepository
	db      *gorm.DB
}

// NewFormService cria o serviço com as dependências padrão.
func NewFormService() IFormService {
	return &FormService{
		repo:    repositories.NewFormRepository(),
		subRepo: repositories.NewSubmissionRepository(),
		db:      configs.GetDB(),
	}
}

var validStatuses = map[string]bool{
	models.FormStatusDraft:     true,
	models.FormStatusPublished: true,
	models.FormStatusArchived:  true,
}

// ValidateFormInput aplica as validações básicas de criação/edição.
func ValidateFormInput(form models.Form) error {
	if form.Title == "" {
		return ErrFormTitleRequired
	}
	if form.Status != "" && !validStatuses[form.Status] {
		return ErrFormInvalidStatus
	}
	return nil
}

// CreateForm cria um formulário com slug derivado do título (ou o informado),
// garantindo unicidade global. A identidade de quem cria é explícita.
func (s *FormService) CreateForm(ctx context.Context, creatorUserID uint, input models.Form) (*models.Form, error) {
	if err := ValidateFormInput(input); err != nil {
		return nil, err
	}
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: usuário criador inválido", ErrFormInvalidInput)
	}

	if input.Slug == "" {
		input.Slug = slug.Make(input.Title)
	} else {
		input.Slug = slug.Make(input.Slug)
	}
	if input.Slug == "" {
		return nil, fmt.Errorf("%w: título não gera slug válido", ErrFormInvalidInput)
	}
	if input.Status == "" {
		input.Status = models.FormStatusDraft
	}

	exists, err := s.repo.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, ErrFormCreationFailed
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	ctxWithUser := models.ContextWithUserID(ctx, creatorUserID)
	if err := s.repo.Create(ctxWithUser, &input); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		configslog.Log.Error("Erro ao criar formulário", zap.Error(err), zap.Uint("creatorUserID", creatorUserID))
		return nil, ErrFormCreationFailed
	}

	configslog.SLog.Infof("Formulário criado: ID %d, Título: %s, Slug: %s (Criador: %d)",
		input.ID, input.Title, input.Slug, creatorUserID)
	return &input, nil
}

// GetFormByID busca um formulário pelo ID.
func (s *FormService) GetFormByID(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// GetFormWithFields busca o formulário com os campos na ordem de exibição.
func (s *FormService) GetFormWithFields(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.FindByIDWithFields(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// GetPublishedFormBySlug resolve o caminho público. Formulários em rascunho ou
// arquivados são invisíveis aqui: NotFound, nunca Forbidden.
func (s *FormService) GetPublishedFormBySlug(ctx context.Context, slugValue string) (*models.Form, error) {
	if slugValue == "" {
		return nil, ErrFormNotFound
	}
	form, err := s.repo.FindPublishedBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// GetFormsPaginated lista formulários para o painel.
func (s *FormService) GetFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	forms, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: forms,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateForm atualiza título, descrição, status e configurações. Mudança de
// título re-deriva o slug mantendo a unicidade.
func (s *FormService) UpdateForm(ctx context.Context, updatingUserID uint, id uint, input models.Form) error {
	if err := ValidateFormInput(input); err != nil {
		return err
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrFormInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, updatingUserID)
		repoTx := repositories.NewFormRepositoryTx(tx)

		var existing models.Form
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		newSlug := existing.Slug
		if input.Slug != "" {
			newSlug = slug.Make(input.Slug)
		} else if input.Title != existing.Title {
			newSlug = slug.Make(input.Title)
		}
		if newSlug == "" {
			return fmt.Errorf("%w: título não gera slug válido", ErrFormInvalidInput)
		}
		if newSlug != existing.Slug {
			exists, err := repoTx.SlugExists(txCtx, newSlug, existing.ID)
			if err != nil {
				return ErrFormUpdateFailed
			}
			if exists {
				return ErrDuplicateSlug
			}
		}

		existing.Title = input.Title
		existing.Description = input.Description
		existing.Slug = newSlug
		if input.Status != "" {
			existing.Status = input.Status
		}
		existing.Settings = input.Settings

		if err := repoTx.Update(txCtx, &existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSlug
			}
			return ErrFormUpdateFailed
		}
		return nil
	})

	if txErr != nil {
		if !errors.Is(txErr, ErrFormNotFound) && !errors.Is(txErr, ErrDuplicateSlug) {
			configslog.Log.Error("UpdateForm: transação falhou", zap.Uint("id", id), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Formulário atualizado: ID %d (Usuário: %d)", id, updatingUserID)
	return nil
}

// UpdateStatus muda o ciclo de vida (draft/published/archived). A escrita é
// pontual na coluna de status; título, slug e configurações nunca são tocados,
// mesmo com edições concorrentes no meio.
func (s *FormService) UpdateStatus(ctx context.Context, updatingUserID uint, id uint, status string) error {
	if !validStatuses[status] {
		return ErrFormInvalidStatus
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrFormInvalidInput)
	}
	if err := s.repo.UpdateStatus(ctx, id, status, updatingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		configslog.Log.Error("UpdateStatus: erro ao salvar", zap.Uint("id", id), zap.String("status", status), zap.Error(err))
		return ErrFormUpdateFailed
	}
	configslog.SLog.Infof("Status do formulário %d alterado para %s (Usuário: %d)", id, status, updatingUserID)
	return nil
}

// DeleteForm exclui o formulário em cascata: campos, submissões e valores vão
// junto, na mesma transação do repositório.
func (s *FormService) DeleteForm(ctx context.Context, deletingUserID uint, id uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrFormInvalidInput)
	}
	form, err := s.GetFormByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, form, deletingUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFormNotFound
		}
		configslog.Log.Error("DeleteForm: erro ao excluir", zap.Uint("id", id), zap.Error(err))
		return ErrFormDeletionFailed
	}
	configslog.SLog.Infof("Formulário excluído em cascata: ID %d (Usuário: %d)", id, deletingUserID)
	return nil
}

// GetSubmissionCount conta as submissões de um formulário.
func (s *FormService) GetSubmissionCount(ctx context.Context, formID uint) (int64, error) {
	return s.subRepo.CountByFormID(ctx, formID)
}

var _ IFormService = (*FormService)(nil)
