package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"formulario.link/configs"
	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
	"formulario.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionServiceError são os erros tipados do pipeline de submissão.
type SubmissionServiceError string

func (e SubmissionServiceError) Error() string { return string(e) }

const (
	ErrSubmissionNotFound       SubmissionServiceError = "submissão não encontrada"
	ErrSubmissionInvalidInput   SubmissionServiceError = "dados de submissão inválidos"
	ErrSubmissionPersistFailed  SubmissionServiceError = "não foi possível gravar a submissão"
	ErrSubmissionDeletionFailed SubmissionServiceError = "não foi possível excluir a submissão"
)

// RequestMeta são os metadados opcionais da requisição de quem submete.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ISubmissionService orquestra validação, derivação de metadados, gravação
// atômica e o disparo (não aguardado) do postback.
type ISubmissionService interface {
	SubmitForm(ctx context.Context, formID uint, values map[uint]string, meta RequestMeta) (*models.FormSubmission, error)
	GetSubmissionsWithValues(ctx context.Context, formID uint) ([]models.SubmissionWithValues, error)
	DeleteSubmission(ctx context.Context, deletingUserID uint, id uint) error
}

// SubmissionService implementa ISubmissionService.
type SubmissionService struct {
	formRepo repositories.IFormRepository
	subRepo  repositories.ISubmissionRepository
	webhook  IWebhookService

	// runTx e subRepoTx existem para que os testes troquem a transação real
	// por fakes sem banco.
	runTx     func(ctx context.Context, fn func(tx *gorm.DB) error) error
	subRepoTx func(tx *gorm.DB) repositories.ISubmissionRepository

	now func() time.Time
}

// NewSubmissionService cria o serviço com as dependências padrão.
func NewSubmissionService() ISubmissionService {
	db := configs.GetDB()
	return &SubmissionService{
		formRepo: repositories.NewFormRepository(),
		subRepo:  repositories.NewSubmissionRepository(),
		webhook:  NewWebhookService(),
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
		subRepoTx: repositories.NewSubmissionRepositoryTx,
		now:       time.Now,
	}
}

// SubmitForm executa o pipeline completo:
//  1. carrega definição de campos e configurações (NotFound se não existir);
//  2. valida tudo e aborta com ValidationError sem gravar nada;
//  3. extrai nome/e-mail do cliente por heurística;
//  4. deriva o mapa de metadados quando a integração está ligada;
//  5. grava submissão + valores atomicamente;
//  6. agenda o postback sem aguardar — o resultado dele nunca chega aqui.
func (s *SubmissionService) SubmitForm(ctx context.Context, formID uint, values map[uint]string, meta RequestMeta) (*models.FormSubmission, error) {
	if formID == 0 {
		return nil, ErrSubmissionNotFound
	}

	form, err := s.formRepo.FindByIDWithFields(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSubmissionPersistFailed, err)
	}

	if fieldErrs := ValidateSubmission(form.Fields, values); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	clientName, clientEmail := ExtractClient(form.Fields, values)

	metadata := models.MetadataMap{}
	settings := form.Settings
	if settings.CademiEnabled {
		status := settings.CademiStatus
		if status == "" {
			status = "aprovado"
		}
		metadata["codigo"] = strconv.FormatInt(s.now().UnixMilli(), 10)
		metadata["status"] = status
		metadata["produto_id"] = settings.CademiProductID
		metadata["produto_nome"] = settings.CademiProductName
		metadata["cliente_nome"] = clientName
		metadata["cliente_email"] = clientEmail
	}

	submission := &models.FormSubmission{
		FormID:      form.ID,
		SubmittedAt: s.now().UTC(),
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		Metadata:    metadata,
	}

	// Submissão e valores são um único bloco atômico: nenhum leitor pode
	// observar uma submissão com um subconjunto dos valores pretendidos.
	txErr := s.runTx(ctx, func(tx *gorm.DB) error {
		repoTx := s.subRepoTx(tx)
		if err := repoTx.Create(ctx, submission); err != nil {
			return err
		}

		rows := make([]models.SubmissionValue, 0, len(values))
		for _, field := range form.Fields {
			value, ok := values[field.ID]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			rows = append(rows, models.SubmissionValue{
				SubmissionID: submission.ID,
				FieldID:      field.ID,
				Value:        value,
			})
		}
		return repoTx.CreateValues(ctx, rows)
	})
	if txErr != nil {
		configslog.Log.Error("SubmitForm: gravação atômica falhou",
			zap.Uint("form_id", form.ID), zap.Error(txErr))
		return nil, ErrSubmissionPersistFailed
	}

	if settings.CademiEnabled && clientEmail != "" {
		s.webhook.DispatchAsync(CademiPayload{
			Token:        settings.CademiToken,
			ProductID:    settings.CademiProductID,
			ProductName:  settings.CademiProductName,
			ClientName:   clientName,
			ClientEmail:  clientEmail,
			SubmissionID: submission.ID,
			Status:       settings.CademiStatus,
		})
	}

	configslog.SLog.Infof("Submissão gravada: ID %d (Formulário: %d, Valores: %d)",
		submission.ID, form.ID, len(values))
	return submission, nil
}

// ExtractClient varre os campos na ordem do formulário: o primeiro campo de
// tipo email com resposta não vazia vira o e-mail do cliente; o primeiro campo
// com "nome" no rótulo e resposta não vazia vira o nome. Sem nome, usa
// "Cliente". Melhor-esforço: os valores não são revalidados aqui.
func ExtractClient(fields []models.FormField, values map[uint]string) (name, email string) {
	for _, field := range fields {
		value := strings.TrimSpace(values[field.ID])
		if value == "" {
			continue
		}
		if email == "" && field.FieldType == fieldtypes.TypeEmail {
			email = value
		}
		if name == "" && labelMentionsName(field.Label) {
			name = value
		}
	}
	if name == "" {
		name = "Cliente"
	}
	return name, email
}

// GetSubmissionsWithValues lista as submissões de um formulário (mais recentes
// primeiro) com os valores agregados em uma única busca em lote.
func (s *SubmissionService) GetSubmissionsWithValues(ctx context.Context, formID uint) ([]models.SubmissionWithValues, error) {
	submissions, err := s.subRepo.FindAllByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}
	values, err := s.subRepo.FindValuesBySubmissionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	valuesBySubmission := make(map[uint]map[uint]string, len(submissions))
	for _, v := range values {
		if valuesBySubmission[v.SubmissionID] == nil {
			valuesBySubmission[v.SubmissionID] = map[uint]string{}
		}
		valuesBySubmission[v.SubmissionID][v.FieldID] = v.Value
	}

	out := make([]models.SubmissionWithValues, len(submissions))
	for i, sub := range submissions {
		valueMap := valuesBySubmission[sub.ID]
		if valueMap == nil {
			valueMap = map[uint]string{}
		}
		out[i] = models.SubmissionWithValues{FormSubmission: sub, ValueMap: valueMap}
	}
	return out, nil
}

// DeleteSubmission exclui uma submissão e seus valores.
func (s *SubmissionService) DeleteSubmission(ctx context.Context, deletingUserID uint, id uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: ID ou usuário inválido", ErrSubmissionInvalidInput)
	}
	submission, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if err := s.subRepo.Delete(ctx, submission, deletingUserID); err != nil {
		configslog.Log.Error("DeleteSubmission: erro ao excluir", zap.Uint("id", id), zap.Error(err))
		return ErrSubmissionDeletionFailed
	}
	configslog.SLog.Infof("Submissão excluída: ID %d (Usuário: %d)", id, deletingUserID)
	return nil
}

var _ ISubmissionService = (*SubmissionService)(nil)
