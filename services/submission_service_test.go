package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
	"formulario.link/pkg/queryparams"
	"formulario.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeFormRepo serve um único formulário em memória.
type fakeFormRepo struct {
	form         *models.Form
	err          error
	created      *models.Form
	slugTaken    bool
	statusWrites int
}

func (f *fakeFormRepo) Create(_ context.Context, form *models.Form) error {
	form.ID = 101
	f.created = form
	return nil
}
func (f *fakeFormRepo) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	return f.FindByIDWithFields(ctx, id)
}
func (f *fakeFormRepo) FindByIDWithFields(_ context.Context, id uint) (*models.Form, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.form == nil || f.form.ID != id {
		return nil, repositories.ErrNotFound
	}
	return f.form, nil
}
func (f *fakeFormRepo) FindPublishedBySlug(context.Context, string) (*models.Form, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeFormRepo) SlugExists(context.Context, string, uint) (bool, error) {
	return f.slugTaken, nil
}
func (f *fakeFormRepo) FindAllPaginated(context.Context, queryparams.ListParams) ([]models.Form, int64, error) {
	return nil, 0, nil
}
func (f *fakeFormRepo) Update(context.Context, *models.Form) error { return errors.New("não usado") }
func (f *fakeFormRepo) UpdateStatus(_ context.Context, id uint, status string, _ uint) error {
	if f.err != nil {
		return f.err
	}
	if f.form == nil || f.form.ID != id {
		return repositories.ErrNotFound
	}
	f.form.Status = status
	f.statusWrites++
	return nil
}
func (f *fakeFormRepo) Delete(context.Context, *models.Form, uint) error {
	return errors.New("não usado")
}
func (f *fakeFormRepo) CountAll(context.Context) (int64, error) { return 0, nil }

// fakeSubRepo registra submissões e valores em memória.
type fakeSubRepo struct {
	nextID      uint
	submissions []models.FormSubmission
	values      []models.SubmissionValue
	createErr   error
	valuesErr   error
}

func (f *fakeSubRepo) Create(_ context.Context, s *models.FormSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	s.ID = f.nextID
	f.submissions = append(f.submissions, *s)
	return nil
}
func (f *fakeSubRepo) CreateValues(_ context.Context, vs []models.SubmissionValue) error {
	if f.valuesErr != nil {
		return f.valuesErr
	}
	f.values = append(f.values, vs...)
	return nil
}
func (f *fakeSubRepo) FindByID(_ context.Context, id uint) (*models.FormSubmission, error) {
	for i := range f.submissions {
		if f.submissions[i].ID == id {
			return &f.submissions[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeSubRepo) FindAllByFormID(_ context.Context, formID uint) ([]models.FormSubmission, error) {
	var out []models.FormSubmission
	for _, s := range f.submissions {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSubRepo) FindValuesBySubmissionIDs(_ context.Context, ids []uint) ([]models.SubmissionValue, error) {
	wanted := map[uint]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.SubmissionValue
	for _, v := range f.values {
		if wanted[v.SubmissionID] {
			out = append(out, v)
		}
	}
	return out, nil
}
func (f *fakeSubRepo) CountByFormID(_ context.Context, formID uint) (int64, error) {
	subs, _ := f.FindAllByFormID(context.Background(), formID)
	return int64(len(subs)), nil
}
func (f *fakeSubRepo) Delete(_ context.Context, s *models.FormSubmission, _ uint) error {
	kept := f.submissions[:0]
	for _, sub := range f.submissions {
		if sub.ID != s.ID {
			kept = append(kept, sub)
		}
	}
	f.submissions = kept
	return nil
}

// fakeWebhook registra o payload sem rede; o erro simulado nunca deve escapar.
type fakeWebhook struct {
	dispatched []CademiPayload
	fail       bool
}

func (f *fakeWebhook) DispatchAsync(p CademiPayload) { f.dispatched = append(f.dispatched, p) }
func (f *fakeWebhook) Dispatch(_ context.Context, p CademiPayload) error {
	f.dispatched = append(f.dispatched, p)
	if f.fail {
		return errors.New("endpoint fora do ar")
	}
	return nil
}

var _ repositories.IFormRepository = (*fakeFormRepo)(nil)
var _ repositories.ISubmissionRepository = (*fakeSubRepo)(nil)
var _ IWebhookService = (*fakeWebhook)(nil)

func newTestService(form *models.Form, subRepo *fakeSubRepo, hook *fakeWebhook) *SubmissionService {
	return &SubmissionService{
		formRepo: &fakeFormRepo{form: form},
		subRepo:  subRepo,
		webhook:  hook,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		subRepoTx: func(*gorm.DB) repositories.ISubmissionRepository { return subRepo },
		now:       func() time.Time { return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC) },
	}
}

func testForm(cademi bool) *models.Form {
	return &models.Form{
		BaseModel: models.BaseModel{ID: 7},
		Title:     "Inscrição",
		Slug:      "inscricao",
		Status:    models.FormStatusPublished,
		Settings: models.FormSettings{
			CademiEnabled:     cademi,
			CademiToken:       "tok-123",
			CademiProductID:   "77",
			CademiProductName: "Curso X",
		},
		Fields: []models.FormField{
			field(1, "Nome completo", fieldtypes.TypeText, true),
			field(2, "E-mail", fieldtypes.TypeEmail, true),
			field(3, "Telefone", fieldtypes.TypePhone, false),
		},
	}
}

func TestSubmitFormNotFound(t *testing.T) {
	svc := newTestService(nil, &fakeSubRepo{}, &fakeWebhook{})
	_, err := svc.SubmitForm(context.Background(), 99, map[uint]string{}, RequestMeta{})
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSubmitFormRejectedLeavesStoreUnchanged(t *testing.T) {
	subRepo := &fakeSubRepo{}
	hook := &fakeWebhook{}
	svc := newTestService(testForm(true), subRepo, hook)

	_, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "",
		2: "nao-e-email",
	}, RequestMeta{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)

	assert.Empty(t, subRepo.submissions)
	assert.Empty(t, subRepo.values)
	assert.Empty(t, hook.dispatched)
}

func TestSubmitFormPersistsOneValuePerNonEmptyAnswer(t *testing.T) {
	subRepo := &fakeSubRepo{}
	hook := &fakeWebhook{}
	svc := newTestService(testForm(true), subRepo, hook)

	sub, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "Maria Oliveira",
		2: "maria@example.com",
		3: "", // opcional em branco não vira linha
	}, RequestMeta{IPAddress: "203.0.113.9", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.Len(t, subRepo.submissions, 1)
	assert.Len(t, subRepo.values, 2)
	for _, v := range subRepo.values {
		assert.Equal(t, sub.ID, v.SubmissionID)
	}

	assert.Equal(t, "203.0.113.9", sub.IPAddress)
	assert.Equal(t, "aprovado", sub.Metadata["status"])
	assert.Equal(t, "77", sub.Metadata["produto_id"])
	assert.Equal(t, "Maria Oliveira", sub.Metadata["cliente_nome"])
	assert.Equal(t, "maria@example.com", sub.Metadata["cliente_email"])
	assert.NotEmpty(t, sub.Metadata["codigo"])

	require.Len(t, hook.dispatched, 1)
	payload := hook.dispatched[0]
	assert.Equal(t, "tok-123", payload.Token)
	assert.Equal(t, sub.ID, payload.SubmissionID)
	assert.Equal(t, "maria@example.com", payload.ClientEmail)
}

func TestSubmitFormIntegrationDisabled(t *testing.T) {
	subRepo := &fakeSubRepo{}
	hook := &fakeWebhook{}
	svc := newTestService(testForm(false), subRepo, hook)

	sub, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "Maria Oliveira",
		2: "maria@example.com",
	}, RequestMeta{})
	require.NoError(t, err)

	assert.Empty(t, sub.Metadata)
	assert.Empty(t, hook.dispatched)
}

func TestSubmitFormNoEmailSkipsWebhook(t *testing.T) {
	form := testForm(true)
	form.Fields = []models.FormField{
		field(1, "Nome completo", fieldtypes.TypeText, true),
	}
	subRepo := &fakeSubRepo{}
	hook := &fakeWebhook{}
	svc := newTestService(form, subRepo, hook)

	_, err := svc.SubmitForm(context.Background(), 7, map[uint]string{1: "Maria Oliveira"}, RequestMeta{})
	require.NoError(t, err)
	assert.Empty(t, hook.dispatched)
}

func TestSubmitFormWebhookFailureDoesNotAffectResult(t *testing.T) {
	subRepo := &fakeSubRepo{}
	hook := &fakeWebhook{fail: true}
	svc := newTestService(testForm(true), subRepo, hook)

	sub, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "Maria Oliveira",
		2: "maria@example.com",
	}, RequestMeta{})
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.Len(t, subRepo.submissions, 1)
}

func TestSubmitFormPersistFailure(t *testing.T) {
	subRepo := &fakeSubRepo{valuesErr: errors.New("disco cheio")}
	hook := &fakeWebhook{}
	svc := newTestService(testForm(true), subRepo, hook)

	_, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "Maria Oliveira",
		2: "maria@example.com",
	}, RequestMeta{})
	assert.ErrorIs(t, err, ErrSubmissionPersistFailed)
	assert.Empty(t, hook.dispatched)
}

func TestExtractClient(t *testing.T) {
	fields := []models.FormField{
		field(1, "E-mail secundário", fieldtypes.TypeEmail, false),
		field(2, "E-mail", fieldtypes.TypeEmail, true),
		field(3, "Nome completo", fieldtypes.TypeText, true),
	}

	// Primeiro email não vazio na ordem do formulário vence.
	name, email := ExtractClient(fields, map[uint]string{
		1: "",
		2: "maria@example.com",
		3: "Maria Oliveira",
	})
	assert.Equal(t, "Maria Oliveira", name)
	assert.Equal(t, "maria@example.com", email)

	// Sem campo de nome preenchido, usa o fallback.
	name, email = ExtractClient(fields, map[uint]string{2: "x@y.com"})
	assert.Equal(t, "Cliente", name)
	assert.Equal(t, "x@y.com", email)
}

func TestGetSubmissionsWithValues(t *testing.T) {
	subRepo := &fakeSubRepo{}
	svc := newTestService(testForm(false), subRepo, &fakeWebhook{})

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
			1: "Maria Oliveira",
			2: "maria@example.com",
		}, RequestMeta{})
		require.NoError(t, err)
	}

	out, err := svc.GetSubmissionsWithValues(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, s := range out {
		assert.Len(t, s.ValueMap, 2)
		assert.Equal(t, "Maria Oliveira", s.ValueMap[1])
	}
}

func TestDeleteSubmission(t *testing.T) {
	subRepo := &fakeSubRepo{}
	svc := newTestService(testForm(false), subRepo, &fakeWebhook{})

	sub, err := svc.SubmitForm(context.Background(), 7, map[uint]string{
		1: "Maria Oliveira",
		2: "maria@example.com",
	}, RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubmission(context.Background(), 1, sub.ID))
	assert.Empty(t, subRepo.submissions)

	assert.ErrorIs(t, svc.DeleteSubmission(context.Background(), 1, sub.ID), ErrSubmissionNotFound)
}
