package services

import (
	"context"
	"testing"

	"formulario.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormInput(t *testing.T) {
	assert.ErrorIs(t, ValidateFormInput(models.Form{}), ErrFormTitleRequired)
	assert.ErrorIs(t, ValidateFormInput(models.Form{Title: "X", Status: "qualquer"}), ErrFormInvalidStatus)
	assert.NoError(t, ValidateFormInput(models.Form{Title: "X"}))
	assert.NoError(t, ValidateFormInput(models.Form{Title: "X", Status: models.FormStatusPublished}))
}

func TestCreateFormDerivesSlugFromTitle(t *testing.T) {
	repo := &fakeFormRepo{}
	svc := &FormService{repo: repo, subRepo: &fakeSubRepo{}}

	form, err := svc.CreateForm(context.Background(), 1, models.Form{Title: "Inscrição: Turma Nº 2"})
	require.NoError(t, err)

	assert.Equal(t, "inscricao-turma-n-2", form.Slug)
	assert.Equal(t, models.FormStatusDraft, form.Status)
	require.NotNil(t, repo.created)
	assert.Equal(t, form.Slug, repo.created.Slug)
}

func TestCreateFormRespectsExplicitSlug(t *testing.T) {
	repo := &fakeFormRepo{}
	svc := &FormService{repo: repo, subRepo: &fakeSubRepo{}}

	form, err := svc.CreateForm(context.Background(), 1, models.Form{Title: "Qualquer", Slug: "Meu Slug Fixo"})
	require.NoError(t, err)
	assert.Equal(t, "meu-slug-fixo", form.Slug)
}

func TestCreateFormDuplicateSlug(t *testing.T) {
	repo := &fakeFormRepo{slugTaken: true}
	svc := &FormService{repo: repo, subRepo: &fakeSubRepo{}}

	_, err := svc.CreateForm(context.Background(), 1, models.Form{Title: "Inscrição"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestCreateFormRequiresCreator(t *testing.T) {
	svc := &FormService{repo: &fakeFormRepo{}, subRepo: &fakeSubRepo{}}
	_, err := svc.CreateForm(context.Background(), 0, models.Form{Title: "Inscrição"})
	assert.ErrorIs(t, err, ErrFormInvalidInput)
}

func TestCreateFormRejectsUnsluggableTitle(t *testing.T) {
	svc := &FormService{repo: &fakeFormRepo{}, subRepo: &fakeSubRepo{}}
	_, err := svc.CreateForm(context.Background(), 1, models.Form{Title: "!!!"})
	assert.ErrorIs(t, err, ErrFormInvalidInput)
}

func TestUpdateStatusEscreveApenasAColunaDeStatus(t *testing.T) {
	form := &models.Form{BaseModel: models.BaseModel{ID: 7}, Title: "Inscrição", Slug: "inscricao", Status: models.FormStatusDraft}
	repo := &fakeFormRepo{form: form}
	svc := &FormService{repo: repo, subRepo: &fakeSubRepo{}}

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, 7, models.FormStatusPublished))

	// A mudança de ciclo de vida passa pela escrita pontual, nunca pelo Save
	// completo: uma edição concorrente de título não pode ser sobrescrita.
	// O Update do fake falharia se fosse chamado.
	assert.Equal(t, 1, repo.statusWrites)
	assert.Equal(t, models.FormStatusPublished, form.Status)
	assert.Equal(t, "Inscrição", form.Title)
}

func TestUpdateStatusInvalido(t *testing.T) {
	svc := &FormService{repo: &fakeFormRepo{}, subRepo: &fakeSubRepo{}}
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 1, 7, "qualquer"), ErrFormInvalidStatus)
}

func TestUpdateStatusFormularioInexistente(t *testing.T) {
	svc := &FormService{repo: &fakeFormRepo{}, subRepo: &fakeSubRepo{}}
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 1, 99, models.FormStatusArchived), ErrFormNotFound)
}

func TestGetPublishedFormBySlugNotFound(t *testing.T) {
	svc := &FormService{repo: &fakeFormRepo{}, subRepo: &fakeSubRepo{}}
	_, err := svc.GetPublishedFormBySlug(context.Background(), "inexistente")
	assert.ErrorIs(t, err, ErrFormNotFound)

	_, err = svc.GetPublishedFormBySlug(context.Background(), "")
	assert.ErrorIs(t, err, ErrFormNotFound)
}
