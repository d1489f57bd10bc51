package services

import (
	"context"
	"sort"
	"testing"

	"formulario.link/models"
	"formulario.link/pkg/fieldtypes"
	"formulario.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeFieldRepo mantém os campos de um único formulário em memória.
type fakeFieldRepo struct {
	formID uint
	nextID uint
	fields map[uint]*models.FormField
}

func newFakeFieldRepo(formID uint) *fakeFieldRepo {
	return &fakeFieldRepo{formID: formID, fields: map[uint]*models.FormField{}}
}

func (f *fakeFieldRepo) Create(_ context.Context, field *models.FormField) error {
	f.nextID++
	field.ID = f.nextID
	cp := *field
	f.fields[field.ID] = &cp
	return nil
}
func (f *fakeFieldRepo) FindByID(_ context.Context, id uint) (*models.FormField, error) {
	if field, ok := f.fields[id]; ok {
		cp := *field
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeFieldRepo) FindAllByFormID(_ context.Context, formID uint) ([]models.FormField, error) {
	var out []models.FormField
	for _, field := range f.fields {
		if field.FormID == formID {
			out = append(out, *field)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldOrder < out[j].FieldOrder })
	return out, nil
}
func (f *fakeFieldRepo) Update(_ context.Context, field *models.FormField) error {
	if _, ok := f.fields[field.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *field
	f.fields[field.ID] = &cp
	return nil
}
func (f *fakeFieldRepo) UpdateOrder(_ context.Context, fieldID uint, order int) error {
	field, ok := f.fields[fieldID]
	if !ok {
		return repositories.ErrNotFound
	}
	field.FieldOrder = order
	return nil
}
func (f *fakeFieldRepo) Delete(_ context.Context, field *models.FormField, _ uint) error {
	delete(f.fields, field.ID)
	return nil
}
func (f *fakeFieldRepo) LockForm(_ context.Context, formID uint) error {
	if formID != f.formID {
		return repositories.ErrNotFound
	}
	return nil
}
func (f *fakeFieldRepo) MaxOrder(_ context.Context, formID uint) (int, error) {
	max := -1
	for _, field := range f.fields {
		if field.FormID == formID && field.FieldOrder > max {
			max = field.FieldOrder
		}
	}
	return max, nil
}

var _ repositories.IFieldRepository = (*fakeFieldRepo)(nil)

func newTestFieldService(repo *fakeFieldRepo) *FieldService {
	return &FieldService{
		repo: repo,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		repoTx: func(*gorm.DB) repositories.IFieldRepository { return repo },
	}
}

func mustCreateField(t *testing.T, svc *FieldService, formID uint, label string) *models.FormField {
	t.Helper()
	created, err := svc.CreateField(context.Background(), 1, models.FormField{
		FormID:    formID,
		Label:     label,
		FieldType: fieldtypes.TypeText,
	})
	require.NoError(t, err)
	return created
}

func TestCreateFieldAssignsNextOrder(t *testing.T) {
	repo := newFakeFieldRepo(7)
	svc := newTestFieldService(repo)

	a := mustCreateField(t, svc, 7, "A")
	b := mustCreateField(t, svc, 7, "B")
	c := mustCreateField(t, svc, 7, "C")

	assert.Equal(t, 0, a.FieldOrder)
	assert.Equal(t, 1, b.FieldOrder)
	assert.Equal(t, 2, c.FieldOrder)
}

func TestCreateFieldValidation(t *testing.T) {
	svc := newTestFieldService(newFakeFieldRepo(7))

	_, err := svc.CreateField(context.Background(), 1, models.FormField{FormID: 7, FieldType: fieldtypes.TypeText})
	assert.ErrorIs(t, err, ErrFieldLabelRequired)

	_, err = svc.CreateField(context.Background(), 1, models.FormField{FormID: 7, Label: "X", FieldType: "desconhecido"})
	assert.ErrorIs(t, err, ErrFieldUnknownType)

	_, err = svc.CreateField(context.Background(), 1, models.FormField{FormID: 99, Label: "X", FieldType: fieldtypes.TypeText})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestReorderFieldsDenseOrder(t *testing.T) {
	repo := newFakeFieldRepo(7)
	svc := newTestFieldService(repo)

	a := mustCreateField(t, svc, 7, "A")
	b := mustCreateField(t, svc, 7, "B")
	c := mustCreateField(t, svc, 7, "C")

	// [A,B,C] -> [C,A,B] deve produzir posições 0,1,2 sem buracos.
	require.NoError(t, svc.ReorderFields(context.Background(), 1, 7, []uint{c.ID, a.ID, b.ID}))

	fields, err := svc.GetFieldsByFormID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, []uint{c.ID, a.ID, b.ID}, []uint{fields[0].ID, fields[1].ID, fields[2].ID})
	assert.Equal(t, []int{0, 1, 2}, []int{fields[0].FieldOrder, fields[1].FieldOrder, fields[2].FieldOrder})
}

func TestReorderFieldsRejectsWrongIDSet(t *testing.T) {
	repo := newFakeFieldRepo(7)
	svc := newTestFieldService(repo)

	a := mustCreateField(t, svc, 7, "A")
	b := mustCreateField(t, svc, 7, "B")

	// ID estranho, ID duplicado e lista incompleta são todos rejeitados.
	assert.ErrorIs(t, svc.ReorderFields(context.Background(), 1, 7, []uint{a.ID, 999}), ErrFieldReorderInvalid)
	assert.ErrorIs(t, svc.ReorderFields(context.Background(), 1, 7, []uint{a.ID, a.ID}), ErrFieldReorderInvalid)
	assert.ErrorIs(t, svc.ReorderFields(context.Background(), 1, 7, []uint{b.ID}), ErrFieldReorderInvalid)
}

func TestDeleteFieldRedensifiesOrder(t *testing.T) {
	repo := newFakeFieldRepo(7)
	svc := newTestFieldService(repo)

	mustCreateField(t, svc, 7, "A")
	b := mustCreateField(t, svc, 7, "B")
	c := mustCreateField(t, svc, 7, "C")

	require.NoError(t, svc.DeleteField(context.Background(), 1, b.ID))

	fields, err := svc.GetFieldsByFormID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, 0, fields[0].FieldOrder)
	assert.Equal(t, 1, fields[1].FieldOrder)
	assert.Equal(t, c.ID, fields[1].ID)
}
