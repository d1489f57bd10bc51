package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound normaliza gorm.ErrRecordNotFound para as camadas superiores.
var ErrNotFound = errors.New("registro não encontrado")

// IBaseRepository expõe as operações genéricas compartilhadas pelos
// repositórios concretos.
type IBaseRepository[T any] interface {
	SetAllowedSortColumns(cols []string)
	OrderColumn(sortBy string) string
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Count(ctx context.Context) (int64, error)
}

// BaseRepository implementa IBaseRepository sobre um *gorm.DB.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]struct{}
	defaultSort string
}

// NewBaseRepository cria o repositório genérico para o modelo T.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:          db,
		sortColumns: map[string]struct{}{},
		defaultSort: "created_at",
	}
}

// SetAllowedSortColumns restringe as colunas aceitas em ordenação dinâmica.
func (r *BaseRepository[T]) SetAllowedSortColumns(cols []string) {
	r.sortColumns = make(map[string]struct{}, len(cols))
	for _, c := range cols {
		r.sortColumns[c] = struct{}{}
	}
}

// OrderColumn devolve a coluna pedida se permitida, senão a padrão.
func (r *BaseRepository[T]) OrderColumn(sortBy string) string {
	if _, ok := r.sortColumns[sortBy]; ok {
		return sortBy
	}
	return r.defaultSort
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
