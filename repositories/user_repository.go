package repositories

import (
	"context"
	"errors"

	"formulario.link/configs"
	"formulario.link/models"

	"gorm.io/gorm"
)

// IUserRepository define as operações de banco sobre usuários do painel.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserRepository implementa IUserRepository.
type UserRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.User]
}

// NewUserRepository cria o repositório com a conexão global.
func NewUserRepository() IUserRepository {
	return newUserRepository(configs.GetDB())
}

// NewUserRepositoryTx cria o repositório preso a uma transação.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return newUserRepository(tx)
}

func newUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, base: NewBaseRepository[models.User](db)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.base.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ IUserRepository = (*UserRepository)(nil)
