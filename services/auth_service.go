package services

import (
	"context"
	"errors"

	"formulario.link/configs/configslog"
	"formulario.link/models"
	"formulario.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError são os erros tipados de autenticação.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "e-mail ou senha inválidos"
	ErrUserDisabled       AuthServiceError = "usuário desativado"
	ErrAuthInternal       AuthServiceError = "erro interno de autenticação"
)

// IAuthService autentica usuários do painel.
type IAuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthService implementa IAuthService sobre a tabela de usuários.
type AuthService struct {
	repo repositories.IUserRepository
}

// NewAuthService cria o serviço com o repositório padrão.
func NewAuthService() IAuthService {
	return &AuthService{repo: repositories.NewUserRepository()}
}

// Authenticate compara a senha com o hash bcrypt armazenado. Credencial
// inexistente e senha errada retornam o mesmo erro para não vazar quais
// e-mails têm conta.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		configslog.Log.Error("Authenticate: erro ao buscar usuário", zap.String("email", email), zap.Error(err))
		return nil, ErrAuthInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsEnabled {
		return nil, ErrUserDisabled
	}

	configslog.SLog.Infof("Login bem-sucedido: usuário %d (%s)", user.ID, user.Email)
	return user, nil
}

// GetUserByID busca um usuário pelo ID.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// HashPassword gera o hash bcrypt usado nos seeders e na criação de usuários.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var _ IAuthService = (*AuthService)(nil)
