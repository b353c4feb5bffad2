package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
	validate *validator.Validate
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	sessions ports.SessionStore,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

// UserInput representa os campos reconhecidos dos formulários de cadastro e alteração.
// A ordem dos campos define a ordem das mensagens de validação.
type UserInput struct {
	ID                   int64  `form:"-"`
	Email                string `form:"email" validate:"required"`
	Name                 string `form:"nome" validate:"required"`
	Password             string `form:"senha" validate:"required"`
	PasswordConfirmation string `form:"senha_confirma" validate:"required,eqfield=Password"`
}

// Validate confere os campos obrigatórios e normaliza o email
func (s *UserService) Validate(input *UserInput) error {
	if input == nil {
		return errors.NewValidationError("usuario", errors.KeyUserMissing, nil)
	}

	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}
		first := fieldErrs[0]
		return errors.NewValidationError(first.Field(), validationKey(first), nil)
	}

	input.Email = valueobjects.NewEmail(input.Email).String()
	return nil
}

func validationKey(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return errors.KeyEmailRequired
	case "Name":
		return errors.KeyNameRequired
	case "Password":
		return errors.KeyPasswordRequired
	case "PasswordConfirmation":
		if fe.Tag() == "eqfield" {
			return errors.KeyPasswordMismatch
		}
		return errors.KeyConfirmationRequired
	default:
		return errors.KeyUserMissing
	}
}

// Create cadastra um novo usuário ativo
func (s *UserService) Create(ctx context.Context, input *UserInput) (*entities.User, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	s.logger.Info("creating user", "email", input.Email)

	password, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:     input.Name,
		Email:    valueobjects.NewEmail(input.Email),
		Password: password,
		Status:   entities.StatusActive,
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		// Validar se email já existe (inclusive inativos)
		exists, err := s.userRepo.ExistsByEmail(txCtx, input.Email)
		if err != nil {
			return err
		}
		if exists {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// Update grava nome, email e senha do usuário input.ID
func (s *UserService) Update(ctx context.Context, input *UserInput) (*entities.User, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	password, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var user *entities.User
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByID(txCtx, input.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return errors.ErrUserNotFound
		}

		if existing.Email.String() != input.Email {
			exists, err := s.userRepo.ExistsByEmail(txCtx, input.Email)
			if err != nil {
				return err
			}
			if exists {
				return errors.ErrEmailAlreadyExists
			}
		}

		existing.Name = input.Name
		existing.Email = valueobjects.NewEmail(input.Email)
		existing.Password = password
		user = existing

		return s.userRepo.Update(txCtx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

// SoftDelete desativa o usuário
func (s *UserService) SoftDelete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deactivating user", "user_id", id)
	return s.userRepo.SoftDelete(ctx, id)
}

// Reactivate volta um usuário desativado para ativo
func (s *UserService) Reactivate(ctx context.Context, id int64) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}
		if user.IsActive() {
			return nil
		}

		user.Restore()
		s.logger.Info("reactivating user", "user_id", id)
		return s.userRepo.Update(txCtx, user)
	})
}

// Get busca um usuário por ID
func (s *UserService) Get(ctx context.Context, id int64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// Login autentica um usuário ativo por email e senha
func (s *UserService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	normalized := valueobjects.NewEmail(email)
	if normalized.IsEmpty() || password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindActiveByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Matches(user.Password, password) {
		s.logger.Warn("login failed", "email", normalized.String())
		return nil, errors.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// List lista usuários ativos
func (s *UserService) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.userRepo.List(ctx, filters)
}

// CurrentFromSession retorna o usuário autenticado da requisição
func (s *UserService) CurrentFromSession(ctx context.Context) (*entities.User, bool) {
	return session.UserFrom(ctx)
}

// PersistToSession grava o usuário na sessão informada
func (s *UserService) PersistToSession(sessionID string, user *entities.User) {
	s.sessions.Save(sessionID, user)
}

// ClearSession encerra a sessão
func (s *UserService) ClearSession(sessionID string) {
	s.sessions.Delete(sessionID)
}

// ResumeSession devolve o contexto com o usuário da sessão, quando ela existir
func (s *UserService) ResumeSession(ctx context.Context, sessionID string) (context.Context, *entities.User, bool) {
	if sessionID == "" {
		return ctx, nil, false
	}

	user, ok := s.sessions.Get(sessionID)
	if !ok {
		return ctx, nil, false
	}
	return session.WithUser(ctx, user), user, true
}
