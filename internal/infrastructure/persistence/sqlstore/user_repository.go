package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	return nil
}

// FindByID busca por id sem filtrar situação
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var model UserModel

	if err := r.getDB(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// FindActiveByEmail busca um usuário ativo pelo email (já normalizado)
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	err := r.getDB(ctx).
		Where("email = ? AND cod_situacao = ?", email, int(entities.StatusActive)).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// ExistsByEmail considera também usuários inativos (o email continua reservado)
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return r.getDB(ctx).Model(&UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"nome":         user.Name,
			"email":        user.Email.String(),
			"senha":        user.Password,
			"cod_situacao": int(user.Status),
		}).Error
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.getDB(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		Update("cod_situacao", int(entities.StatusInactive)).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := r.getDB(ctx).Model(&UserModel{}).
		Where("cod_situacao = ?", int(entities.StatusActive)).
		Order("id ASC")

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	query = query.Limit(pageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		users = append(users, r.toEntity(model))
	}
	return users, nil
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email.String(),
		Password: user.Password,
		Status:   int(user.Status),
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	return &entities.User{
		ID:       model.ID,
		Name:     model.Name,
		Email:    valueobjects.NewEmail(model.Email),
		Password: model.Password,
		Status:   entities.Status(model.Status),
	}
}
