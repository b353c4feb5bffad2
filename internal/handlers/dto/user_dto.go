package dto

import (
	"github.com/rafabene/ladino-web/internal/domain/entities"
)

// OwnerResponse representa o autor de uma análise na API
type OwnerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Email:  user.Email.String(),
		Name:   user.Name,
		Status: user.Status.String(),
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
