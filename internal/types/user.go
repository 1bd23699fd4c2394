package types

import "github.com/union-match/union-match/internal/models"

type UserResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	IsAdmin bool            `json:"is_admin"`
}
