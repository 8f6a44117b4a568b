package dto

import (
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// RegisterRequest cadastro de usuário em uma empresa.
type RegisterRequest struct {
	CompanyID string      `json:"company_id"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
}

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuário na resposta HTTP (sem hash de senha).
type UserResponse struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
