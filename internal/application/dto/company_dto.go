package dto

import (
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// CreateCompanyRequest cadastro de empresa (rota de superadmin).
type CreateCompanyRequest struct {
	Name  string `json:"name"`
	CNPJ  string `json:"cnpj"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CompanyResponse empresa na resposta HTTP.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	IsRoot    bool      `json:"is_root"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromCompany converte a entidade para resposta.
func FromCompany(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		IsRoot:    c.IsRoot,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
