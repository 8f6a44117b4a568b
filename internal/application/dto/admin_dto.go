package dto

import (
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// SetModuleRequest ativação/desativação de um módulo para uma empresa.
type SetModuleRequest struct {
	Module entity.Module `json:"module"`
	Active bool          `json:"active"`
}

// CompanyModuleResponse situação de um módulo em uma empresa.
type CompanyModuleResponse struct {
	Module      entity.Module `json:"module"`
	IsActive    bool          `json:"is_active"`
	ActivatedAt time.Time     `json:"activated_at"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
}

// PermissionGrantDTO concessão papel x módulo (leitura e escrita).
type PermissionGrantDTO struct {
	Role      entity.Role   `json:"role"`
	Module    entity.Module `json:"module"`
	CanView   bool          `json:"can_view"`
	CanEdit   bool          `json:"can_edit"`
	CanDelete bool          `json:"can_delete"`
	CanExport bool          `json:"can_export"`
}

// FromGrant converte a entidade para DTO.
func FromGrant(g *entity.PermissionGrant) PermissionGrantDTO {
	return PermissionGrantDTO{
		Role:      g.Role,
		Module:    g.Module,
		CanView:   g.CanView,
		CanEdit:   g.CanEdit,
		CanDelete: g.CanDelete,
		CanExport: g.CanExport,
	}
}
