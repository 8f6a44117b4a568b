package repository

import (
	"context"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// PermissionRepository porta de persistência das concessões papel x módulo.
type PermissionRepository interface {
	// GetGrant concessão do papel sobre o módulo; (nil, nil) quando ausente —
	// ausência é negação, não erro.
	GetGrant(ctx context.Context, role entity.Role, module entity.Module) (*entity.PermissionGrant, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.PermissionGrant, error)
	Upsert(ctx context.Context, grant *entity.PermissionGrant) error
}
