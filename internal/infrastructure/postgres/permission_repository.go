package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementação do porto PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// GetGrant concessão do papel sobre o módulo. (nil, nil) quando ausente:
// ausência é negação, decidida pelo resolvedor, não erro de banco.
func (r *PermissionRepo) GetGrant(ctx context.Context, role entity.Role, module entity.Module) (*entity.PermissionGrant, error) {
	query := `
		SELECT id, role, module_name, can_view, can_edit, can_delete, can_export, created_at, updated_at
		FROM role_permissions WHERE role = $1 AND module_name = $2`
	var g entity.PermissionGrant
	err := r.q.QueryRow(ctx, query, role, module).Scan(
		&g.ID, &g.Role, &g.Module, &g.CanView, &g.CanEdit, &g.CanDelete, &g.CanExport, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}
	return &g, nil
}

// ListByRole concessões persistidas do papel (módulos sem linha ficam de fora;
// o caso de uso completa com negação total).
func (r *PermissionRepo) ListByRole(ctx context.Context, role entity.Role) ([]*entity.PermissionGrant, error) {
	query := `
		SELECT id, role, module_name, can_view, can_edit, can_delete, can_export, created_at, updated_at
		FROM role_permissions WHERE role = $1 ORDER BY module_name ASC`
	rows, err := r.q.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	var grants []*entity.PermissionGrant
	for rows.Next() {
		var g entity.PermissionGrant
		if err := rows.Scan(&g.ID, &g.Role, &g.Module, &g.CanView, &g.CanEdit, &g.CanDelete, &g.CanExport, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, &g)
	}
	return grants, rows.Err()
}

// Upsert grava a concessão do papel sobre o módulo (idempotente por (role, module_name)).
func (r *PermissionRepo) Upsert(ctx context.Context, grant *entity.PermissionGrant) error {
	query := `
		INSERT INTO role_permissions (id, role, module_name, can_view, can_edit, can_delete, can_export, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (role, module_name)
		DO UPDATE SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit,
			can_delete = EXCLUDED.can_delete, can_export = EXCLUDED.can_export, updated_at = now()`
	id := grant.ID
	if id == "" {
		id = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, query, id, grant.Role, grant.Module,
		grant.CanView, grant.CanEdit, grant.CanDelete, grant.CanExport)
	if err != nil {
		return fmt.Errorf("upsert grant: %w", err)
	}
	return nil
}
