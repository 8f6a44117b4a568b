package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// PermissionUseCase administra as concessões papel x módulo.
// O superadmin não tem linhas: o acesso dele é sintetizado pelo resolver e
// não é editável.
type PermissionUseCase struct {
	repo repository.PermissionRepository
}

// NewPermissionUseCase constrói o caso de uso.
func NewPermissionUseCase(repo repository.PermissionRepository) *PermissionUseCase {
	return &PermissionUseCase{repo: repo}
}

// ListByRole concessões do papel sobre todos os módulos conhecidos; módulos
// sem linha aparecem com tudo negado (o padrão fail-closed do resolver).
func (uc *PermissionUseCase) ListByRole(ctx context.Context, role entity.Role) ([]dto.PermissionGrantDTO, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if role == entity.RoleSuperadmin {
		var out []dto.PermissionGrantDTO
		for _, m := range entity.AllModules() {
			out = append(out, dto.FromGrant(entity.FullGrant(role, m)))
		}
		return out, nil
	}

	stored := map[entity.Module]*entity.PermissionGrant{}
	rows, err := uc.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stored[row.Module] = row
	}

	var out []dto.PermissionGrantDTO
	for _, m := range entity.AllModules() {
		if row, ok := stored[m]; ok {
			out = append(out, dto.FromGrant(row))
			continue
		}
		out = append(out, dto.PermissionGrantDTO{Role: role, Module: m})
	}
	return out, nil
}

// Upsert grava a concessão de um papel sobre um módulo.
// Alterar o superadmin é rejeitado: o acesso dele é completo por definição.
func (uc *PermissionUseCase) Upsert(ctx context.Context, in dto.PermissionGrantDTO) error {
	if !in.Role.IsValid() || !in.Module.IsValid() {
		return domain.ErrInvalidInput
	}
	if in.Role == entity.RoleSuperadmin {
		return domain.ErrForbidden
	}
	now := time.Now()
	return uc.repo.Upsert(ctx, &entity.PermissionGrant{
		ID:        uuid.New().String(),
		Role:      in.Role,
		Module:    in.Module,
		CanView:   in.CanView,
		CanEdit:   in.CanEdit,
		CanDelete: in.CanDelete,
		CanExport: in.CanExport,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
