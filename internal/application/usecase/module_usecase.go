package usecase

import (
	"context"
	"fmt"

	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// ModuleService é o único ponto da aplicação que conhece a lógica de
// ativação de módulos por empresa.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService constrói o serviço de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa se a empresa tem o módulo ativo e sem vencer.
// A empresa raiz tem todos os módulos conhecidos sempre ativos, independente
// das linhas gravadas — a operadora nunca pode ficar trancada para fora do
// próprio console.
// Devolve false (sem erro) quando o módulo não está contratado; erro só em
// falha de infraestrutura.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID string, module entity.Module) (bool, error) {
	if companyID == "" || !module.IsValid() {
		return false, fmt.Errorf("module: companyID e module são obrigatórios")
	}
	root, err := s.companyRepo.IsRoot(ctx, companyID)
	if err != nil {
		return false, err
	}
	if root {
		return true, nil
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, module)
}

// ListModules situação de todos os módulos conhecidos para a empresa,
// incluindo os nunca contratados (inativos).
func (s *ModuleService) ListModules(ctx context.Context, companyID string) ([]dto.CompanyModuleResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	stored := map[entity.Module]*entity.CompanyModule{}
	rows, err := s.companyRepo.ListModules(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stored[row.Module] = row
	}

	var out []dto.CompanyModuleResponse
	for _, m := range entity.AllModules() {
		resp := dto.CompanyModuleResponse{Module: m, IsActive: company.IsRoot}
		if row, ok := stored[m]; ok && !company.IsRoot {
			resp.IsActive = row.IsActive
			resp.ActivatedAt = row.ActivatedAt
			resp.ExpiresAt = row.ExpiresAt
		}
		out = append(out, resp)
	}
	return out, nil
}

// SetActive ativa/desativa um módulo para a empresa (idempotente).
// A autorização (superadmin) é imposta pelo chamador via resolver; a empresa
// raiz não aceita desativação — seus módulos são sempre ativos.
func (s *ModuleService) SetActive(ctx context.Context, companyID string, module entity.Module, active bool) error {
	if !module.IsValid() {
		return domain.ErrInvalidInput
	}
	root, err := s.companyRepo.IsRoot(ctx, companyID)
	if err != nil {
		return err
	}
	if root && !active {
		return domain.ErrConflict
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return s.companyRepo.SetModule(ctx, companyID, module, active)
}
