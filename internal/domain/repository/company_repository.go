package repository

import (
	"context"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// CompanyRepository porta de persistência de empresas e ativação de módulos.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// IsRoot informa se a empresa é o tenant raiz (operadora da plataforma).
	IsRoot(ctx context.Context, companyID string) (bool, error)
	// HasActiveModule informa se a empresa tem o módulo ativo e sem vencer.
	HasActiveModule(ctx context.Context, companyID string, module entity.Module) (bool, error)
	ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error)
	// SetModule ativa/desativa um módulo (upsert idempotente).
	SetModule(ctx context.Context, companyID string, module entity.Module, active bool) error
}
