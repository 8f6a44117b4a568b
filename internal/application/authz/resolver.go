// Package authz resolve autorização por (usuário, empresa, módulo, capacidade).
// A resolução é um lookup puro e fail-closed: concessão ausente nega, módulo
// inativo nega mesmo com concessão verdadeira. Tenant, papel e módulo chegam
// como parâmetros explícitos — nada de estado ambiente.
package authz

import (
	"context"
	"fmt"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// Actor identidade de quem age, extraída do token pela camada HTTP.
type Actor struct {
	UserID    string
	CompanyID string
	Role      entity.Role
}

// rootChecker e os demais contratos mínimos ficam do lado do consumidor;
// são implementados pelos repositórios postgres e por fakes nos testes.
type rootChecker interface {
	IsRoot(ctx context.Context, companyID string) (bool, error)
}

type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID string, module entity.Module) (bool, error)
}

type grantReader interface {
	GetGrant(ctx context.Context, role entity.Role, module entity.Module) (*entity.PermissionGrant, error)
}

// Resolver decide, para cada transição e cada tela, se o usuário e a empresa
// podem ver ou executar a operação.
type Resolver struct {
	companies rootChecker
	modules   moduleChecker
	grants    grantReader
}

// NewResolver constrói o resolvedor com as portas de consulta.
func NewResolver(companies rootChecker, modules moduleChecker, grants grantReader) *Resolver {
	return &Resolver{companies: companies, modules: modules, grants: grants}
}

// CanPerform informa se o ator pode exercer a capacidade sobre o módulo no
// contexto da empresa avaliada.
//
// Regras, na ordem:
//  1. superadmin na empresa raiz: tudo liberado (a raiz tem ativação
//     implícita de todos os módulos).
//  2. papéis comuns só atuam na própria empresa (isolamento de tenant);
//     o superadmin pode navegar em qualquer empresa.
//  3. o módulo precisa estar ativo na empresa avaliada (raiz sempre ativa);
//     concessão verdadeira sobre módulo inativo continua negando.
//  4. a concessão vem da tabela papel x módulo; ausente = nega tudo.
//     A do superadmin é sintetizada completa, nunca lida do armazenamento.
//
// Devolve erro apenas em falha de infraestrutura; negação é (false, nil).
func (r *Resolver) CanPerform(ctx context.Context, actor Actor, companyID string,
	module entity.Module, cap entity.Capability) (bool, error) {

	if !actor.Role.IsValid() || !module.IsValid() || !cap.IsValid() || companyID == "" {
		return false, nil
	}

	root, err := r.companies.IsRoot(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("authz: consultar empresa raiz: %w", err)
	}
	if actor.Role == entity.RoleSuperadmin && root {
		return true, nil
	}

	if actor.Role != entity.RoleSuperadmin && actor.CompanyID != companyID {
		return false, nil
	}

	if !root {
		active, err := r.modules.HasActiveModule(ctx, companyID, module)
		if err != nil {
			return false, fmt.Errorf("authz: consultar módulo %s: %w", module, err)
		}
		if !active {
			return false, nil
		}
	}

	if actor.Role == entity.RoleSuperadmin {
		return true, nil
	}

	grant, err := r.grants.GetGrant(ctx, actor.Role, module)
	if err != nil {
		return false, fmt.Errorf("authz: consultar concessão %s/%s: %w", actor.Role, module, err)
	}
	if grant == nil {
		return false, nil
	}
	return grant.Allows(cap), nil
}
