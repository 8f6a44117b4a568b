package entity

import "time"

// Module área funcional contratável por empresa (multi-tenant).
type Module string

// Módulos disponíveis (devem coincidir com o CHECK da tabela company_modules).
// O quadro de produção pertence ao módulo vendas.
const (
	ModuleVendas        Module = "vendas"
	ModuleFinanceiro    Module = "financeiro"
	ModuleEstoque       Module = "estoque"
	ModuleClientes      Module = "clientes"
	ModuleRelatorios    Module = "relatorios"
	ModuleConfiguracoes Module = "configuracoes"
)

// AllModules lista fechada de módulos conhecidos.
func AllModules() []Module {
	return []Module{
		ModuleVendas, ModuleFinanceiro, ModuleEstoque,
		ModuleClientes, ModuleRelatorios, ModuleConfiguracoes,
	}
}

// IsValid informa se o módulo pertence à enumeração fechada.
func (m Module) IsValid() bool {
	for _, known := range AllModules() {
		if m == known {
			return true
		}
	}
	return false
}

// Company representa uma organização/tenant do sistema.
// A empresa raiz (IsRoot) é a própria operadora da plataforma e é tratada
// como tendo todos os módulos sempre ativos.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	IsRoot    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyModule ativação de um módulo em uma empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	Module      Module
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sem vencimento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
