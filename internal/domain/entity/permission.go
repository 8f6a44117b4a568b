package entity

import "time"

// Capability ação que um papel pode exercer sobre um módulo.
type Capability string

// Capacidades conhecidas.
const (
	CapView   Capability = "view"
	CapEdit   Capability = "edit"
	CapDelete Capability = "delete"
	CapExport Capability = "export"
)

// IsValid informa se a capacidade pertence à enumeração fechada.
func (c Capability) IsValid() bool {
	switch c {
	case CapView, CapEdit, CapDelete, CapExport:
		return true
	}
	return false
}

// PermissionGrant capacidades de um papel sobre um módulo. É global ao papel
// (não depende de empresa); a ativação de módulo por empresa é um eixo
// independente, verificado à parte.
type PermissionGrant struct {
	ID        string
	Role      Role
	Module    Module
	CanView   bool
	CanEdit   bool
	CanDelete bool
	CanExport bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allows informa se a concessão cobre a capacidade pedida.
func (g *PermissionGrant) Allows(cap Capability) bool {
	switch cap {
	case CapView:
		return g.CanView
	case CapEdit:
		return g.CanEdit
	case CapDelete:
		return g.CanDelete
	case CapExport:
		return g.CanExport
	}
	return false
}

// FullGrant concessão completa, usada para sintetizar o acesso do superadmin.
func FullGrant(role Role, module Module) *PermissionGrant {
	return &PermissionGrant{
		Role:      role,
		Module:    module,
		CanView:   true,
		CanEdit:   true,
		CanDelete: true,
		CanExport: true,
	}
}
