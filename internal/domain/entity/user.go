package entity

import "time"

// Role papel do usuário no sistema (enumeração fechada, global a todas as
// empresas; o superadmin é distinto e tem acesso total não editável).
type Role string

// Papéis válidos.
const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleOperador   Role = "operador"
	RoleVendedor   Role = "vendedor"
)

// IsValid informa se o papel pertence à enumeração fechada.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleOperador, RoleVendedor:
		return true
	}
	return false
}

// User representa um usuário do sistema (pertence a uma Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt, nunca em claro depois de persistir
	Name         string
	Role         Role
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
