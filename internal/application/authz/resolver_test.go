package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ─────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	rootID  string
	active  map[string]bool // companyID|module -> ativo
	grants  map[string]*entity.PermissionGrant
	infraUp bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rootID:  "root-co",
		active:  map[string]bool{},
		grants:  map[string]*entity.PermissionGrant{},
		infraUp: true,
	}
}

func (f *fakeStore) IsRoot(_ context.Context, companyID string) (bool, error) {
	if !f.infraUp {
		return false, errors.New("db indisponível")
	}
	return companyID == f.rootID, nil
}

func (f *fakeStore) HasActiveModule(_ context.Context, companyID string, module entity.Module) (bool, error) {
	if !f.infraUp {
		return false, errors.New("db indisponível")
	}
	return f.active[companyID+"|"+string(module)], nil
}

func (f *fakeStore) GetGrant(_ context.Context, role entity.Role, module entity.Module) (*entity.PermissionGrant, error) {
	if !f.infraUp {
		return nil, errors.New("db indisponível")
	}
	return f.grants[string(role)+"|"+string(module)], nil
}

func (f *fakeStore) grant(role entity.Role, module entity.Module, view, edit bool) {
	f.grants[string(role)+"|"+string(module)] = &entity.PermissionGrant{
		Role: role, Module: module, CanView: view, CanEdit: edit,
	}
}

func (f *fakeStore) activate(companyID string, module entity.Module) {
	f.active[companyID+"|"+string(module)] = true
}

func resolverComLoja(f *fakeStore) *Resolver {
	return NewResolver(f, f, f)
}

func operador(companyID string) Actor {
	return Actor{UserID: "u-1", CompanyID: companyID, Role: entity.RoleOperador}
}

// ─────────────────────────────────────────────────────────────────────────────
// Testes
// ─────────────────────────────────────────────────────────────────────────────

func TestCanPerform_SuperadminNaRaizLiberaTudo(t *testing.T) {
	f := newFakeStore()
	r := resolverComLoja(f)
	super := Actor{UserID: "s-1", CompanyID: "root-co", Role: entity.RoleSuperadmin}

	// Sem nenhum módulo ativado nem concessão cadastrada.
	for _, m := range entity.AllModules() {
		for _, c := range []entity.Capability{entity.CapView, entity.CapEdit, entity.CapDelete, entity.CapExport} {
			ok, err := r.CanPerform(context.Background(), super, "root-co", m, c)
			require.NoError(t, err)
			assert.True(t, ok, "superadmin na raiz deve poder %s em %s", c, m)
		}
	}
}

func TestCanPerform_SuperadminEmEmpresaComumExigeModuloAtivo(t *testing.T) {
	f := newFakeStore()
	r := resolverComLoja(f)
	super := Actor{UserID: "s-1", CompanyID: "root-co", Role: entity.RoleSuperadmin}

	ok, err := r.CanPerform(context.Background(), super, "cmp-1", entity.ModuleVendas, entity.CapEdit)
	require.NoError(t, err)
	assert.False(t, ok, "módulo inativo nega até para superadmin fora da raiz")

	f.activate("cmp-1", entity.ModuleVendas)
	ok, err = r.CanPerform(context.Background(), super, "cmp-1", entity.ModuleVendas, entity.CapEdit)
	require.NoError(t, err)
	assert.True(t, ok, "com módulo ativo o superadmin tem concessão completa sintetizada")
}

func TestCanPerform_ConcessaoAusenteNega(t *testing.T) {
	f := newFakeStore()
	f.activate("cmp-1", entity.ModuleVendas)
	r := resolverComLoja(f)

	ok, err := r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.ModuleVendas, entity.CapView)
	require.NoError(t, err)
	assert.False(t, ok, "linha ausente é negação explícita, não erro")
}

func TestCanPerform_ViewNaoImplicaEdit(t *testing.T) {
	f := newFakeStore()
	f.activate("cmp-1", entity.ModuleVendas)
	f.grant(entity.RoleOperador, entity.ModuleVendas, true, false)
	r := resolverComLoja(f)

	ok, err := r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.ModuleVendas, entity.CapView)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.ModuleVendas, entity.CapEdit)
	require.NoError(t, err)
	assert.False(t, ok, "canView=true não concede edição")
}

func TestCanPerform_ModuloInativoNegaMesmoComConcessao(t *testing.T) {
	f := newFakeStore()
	f.grant(entity.RoleOperador, entity.ModuleVendas, true, true)
	r := resolverComLoja(f)

	ok, err := r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.ModuleVendas, entity.CapEdit)
	require.NoError(t, err)
	assert.False(t, ok, "concessão verdadeira sobre módulo inativo continua negando")
}

func TestCanPerform_IsolamentoDeTenant(t *testing.T) {
	f := newFakeStore()
	f.activate("cmp-1", entity.ModuleVendas)
	f.activate("cmp-2", entity.ModuleVendas)
	f.grant(entity.RoleOperador, entity.ModuleVendas, true, true)
	r := resolverComLoja(f)

	ok, err := r.CanPerform(context.Background(), operador("cmp-1"), "cmp-2", entity.ModuleVendas, entity.CapEdit)
	require.NoError(t, err)
	assert.False(t, ok, "papel comum não atua em empresa alheia")
}

func TestCanPerform_FalhaDeInfraPropagaErro(t *testing.T) {
	f := newFakeStore()
	f.infraUp = false
	r := resolverComLoja(f)

	_, err := r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.ModuleVendas, entity.CapView)
	assert.Error(t, err, "falha de DB é erro, não negação silenciosa")
}

func TestCanPerform_EntradaInvalidaNegaSemErro(t *testing.T) {
	f := newFakeStore()
	r := resolverComLoja(f)

	ok, err := r.CanPerform(context.Background(),
		Actor{UserID: "u", CompanyID: "cmp-1", Role: entity.Role("gerente")},
		"cmp-1", entity.ModuleVendas, entity.CapView)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanPerform(context.Background(), operador("cmp-1"), "cmp-1", entity.Module("rh"), entity.CapView)
	require.NoError(t, err)
	assert.False(t, ok)
}
