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

// CompanyUseCase regras de negócio para empresas (rotas de superadmin).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso com a porta de persistência.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create cria uma nova empresa (nunca raiz: a raiz é semeada na instalação).
// Devolve domain.ErrDuplicate se o CNPJ já existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		IsRoot:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// GetByID obtém uma empresa por ID. (nil, nil) se não existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// List lista empresas com paginação.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCompany(c))
	}
	return items, nil
}
