package catalogo

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/farmaciabr/farmacia-api/internal/application/dto"
	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

// UseCase casos de uso CRUD do catálogo de medicamentos.
// Stock só é alterado aqui pela substituição completa do PUT; o decremento
// fica a cargo do fluxo de reserva.
type UseCase struct {
	repo repository.MedicamentoRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.MedicamentoRepository) *UseCase {
	return &UseCase{repo: repo}
}

// validate aplica as regras de forma do medicamento (iguais para criar e atualizar):
// nome com 4+ caracteres, preço não negativo com até dois decimais, categoria do
// enum e estoque não negativo.
func validate(in dto.MedicamentoRequest) error {
	if utf8.RuneCountInString(in.Name) < 4 {
		return domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || !in.Price.Equal(in.Price.Round(2)) {
		return domain.ErrInvalidInput
	}
	if !entity.Categoria(in.Category).Valid() {
		return domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create valida, rejeita nome duplicado e persiste um novo medicamento.
func (uc *UseCase) Create(ctx context.Context, in dto.MedicamentoRequest) (*dto.MedicamentoResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Medicamento{
		Name:      in.Name,
		Price:     in.Price,
		Category:  entity.Categoria(in.Category),
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toResponse(m), nil
}

// GetByID obtém um medicamento por ID. Retorna nil se não existir.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.MedicamentoResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toResponse(m), nil
}

// List lista todo o catálogo. Lista vazia é resultado válido.
func (uc *UseCase) List(ctx context.Context) ([]dto.MedicamentoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicamentoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toResponse(m))
	}
	return items, nil
}

// Update substitui todos os campos do medicamento, com a mesma validação da criação.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.MedicamentoRequest) (*dto.MedicamentoResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Name = in.Name
	m.Price = in.Price
	m.Category = entity.Categoria(in.Category)
	m.Stock = in.Stock
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toResponse(m), nil
}

// Delete remove um medicamento. ErrNotFound se o ID não existir.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toResponse(m *entity.Medicamento) *dto.MedicamentoResponse {
	if m == nil {
		return nil
	}
	return &dto.MedicamentoResponse{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Category:  string(m.Category),
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
