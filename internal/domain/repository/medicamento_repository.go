package repository

import (
	"context"

	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
)

// MedicamentoRepository define o porto de persistência do catálogo (DIP).
type MedicamentoRepository interface {
	Create(ctx context.Context, m *entity.Medicamento) error
	GetByID(ctx context.Context, id int64) (*entity.Medicamento, error)
	GetByName(ctx context.Context, name string) (*entity.Medicamento, error)
	List(ctx context.Context) ([]*entity.Medicamento, error)
	Update(ctx context.Context, m *entity.Medicamento) error
	Delete(ctx context.Context, id int64) error

	// DecrementStock aplica um decremento condicional: só tem efeito se o
	// estoque atual for suficiente. Retorna o estoque resultante e ok=false
	// quando a condição falhou (linha inexistente ou estoque menor que qty).
	DecrementStock(ctx context.Context, id int64, qty int) (newStock int, ok bool, err error)
}
