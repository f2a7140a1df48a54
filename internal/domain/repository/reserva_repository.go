package repository

import (
	"context"

	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
)

// ReservaRepository define o porto de persistência das reservas.
type ReservaRepository interface {
	// GetByClient retorna a reserva ativa do cliente ou nil se não existir.
	GetByClient(ctx context.Context, client string) (*entity.Reserva, error)
	Create(ctx context.Context, r *entity.Reserva) error
}
