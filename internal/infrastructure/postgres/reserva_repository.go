package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

// ReservaRepo implementação de ReservaRepository sobre PostgreSQL (usável com pool ou tx).
type ReservaRepo struct {
	q Querier
}

// NewReservaRepository constrói o adaptador de reservas. Passar pool ou tx (Querier).
func NewReservaRepository(q Querier) *ReservaRepo {
	return &ReservaRepo{q: q}
}

// GetByClient retorna a reserva ativa do cliente (restrição global) ou nil.
func (r *ReservaRepo) GetByClient(ctx context.Context, client string) (*entity.Reserva, error) {
	query := `
		SELECT id, client, medicamento_id, quantity, created_at
		FROM reservas WHERE client = $1`
	var res entity.Reserva
	err := r.q.QueryRow(ctx, query, client).Scan(
		&res.ID, &res.Client, &res.MedicamentoID, &res.Quantity, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserva by client: %w", err)
	}
	return &res, nil
}

// Create persiste uma reserva. A UNIQUE em client transforma a corrida de dois
// pedidos do mesmo cliente em ErrReservaDuplicada.
func (r *ReservaRepo) Create(ctx context.Context, res *entity.Reserva) error {
	query := `
		INSERT INTO reservas (id, client, medicamento_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.Client, res.MedicamentoID, res.Quantity, res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReservaDuplicada
		}
		return fmt.Errorf("insert reserva: %w", err)
	}
	return nil
}
