package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmaciabr/farmacia-api/internal/application/reserva"
	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

var _ reserva.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback. Falhas de serialização (40001/40P01) em fn ou no commit
// viram domain.ErrConflict para o caso de uso decidir a retentativa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	medRepo repository.MedicamentoRepository,
	resRepo repository.ReservaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	medRepo := NewMedicamentoRepository(tx)
	resRepo := NewReservaRepository(tx)

	if err := fn(medRepo, resRepo); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
