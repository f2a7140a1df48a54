package reserva

import (
	"context"

	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que o decremento de estoque e a
// criação da reserva sejam um único commit (ou nenhum dos dois).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		medRepo repository.MedicamentoRepository,
		resRepo repository.ReservaRepository,
	) error) error
}
