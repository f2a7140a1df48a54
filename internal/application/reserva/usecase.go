package reserva

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/farmaciabr/farmacia-api/internal/application/dto"
	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

// maxAttempts tentativas de uma reserva que perdeu a corrida na transação
// (falha de serialização) antes de devolver ErrConflict ao chamador.
const maxAttempts = 3

// UseCase fluxo de reserva de estoque: verifica reserva ativa do cliente,
// valida o estoque disponível e executa decremento + criação da reserva como
// uma unidade atômica dentro do TxRunner.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// Reserve reserva quantity unidades do medicamento para o cliente e retorna o
// estoque restante.
//
// Validações antes de qualquer mutação: client com 4+ caracteres e quantity >= 1
// (ErrInvalidInput). Dentro da transação: cliente com reserva ativa em qualquer
// medicamento => ErrReservaDuplicada; medicamento inexistente => ErrNotFound;
// estoque menor que quantity => ErrInsufficientStock, sem mutação.
//
// O decremento usa UPDATE condicional (stock = stock - q WHERE stock >= q):
// duas reservas concorrentes sobre o mesmo medicamento serializam no lock da
// linha e a segunda reavalia o estoque já decrementado, então o contador nunca
// fica negativo. Conflitos de serialização são retentados até maxAttempts e
// depois viram ErrConflict.
func (uc *UseCase) Reserve(ctx context.Context, medicamentoID int64, in dto.ReservaRequest) (int, error) {
	if utf8.RuneCountInString(in.Client) < 4 || in.Quantity < 1 {
		return 0, domain.ErrInvalidInput
	}

	var remaining int
	for attempt := 1; ; attempt++ {
		err := uc.txRunner.Run(ctx, func(
			medRepo repository.MedicamentoRepository,
			resRepo repository.ReservaRepository,
		) error {
			existing, err := resRepo.GetByClient(ctx, in.Client)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrReservaDuplicada
			}

			med, err := medRepo.GetByID(ctx, medicamentoID)
			if err != nil {
				return err
			}
			if med == nil {
				return domain.ErrNotFound
			}

			newStock, ok, err := medRepo.DecrementStock(ctx, medicamentoID, in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}

			r := &entity.Reserva{
				ID:            uuid.New().String(),
				Client:        in.Client,
				MedicamentoID: medicamentoID,
				Quantity:      in.Quantity,
				CreatedAt:     time.Now(),
			}
			if err := resRepo.Create(ctx, r); err != nil {
				return err
			}
			remaining = newStock
			return nil
		})
		if err == nil {
			return remaining, nil
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxAttempts {
			continue
		}
		return 0, err
	}
}
