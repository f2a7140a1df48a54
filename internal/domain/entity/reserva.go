package entity

import "time"

// Reserva é o registro da retirada de estoque feita por um cliente.
// A restrição é global: um cliente só pode ter uma reserva ativa em todo o
// catálogo (UNIQUE em client), não por medicamento.
type Reserva struct {
	ID            string // UUID atribuído pela aplicação
	Client        string // mínimo 4 caracteres
	MedicamentoID int64
	Quantity      int // mínimo 1
	CreatedAt     time.Time
}
