package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicamentoRequest corpo de criação/atualização (substituição completa).
type MedicamentoRequest struct {
	Name     string          `json:"name" validate:"required,min=4"`
	Price    decimal.Decimal `json:"price" validate:"min=0"`
	Category string          `json:"category" validate:"required"`
	Stock    int             `json:"stock" validate:"min=0"`
}

// MedicamentoResponse saída de um medicamento.
type MedicamentoResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MedicamentoEnvelope resposta com mensagem e dado (formato da API).
type MedicamentoEnvelope struct {
	Message string               `json:"message"`
	Data    *MedicamentoResponse `json:"data,omitempty"`
}

// MedicamentoListEnvelope resposta da listagem.
type MedicamentoListEnvelope struct {
	Message string                `json:"message"`
	Data    []MedicamentoResponse `json:"data"`
}
