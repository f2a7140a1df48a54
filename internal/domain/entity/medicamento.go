package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria classificação terapêutica do medicamento (enum fechado).
type Categoria string

const (
	CategoriaAnalgesico  Categoria = "Analgésico"
	CategoriaDiuretico   Categoria = "Diurético"
	CategoriaAntibiotico Categoria = "Antibiótico"
)

// Valid informa se a categoria é uma das três aceitas pelo catálogo.
func (c Categoria) Valid() bool {
	switch c {
	case CategoriaAnalgesico, CategoriaDiuretico, CategoriaAntibiotico:
		return true
	}
	return false
}

// Medicamento representa um item do catálogo da farmácia.
// Stock é decrementado apenas pelo fluxo de reserva; nunca fica negativo
// (CHECK no banco + UPDATE condicional).
type Medicamento struct {
	ID        int64
	Name      string // único no catálogo, mínimo 4 caracteres
	Price     decimal.Decimal
	Category  Categoria
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
