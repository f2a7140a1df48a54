package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrReservaDuplicada  = errors.New("cliente já possui uma reserva ativa")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrConflict          = errors.New("conflito de concorrência, tente novamente")
)
