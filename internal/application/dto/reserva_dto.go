package dto

// ReservaRequest corpo da reserva de estoque.
type ReservaRequest struct {
	Client   string `json:"client" validate:"required,min=4"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// ReservaResponse resposta da reserva: mensagem e estoque restante.
type ReservaResponse struct {
	Message string `json:"message"`
	Estoque int    `json:"estoque"`
}
