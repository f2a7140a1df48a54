package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse corpo de resposta apenas com mensagem.
type MessageResponse struct {
	Message string `json:"message"`
}
