package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/farmaciabr/farmacia-api/internal/application/dto"
	"github.com/farmaciabr/farmacia-api/internal/application/reserva"
	"github.com/farmaciabr/farmacia-api/internal/domain"
)

// ReservaHandler trata a reserva de estoque de um medicamento.
type ReservaHandler struct {
	uc *reserva.UseCase
}

// NewReservaHandler constrói o handler.
func NewReservaHandler(uc *reserva.UseCase) *ReservaHandler {
	return &ReservaHandler{uc: uc}
}

// Reserve godoc
// @Summary      Reservar estoque de um medicamento
// @Description  Decrementa o estoque e registra a reserva do cliente como uma
// @Description  unidade atômica. Estoque insuficiente não é erro: responde 200
// @Description  com "Estoque esgotado." e nada é alterado.
// @Tags         medicamentos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do medicamento"
// @Param        body  body  dto.ReservaRequest  true  "client, quantity"
// @Success      200   {object}  dto.ReservaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /medicamentos/{id}/reserve [post]
func (h *ReservaHandler) Reserve(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Não foi possível encontrar o medicamento."})
	}
	var in dto.ReservaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
	}
	remaining, err := h.uc.Reserve(c.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
		case errors.Is(err, domain.ErrReservaDuplicada):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Você já fez uma reserva."})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Não foi possível encontrar o medicamento."})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.JSON(dto.MessageResponse{Message: "Estoque esgotado."})
		default:
			// Inclui ErrConflict após esgotar as retentativas; não vaza detalhes.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro no servidor."})
		}
	}
	return c.JSON(dto.ReservaResponse{
		Message: fmt.Sprintf("Medicamento reservado por %s.", in.Client),
		Estoque: remaining,
	})
}
