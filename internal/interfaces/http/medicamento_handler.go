package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/farmaciabr/farmacia-api/internal/application/catalogo"
	"github.com/farmaciabr/farmacia-api/internal/application/dto"
	"github.com/farmaciabr/farmacia-api/internal/domain"
)

// MedicamentoHandler trata as requisições HTTP do catálogo de medicamentos.
type MedicamentoHandler struct {
	uc *catalogo.UseCase
}

// NewMedicamentoHandler constrói o handler.
func NewMedicamentoHandler(uc *catalogo.UseCase) *MedicamentoHandler {
	return &MedicamentoHandler{uc: uc}
}

// parseID converte o segmento :id. Valor não numérico equivale a ID inexistente.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary      Adicionar medicamento
// @Tags         medicamentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MedicamentoRequest  true  "name, price, category, stock"
// @Success      201   {object}  dto.MedicamentoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /medicamentos [post]
func (h *MedicamentoHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Medicamento já existente no sistema."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro, tente novamente mais tarde."})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MedicamentoEnvelope{
		Message: "Medicamento adicionado a farmácia!",
		Data:    out,
	})
}

// List godoc
// @Summary      Listar medicamentos
// @Tags         medicamentos
// @Produce      json
// @Success      200  {object}  dto.MedicamentoListEnvelope
// @Router       /medicamentos [get]
func (h *MedicamentoHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro no servidor."})
	}
	msg := "Todos os medicamentos da farmácia!"
	if len(items) == 0 {
		msg = "Nenhum medicamento no sistema."
	}
	return c.JSON(dto.MedicamentoListEnvelope{Message: msg, Data: items})
}

// GetByID godoc
// @Summary      Obter medicamento por ID
// @Tags         medicamentos
// @Produce      json
// @Param        id   path  int  true  "ID do medicamento"
// @Success      200  {object}  dto.MedicamentoEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /medicamentos/{id} [get]
func (h *MedicamentoHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado no sistema."})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro no servidor."})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado no sistema."})
	}
	return c.JSON(dto.MedicamentoEnvelope{Message: "Medicamento encontrado!", Data: out})
}

// Update godoc
// @Summary      Atualizar medicamento (substituição completa)
// @Tags         medicamentos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do medicamento"
// @Param        body  body  dto.MedicamentoRequest  true  "name, price, category, stock"
// @Success      200   {object}  dto.MedicamentoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /medicamentos/{id} [put]
func (h *MedicamentoHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado no sistema."})
	}
	var in dto.MedicamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Dados inválidos."})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado no sistema."})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Medicamento já existente no sistema."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro no servidor."})
	}
	return c.JSON(dto.MedicamentoEnvelope{Message: "Medicamento atualizado!", Data: out})
}

// Delete godoc
// @Summary      Remover medicamento
// @Tags         medicamentos
// @Param        id  path  int  true  "ID do medicamento"
// @Success      204  "sem conteúdo"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /medicamentos/{id} [delete]
func (h *MedicamentoHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado."})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Medicamento não encontrado."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Erro no servidor."})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
