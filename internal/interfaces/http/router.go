package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaciabr/farmacia-api/internal/application/catalogo"
	"github.com/farmaciabr/farmacia-api/internal/application/reserva"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	CatalogoUC *catalogo.UseCase
	ReservaUC  *reserva.UseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	medicamentos := app.Group("/medicamentos")

	medicamentoHandler := NewMedicamentoHandler(deps.CatalogoUC)
	medicamentos.Post("/", medicamentoHandler.Create)
	medicamentos.Get("/", medicamentoHandler.List)
	medicamentos.Get("/:id", medicamentoHandler.GetByID)
	medicamentos.Put("/:id", medicamentoHandler.Update)
	medicamentos.Delete("/:id", medicamentoHandler.Delete)

	reservaHandler := NewReservaHandler(deps.ReservaUC)
	medicamentos.Post("/:id/reserve", reservaHandler.Reserve)
}
