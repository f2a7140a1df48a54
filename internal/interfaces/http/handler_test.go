package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaciabr/farmacia-api/internal/application/catalogo"
	"github.com/farmaciabr/farmacia-api/internal/application/reserva"
	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
	apphttp "github.com/farmaciabr/farmacia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste: store em memória + app Fiber com o router real
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	seq      int64
	meds     map[int64]entity.Medicamento
	reservas map[string]entity.Reserva
}

func newMemStore() *memStore {
	return &memStore{
		meds:     make(map[int64]entity.Medicamento),
		reservas: make(map[string]entity.Reserva),
	}
}

// Run serializa a transação e restaura o estado se fn falhar (rollback).
func (s *memStore) Run(_ context.Context, fn func(
	medRepo repository.MedicamentoRepository,
	resRepo repository.ReservaRepository,
) error) error {
	s.mu.Lock()
	snapMeds := make(map[int64]entity.Medicamento, len(s.meds))
	for k, v := range s.meds {
		snapMeds[k] = v
	}
	snapRes := make(map[string]entity.Reserva, len(s.reservas))
	for k, v := range s.reservas {
		snapRes[k] = v
	}
	s.mu.Unlock()

	if err := fn(&medRepo{s: s}, &resRepo{s: s}); err != nil {
		s.mu.Lock()
		s.meds = snapMeds
		s.reservas = snapRes
		s.mu.Unlock()
		return err
	}
	return nil
}

type medRepo struct{ s *memStore }

func (r *medRepo) Create(_ context.Context, m *entity.Medicamento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.meds {
		if existing.Name == m.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.seq++
	m.ID = r.s.seq
	r.s.meds[m.ID] = *m
	return nil
}

func (r *medRepo) GetByID(_ context.Context, id int64) (*entity.Medicamento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meds[id]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *medRepo) GetByName(_ context.Context, name string) (*entity.Medicamento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.meds {
		if m.Name == name {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *medRepo) List(_ context.Context) ([]*entity.Medicamento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Medicamento
	for _, m := range r.s.meds {
		cp := m
		list = append(list, &cp)
	}
	return list, nil
}

func (r *medRepo) Update(_ context.Context, m *entity.Medicamento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meds[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.meds[m.ID] = *m
	return nil
}

func (r *medRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meds[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.meds, id)
	return nil
}

func (r *medRepo) DecrementStock(_ context.Context, id int64, qty int) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meds[id]
	if !ok || m.Stock < qty {
		return 0, false, nil
	}
	m.Stock -= qty
	r.s.meds[id] = m
	return m.Stock, true, nil
}

type resRepo struct{ s *memStore }

func (r *resRepo) GetByClient(_ context.Context, client string) (*entity.Reserva, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservas[client]
	if !ok {
		return nil, nil
	}
	cp := res
	return &cp, nil
}

func (r *resRepo) Create(_ context.Context, res *entity.Reserva) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reservas[res.Client]; ok {
		return domain.ErrReservaDuplicada
	}
	r.s.reservas[res.Client] = *res
	return nil
}

func buildTestApp() (*fiber.App, *memStore) {
	store := newMemStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogoUC: catalogo.NewUseCase(&medRepo{s: store}),
		ReservaUC:  reserva.NewUseCase(store),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func dipirona() map[string]any {
	return map[string]any{
		"name":     "Dipirona",
		"price":    12.50,
		"category": "Analgésico",
		"stock":    10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /medicamentos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMedicamento_Criado201(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/medicamentos", dipirona())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Medicamento adicionado a farmácia!", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Dipirona", data["name"])
	assert.Equal(t, float64(10), data["stock"])
}

func TestPostMedicamento_NomeDuplicado400(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/medicamentos", dipirona())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/medicamentos", dipirona())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Medicamento já existente no sistema.", decodeBody(t, resp)["message"])
}

func TestPostMedicamento_Invalido400(t *testing.T) {
	app, _ := buildTestApp()

	in := dipirona()
	in["name"] = "abc"
	resp := doJSON(t, app, http.MethodPost, "/medicamentos", in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Dados inválidos.", decodeBody(t, resp)["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /medicamentos e GET /medicamentos/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestGetMedicamentos_Vazio200(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/medicamentos", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Nenhum medicamento no sistema.", body["message"])
	assert.Empty(t, body["data"])
}

func TestGetMedicamentos_ComItens200(t *testing.T) {
	app, _ := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	resp := doJSON(t, app, http.MethodGet, "/medicamentos", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Todos os medicamentos da farmácia!", body["message"])
	assert.Len(t, body["data"], 1)
}

func TestGetMedicamentoPorID_NaoEncontrado404(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/medicamentos/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// :id não numérico equivale a inexistente
	resp = doJSON(t, app, http.MethodGet, "/medicamentos/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /medicamentos/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestPutMedicamento_Atualizado200(t *testing.T) {
	app, _ := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	in := map[string]any{
		"name":     "Dipirona 500mg",
		"price":    15.00,
		"category": "Analgésico",
		"stock":    20,
	}
	resp := doJSON(t, app, http.MethodPut, "/medicamentos/1", in)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Medicamento atualizado!", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Dipirona 500mg", data["name"])
	assert.Equal(t, float64(20), data["stock"])
}

func TestPutMedicamento_NaoEncontrado404(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPut, "/medicamentos/42", dipirona())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPutMedicamento_Invalido400(t *testing.T) {
	app, _ := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	in := dipirona()
	in["category"] = "Antiviral"
	resp := doJSON(t, app, http.MethodPut, "/medicamentos/1", in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// DELETE /medicamentos/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteMedicamento_204DepoisNaoEncontrado(t *testing.T) {
	app, _ := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	resp := doJSON(t, app, http.MethodDelete, "/medicamentos/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/medicamentos/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Medicamento não encontrado.", decodeBody(t, resp)["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /medicamentos/:id/reserve
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_FluxoDipirona(t *testing.T) {
	app, store := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	// reserva válida: estoque 10 - 4 = 6
	resp := doJSON(t, app, http.MethodPost, "/medicamentos/1/reserve", map[string]any{
		"client": "cliente1", "quantity": 4,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Medicamento reservado por cliente1.", body["message"])
	assert.Equal(t, float64(6), body["estoque"])

	// segunda reserva do mesmo cliente é rejeitada e o estoque não muda
	resp = doJSON(t, app, http.MethodPost, "/medicamentos/1/reserve", map[string]any{
		"client": "cliente1", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Você já fez uma reserva.", decodeBody(t, resp)["message"])

	store.mu.Lock()
	assert.Equal(t, 6, store.meds[1].Stock)
	store.mu.Unlock()
}

func TestReserve_EstoqueEsgotado200(t *testing.T) {
	app, store := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	resp := doJSON(t, app, http.MethodPost, "/medicamentos/1/reserve", map[string]any{
		"client": "cliente1", "quantity": 11,
	})
	// estoque insuficiente é resultado de negócio, não erro de servidor
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Estoque esgotado.", decodeBody(t, resp)["message"])

	store.mu.Lock()
	assert.Equal(t, 10, store.meds[1].Stock)
	store.mu.Unlock()
}

func TestReserve_MedicamentoInexistente400(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/medicamentos/42/reserve", map[string]any{
		"client": "cliente1", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Não foi possível encontrar o medicamento.", decodeBody(t, resp)["message"])

	resp = doJSON(t, app, http.MethodPost, "/medicamentos/abc/reserve", map[string]any{
		"client": "cliente1", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReserve_Invalido400(t *testing.T) {
	app, _ := buildTestApp()
	doJSON(t, app, http.MethodPost, "/medicamentos", dipirona()).Body.Close()

	resp := doJSON(t, app, http.MethodPost, "/medicamentos/1/reserve", map[string]any{
		"client": "abc", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Dados inválidos.", decodeBody(t, resp)["message"])

	resp = doJSON(t, app, http.MethodPost, "/medicamentos/1/reserve", map[string]any{
		"client": "cliente1", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
