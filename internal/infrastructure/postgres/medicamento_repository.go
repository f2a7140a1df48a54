package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmaciabr/farmacia-api/internal/domain"
	"github.com/farmaciabr/farmacia-api/internal/domain/entity"
	"github.com/farmaciabr/farmacia-api/internal/domain/repository"
)

var _ repository.MedicamentoRepository = (*MedicamentoRepo)(nil)

// MedicamentoRepo implementação do porto MedicamentoRepository sobre PostgreSQL
// (usável com pool ou tx).
type MedicamentoRepo struct {
	q Querier
}

// NewMedicamentoRepository constrói o adaptador de persistência do catálogo.
// Passar pool ou tx (Querier).
func NewMedicamentoRepository(q Querier) *MedicamentoRepo {
	return &MedicamentoRepo{q: q}
}

// Create persiste um novo medicamento. O ID é atribuído pelo banco (BIGSERIAL).
func (r *MedicamentoRepo) Create(ctx context.Context, m *entity.Medicamento) error {
	query := `
		INSERT INTO medicamentos (name, price, category, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.Name, m.Price, string(m.Category), m.Stock, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicamento: %w", err)
	}
	return nil
}

// GetByID obtém um medicamento por ID. Retorna nil se não existir.
func (r *MedicamentoRepo) GetByID(ctx context.Context, id int64) (*entity.Medicamento, error) {
	query := `
		SELECT id, name, price, category, stock, created_at, updated_at
		FROM medicamentos WHERE id = $1`
	m, err := r.scanOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get medicamento: %w", err)
	}
	return m, nil
}

// GetByName obtém um medicamento pelo nome (único). Retorna nil se não existir.
func (r *MedicamentoRepo) GetByName(ctx context.Context, name string) (*entity.Medicamento, error) {
	query := `
		SELECT id, name, price, category, stock, created_at, updated_at
		FROM medicamentos WHERE name = $1`
	m, err := r.scanOne(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get medicamento by name: %w", err)
	}
	return m, nil
}

func (r *MedicamentoRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Medicamento, error) {
	var m entity.Medicamento
	var category string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Name, &m.Price, &category, &m.Stock, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Category = entity.Categoria(category)
	return &m, nil
}

// List lista todo o catálogo ordenado por ID.
func (r *MedicamentoRepo) List(ctx context.Context) ([]*entity.Medicamento, error) {
	query := `
		SELECT id, name, price, category, stock, created_at, updated_at
		FROM medicamentos ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list medicamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicamento
	for rows.Next() {
		var m entity.Medicamento
		var category string
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &category, &m.Stock, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medicamento: %w", err)
		}
		m.Category = entity.Categoria(category)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update substitui todos os campos do medicamento (exceto ID e created_at).
func (r *MedicamentoRepo) Update(ctx context.Context, m *entity.Medicamento) error {
	query := `
		UPDATE medicamentos SET name = $2, price = $3, category = $4, stock = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Price, string(m.Category), m.Stock, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update medicamento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um medicamento por ID. ErrNotFound se o ID não existir.
func (r *MedicamentoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM medicamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicamento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock decremento condicional do estoque: a linha só é alterada se o
// estoque atual cobre qty. O lock de linha do UPDATE serializa reservas
// concorrentes do mesmo medicamento; com ok=false nada foi mutado.
func (r *MedicamentoRepo) DecrementStock(ctx context.Context, id int64, qty int) (int, bool, error) {
	query := `
		UPDATE medicamentos SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`
	var newStock int
	err := r.q.QueryRow(ctx, query, id, qty).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, true, nil
}
