package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/materials-service/internal/domain"
)

// MaterialSort selects the ordering of search results.
type MaterialSort string

const (
	SortByName  MaterialSort = "name"
	SortByPrice MaterialSort = "price"
)

// MaterialRepository encapsulates catalog persistence.
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	GetByID(ctx context.Context, id string) (*domain.Material, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Material, error)
	SearchByName(ctx context.Context, query string, sortBy MaterialSort) ([]domain.Material, error)
}

type materialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository instantiates the repository.
func NewMaterialRepository(pool *pgxpool.Pool) MaterialRepository {
	return &materialRepository{pool: pool}
}

func (r *materialRepository) Create(ctx context.Context, material *domain.Material) error {
	if err := material.Validate(); err != nil {
		return err
	}

	const query = `
        INSERT INTO materials (name, description, category, image_url, manufacturer, price, sustainability, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		material.Name,
		material.Description,
		material.Category,
		material.ImageURL,
		material.Manufacturer,
		material.Price,
		material.Sustainability,
		material.CreatedBy,
	).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
}

const materialColumns = `id, name, description, category, image_url, manufacturer, price, sustainability, created_by, created_at, updated_at`

func (r *materialRepository) GetByID(ctx context.Context, id string) (*domain.Material, error) {
	var material domain.Material
	if err := r.pool.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id=$1`, id).Scan(
		&material.ID,
		&material.Name,
		&material.Description,
		&material.Category,
		&material.ImageURL,
		&material.Manufacturer,
		&material.Price,
		&material.Sustainability,
		&material.CreatedBy,
		&material.CreatedAt,
		&material.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Material, error) {
	if len(ids) == 0 {
		return []domain.Material{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaterials(rows)
}

func (r *materialRepository) SearchByName(ctx context.Context, query string, sortBy MaterialSort) ([]domain.Material, error) {
	orderBy := "created_at"
	switch sortBy {
	case SortByName:
		orderBy = "name"
	case SortByPrice:
		orderBy = "price"
	}

	sql := `SELECT ` + materialColumns + ` FROM materials WHERE name ILIKE '%' || $1 || '%' ORDER BY ` + orderBy + ` ASC`
	rows, err := r.pool.Query(ctx, sql, escapeLike(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaterials(rows)
}

type materialRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMaterials(rows materialRows) ([]domain.Material, error) {
	materials := []domain.Material{}
	for rows.Next() {
		var material domain.Material
		if err := rows.Scan(
			&material.ID,
			&material.Name,
			&material.Description,
			&material.Category,
			&material.ImageURL,
			&material.Manufacturer,
			&material.Price,
			&material.Sustainability,
			&material.CreatedBy,
			&material.CreatedAt,
			&material.UpdatedAt,
		); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, rows.Err()
}

// escapeLike neutralizes ILIKE metacharacters so the user query is a plain
// substring match.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
