// Package category stores published generations and their category
// enumerations in PostgreSQL.
package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/amenitygen/internal/adapter/postgres"
	"github.com/heartmarshall/amenitygen/internal/domain"
)

const (
	generationsTable = "generations"
	categoriesTable  = "amenity_categories"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides generation and category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateGeneration inserts g and returns it with CreatedAt filled in.
func (r *Repo) CreateGeneration(ctx context.Context, g domain.Generation) (domain.Generation, error) {
	query, args, err := psql.
		Insert(generationsTable).
		Columns("id", "source", "rule_count", "field_count").
		Values(g.ID, g.Source, g.RuleCount, g.FieldCount).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return domain.Generation{}, fmt.Errorf("build insert generation: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&g.CreatedAt); err != nil {
		return domain.Generation{}, postgres.MapError(err, "generation", g.ID)
	}
	return g, nil
}

// InsertCategories stores cats under generationID. The slice index becomes
// the stored position, matching the enumeration value.
func (r *Repo) InsertCategories(ctx context.Context, generationID uuid.UUID, cats []domain.Category) (int, error) {
	if len(cats) == 0 {
		return 0, nil
	}

	insert := psql.
		Insert(categoriesTable).
		Columns("generation_id", "position", "enum_name", "string_name", "name_source")
	for i, c := range cats {
		insert = insert.Values(generationID, i, c.EnumName, c.StringName, c.NameSource)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert categories: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "generation", generationID)
	}
	return int(tag.RowsAffected()), nil
}

// Latest returns the most recently published generation.
// Returns domain.ErrNotFound if nothing was published yet.
func (r *Repo) Latest(ctx context.Context) (domain.Generation, error) {
	query, args, err := psql.
		Select("id", "source", "rule_count", "field_count", "created_at").
		From(generationsTable).
		OrderBy("created_at DESC", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Generation{}, fmt.Errorf("build select latest: %w", err)
	}

	var g domain.Generation
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&g.ID, &g.Source, &g.RuleCount, &g.FieldCount, &g.CreatedAt)
	if err != nil {
		return domain.Generation{}, postgres.MapError(err, "generation", uuid.Nil)
	}
	return g, nil
}

// ListCategories returns the categories of a generation in enumeration order.
func (r *Repo) ListCategories(ctx context.Context, generationID uuid.UUID) ([]domain.Category, error) {
	query, args, err := psql.
		Select("enum_name", "string_name", "name_source").
		From(categoriesTable).
		Where(sq.Eq{"generation_id": generationID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select categories: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "generation", generationID)
	}

	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.EnumName, &c.StringName, &c.NameSource)
		return c, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "generation", generationID)
	}
	return cats, nil
}
