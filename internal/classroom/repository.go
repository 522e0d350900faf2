package classroom

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Classroom) error
	GetByID(ctx context.Context, id string) (*Classroom, error)
	List(ctx context.Context, filter Filter) ([]*Classroom, error)
	ListEquipment(ctx context.Context) ([]string, error)
	Update(ctx context.Context, c *Classroom) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Classroom) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("classrooms").
		Columns("name", "capacity", "equipment").
		Values(c.Name, c.Capacity, c.Equipment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create classroom query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Classroom, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "capacity", "equipment", "created_at", "updated_at").
		From("classrooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get classroom query failed: %w", err)
	}

	var c Classroom
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Capacity, &c.Equipment, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get classroom failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Classroom, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "name", "capacity", "equipment", "created_at", "updated_at").
		From("classrooms")

	if filter.Search != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity": filter.MinCapacity})
	}
	if len(filter.Equipment) > 0 {
		// Array containment gives the conjunctive "has every item" semantics.
		query = query.Where(squirrel.Expr("equipment @> ?", filter.Equipment))
	}

	query = query.OrderBy("name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list classrooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list classrooms failed: %w", err)
	}
	defer rows.Close()

	var classrooms []*Classroom
	for rows.Next() {
		var c Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Capacity, &c.Equipment, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan classroom failed: %w", err)
		}
		classrooms = append(classrooms, &c)
	}

	return classrooms, rows.Err()
}

func (r *pgxRepository) ListEquipment(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT unnest(equipment) FROM classrooms ORDER BY 1`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("scan equipment failed: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Classroom) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("classrooms").
		Set("name", c.Name).
		Set("capacity", c.Capacity).
		Set("equipment", c.Equipment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update classroom query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update classroom failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("classrooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete classroom query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete classroom failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
