package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/pkg/database"
)

// TitleFilter narrows the title listing. Zero values mean "not filtered".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)
	Update(ctx context.Context, title *entity.Title) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log,
	}
}

func (tr *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	query := `
		INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tr.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.CreatedAt,
		title.UpdatedAt,
	)

	if err != nil {
		tr.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return fmt.Errorf("create title %s: %w", title.Name, err)
	}

	return nil
}

func (tr *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := `
		SELECT id, name, year, description, category_id, created_at, updated_at
		FROM titles
		WHERE id = $1
	`

	var title entity.Title
	err := tr.db.QueryRow(ctx, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		tr.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("find title by ID %s: %w", id.String(), err)
	}

	return &title, nil
}

// filterClause builds the WHERE fragment shared by FindAll and CountAll.
func filterClause(filter TitleFilter, args *[]any) string {
	var clauses []string

	add := func(value any) string {
		*args = append(*args, value)
		return "$" + strconv.Itoa(len(*args))
	}

	if filter.CategorySlug != "" {
		clauses = append(clauses,
			`t.category_id IN (SELECT id FROM categories WHERE slug = `+add(filter.CategorySlug)+`)`)
	}
	if filter.GenreSlug != "" {
		clauses = append(clauses,
			`t.id IN (SELECT tg.title_id FROM title_genres tg
				JOIN genres g ON g.id = tg.genre_id WHERE g.slug = `+add(filter.GenreSlug)+`)`)
	}
	if filter.Name != "" {
		clauses = append(clauses, `t.name ILIKE '%' || `+add(filter.Name)+` || '%'`)
	}
	if filter.Year != nil {
		clauses = append(clauses, `t.year = `+add(*filter.Year))
	}

	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func (tr *titleRepository) FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var args []any
	query := `
		SELECT t.id, t.name, t.year, t.description, t.category_id, t.created_at, t.updated_at
		FROM titles t` + filterClause(filter, &args)

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY t.name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := tr.db.Query(ctx, query, args...)
	if err != nil {
		tr.log.Error("Failed to get all titles",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		var title entity.Title
		err := rows.Scan(
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.CategoryID,
			&title.CreatedAt,
			&title.UpdatedAt,
		)
		if err != nil {
			tr.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, &title)
	}

	if err := rows.Err(); err != nil {
		tr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate titles rows: %w", err)
	}

	return titles, nil
}

func (tr *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	var args []any
	query := `SELECT COUNT(*) FROM titles t` + filterClause(filter, &args)

	var count int64
	if err := tr.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		tr.log.Error("Database error counting titles", zap.Error(err))
		return 0, fmt.Errorf("count all titles: %w", err)
	}

	return count, nil
}

func (tr *titleRepository) Update(ctx context.Context, title *entity.Title) error {
	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := tr.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.UpdatedAt,
	)

	if err != nil {
		tr.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return fmt.Errorf("update title %s: %w", title.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", title.ID.String())
	}

	return nil
}

func (tr *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM titles WHERE id = $1`

	result, err := tr.db.Exec(ctx, query, id)
	if err != nil {
		tr.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete title %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", id.String())
	}

	tr.log.Info("Title deleted", zap.String("id", id.String()))
	return nil
}
