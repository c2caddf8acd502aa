package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsportal/internal/common"
	"newsportal/internal/domain/model"
)

type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	FindByID(ctx context.Context, id string) (*model.News, error)
	ListAll(ctx context.Context) ([]model.News, error)
	ListByCategory(ctx context.Context, category string) ([]model.News, error)
	ListLatest(ctx context.Context, limit int) ([]model.News, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.News, error)
	ListRecentByAuthor(ctx context.Context, authorID string, limit int) ([]model.News, error)
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	CountByCategory(ctx context.Context, authorID string) ([]model.CategoryCount, error)
	CountByMonth(ctx context.Context, authorID string, since time.Time) ([]model.MonthCount, error)
}

type pgNewsRepository struct {
	db *sql.DB
}

func NewPgNewsRepository(db *sql.DB) NewsRepository {
	return &pgNewsRepository{db: db}
}

// selectNews joins the author so every read returns the public author
// subset without a second round trip.
const selectNews = `
        SELECT n.id, n.title, n.slug, n.description, n.image, n.category,
               n.author_id, u.name, u.email,
               n.created_at, n.updated_at
        FROM news n
        LEFT JOIN users u ON n.author_id = u.id`

func scanNews(scanner interface{ Scan(dest ...interface{}) error }) (*model.News, error) {
	n := &model.News{}
	var authorID, authorName, authorEmail sql.NullString
	err := scanner.Scan(
		&n.ID, &n.Title, &n.Slug, &n.Description, &n.Image, &n.Category,
		&authorID, &authorName, &authorEmail,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if authorID.Valid {
		n.AuthorID = authorID.String
		n.Author = &model.Author{ID: authorID.String, Name: authorName.String, Email: authorEmail.String}
	}
	return n, nil
}

func (r *pgNewsRepository) Create(ctx context.Context, news *model.News) error {
	query := `INSERT INTO news (id, title, slug, description, image, category, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		news.ID, news.Title, news.Slug, news.Description, news.Image, news.Category, news.AuthorID,
	).Scan(&news.CreatedAt, &news.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgNewsRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNewsRepository) FindByID(ctx context.Context, id string) (*model.News, error) {
	row := r.db.QueryRowContext(ctx, selectNews+` WHERE n.id = $1`, id)
	news, err := scanNews(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNewsRepository.FindByID: %w", err)
	}
	return news, nil
}

func (r *pgNewsRepository) ListAll(ctx context.Context) ([]model.News, error) {
	return r.list(ctx, selectNews+` ORDER BY n.created_at DESC`)
}

func (r *pgNewsRepository) ListByCategory(ctx context.Context, category string) ([]model.News, error) {
	return r.list(ctx, selectNews+` WHERE n.category = $1 ORDER BY n.created_at DESC`, category)
}

func (r *pgNewsRepository) ListLatest(ctx context.Context, limit int) ([]model.News, error) {
	return r.list(ctx, selectNews+` ORDER BY n.created_at DESC LIMIT $1`, limit)
}

func (r *pgNewsRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.News, error) {
	return r.list(ctx, selectNews+` WHERE n.author_id = $1 ORDER BY n.created_at DESC`, authorID)
}

func (r *pgNewsRepository) ListRecentByAuthor(ctx context.Context, authorID string, limit int) ([]model.News, error) {
	return r.list(ctx, selectNews+` WHERE n.author_id = $1 ORDER BY n.created_at DESC LIMIT $2`, authorID, limit)
}

func (r *pgNewsRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.News, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgNewsRepository.list query: %w", err)
	}
	defer rows.Close()

	items := []model.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("pgNewsRepository.list scan: %w", err)
		}
		items = append(items, *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNewsRepository.list rows.Err: %w", err)
	}
	return items, nil
}

func (r *pgNewsRepository) Update(ctx context.Context, news *model.News) error {
	query := `UPDATE news SET
	            title = $1, slug = $2, description = $3, image = $4, category = $5,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		news.Title, news.Slug, news.Description, news.Image, news.Category, news.ID,
	).Scan(&news.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgNewsRepository.Update: %w", err)
	}
	return nil
}

func (r *pgNewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNewsRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgNewsRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNewsRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgNewsRepository.CountAll: %w", err)
	}
	return count, nil
}

func (r *pgNewsRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgNewsRepository.CountByAuthor: %w", err)
	}
	return count, nil
}

func (r *pgNewsRepository) CountByCategory(ctx context.Context, authorID string) ([]model.CategoryCount, error) {
	query := `SELECT category, COUNT(*) AS count
	          FROM news WHERE author_id = $1
	          GROUP BY category
	          ORDER BY count DESC`
	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("pgNewsRepository.CountByCategory query: %w", err)
	}
	defer rows.Close()

	counts := []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("pgNewsRepository.CountByCategory scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNewsRepository.CountByCategory rows.Err: %w", err)
	}
	return counts, nil
}

// CountByMonth only reports months that have at least one article; gaps
// are not zero-filled.
func (r *pgNewsRepository) CountByMonth(ctx context.Context, authorID string, since time.Time) ([]model.MonthCount, error) {
	query := `SELECT EXTRACT(YEAR FROM created_at)::int AS year,
	                 EXTRACT(MONTH FROM created_at)::int AS month,
	                 COUNT(*) AS count
	          FROM news
	          WHERE author_id = $1 AND created_at >= $2
	          GROUP BY year, month
	          ORDER BY year ASC, month ASC`
	rows, err := r.db.QueryContext(ctx, query, authorID, since)
	if err != nil {
		return nil, fmt.Errorf("pgNewsRepository.CountByMonth query: %w", err)
	}
	defer rows.Close()

	counts := []model.MonthCount{}
	for rows.Next() {
		var m model.MonthCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, fmt.Errorf("pgNewsRepository.CountByMonth scan: %w", err)
		}
		counts = append(counts, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNewsRepository.CountByMonth rows.Err: %w", err)
	}
	return counts, nil
}
