package postgres

import (
	"context"
	"database/sql"
	"time"

	"lendly/internal/apperrors"
	"lendly/internal/domain"
	"lendly/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, title, category, price_cents, description, image, owner_id, currently_rented_by, version, created_on, updated_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	it := &domain.Item{}
	var priceCents int64
	err := row.Scan(&it.ID, &it.Title, &it.Category, &priceCents, &it.Description, &it.Image, &it.OwnerID, &it.CurrentlyRentedBy, &it.Version, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, err
	}
	it.Price = domain.Price(priceCents)
	return it, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("item", id)
	}
	if err != nil {
		return nil, err
	}

	periods, err := loadPeriods(ctx, r.db, it.ID)
	if err != nil {
		return nil, err
	}
	it.PastRentals = periods
	return it, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_on DESC`
	return r.collect(ctx, query)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.collect(ctx, query, ownerID)
}

func (r *itemRepository) ListRentedBy(ctx context.Context, userID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE currently_rented_by = $1 ORDER BY created_on DESC`
	return r.collect(ctx, query, userID)
}

func (r *itemRepository) ListRentedOut(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND currently_rented_by IS NOT NULL ORDER BY created_on DESC`
	return r.collect(ctx, query, ownerID)
}

func (r *itemRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// queryer lets period loading run against either the pool or an open
// transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadPeriods(ctx context.Context, q queryer, itemID string) ([]domain.RentalPeriod, error) {
	query := `SELECT user_id, request_id, start_date, end_date, created_on FROM rental_periods WHERE item_id = $1 ORDER BY start_date`
	rows, err := q.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []domain.RentalPeriod
	for rows.Next() {
		var p domain.RentalPeriod
		var start, end time.Time
		if err := rows.Scan(&p.UserID, &p.RequestID, &start, &end, &p.CreatedOn); err != nil {
			return nil, err
		}
		p.StartDate = domain.DateOf(start)
		p.EndDate = domain.DateOf(end)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
