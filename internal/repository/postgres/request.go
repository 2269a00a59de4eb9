package postgres

import (
	"context"
	"database/sql"
	"time"

	"lendly/internal/apperrors"
	"lendly/internal/availability"
	"lendly/internal/domain"
	"lendly/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, owner_id, requester_id, item_id, price_cents, deposit_cents, start_date, end_date, status, created_on, updated_on`

func scanRequest(row interface{ Scan(...any) error }) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	var priceCents, depositCents int64
	var start, end time.Time
	var status string
	err := row.Scan(&req.ID, &req.OwnerID, &req.RequesterID, &req.ItemID, &priceCents, &depositCents, &start, &end, &status, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	req.Price = domain.Price(priceCents)
	req.Deposit = domain.Price(depositCents)
	req.TimeFrame = domain.DateRange{StartDate: domain.DateOf(start), EndDate: domain.DateOf(end)}
	req.Status = domain.RequestStatus(status)
	return req, nil
}

// Create inserts a new open request while holding the item's row lock,
// so the availability check and the insert cannot interleave with a
// competing booking for the same item.
func (r *requestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM items WHERE id = $1 FOR UPDATE`, req.ItemID).Scan(&version)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("item", req.ItemID)
	}
	if err != nil {
		return err
	}

	periods, err := loadPeriods(ctx, tx, req.ItemID)
	if err != nil {
		return err
	}
	if !availability.IsAvailable(periods, req.TimeFrame) {
		return apperrors.NewConflict()
	}

	query := `INSERT INTO requests (` + requestColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.ExecContext(ctx, query,
		req.ID, req.OwnerID, req.RequesterID, req.ItemID,
		req.Price.Cents(), req.Deposit.Cents(),
		req.TimeFrame.StartDate.Time(), req.TimeFrame.EndDate.Time(),
		req.Status, req.CreatedOn, req.UpdatedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("request", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Approve stamps the deposit, moves the request to accepted and commits
// its time frame as a rental period against the item, atomically. The
// availability check runs again under the item's row lock: two open
// requests for overlapping days both pass the check at creation, so
// approval is where the second one must lose.
func (r *requestRepository) Approve(ctx context.Context, req *domain.RentalRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM items WHERE id = $1 FOR UPDATE`, req.ItemID).Scan(&version)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("item", req.ItemID)
	}
	if err != nil {
		return err
	}

	periods, err := loadPeriods(ctx, tx, req.ItemID)
	if err != nil {
		return err
	}
	if !availability.IsAvailable(periods, req.TimeFrame) {
		return apperrors.NewConflict()
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE requests SET status = $1, deposit_cents = $2, updated_on = $3 WHERE id = $4 AND status = $5`,
		domain.StatusAccepted, req.Deposit.Cents(), req.UpdatedOn, req.ID, domain.StatusOpen)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound("request", req.ID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rental_periods (item_id, user_id, request_id, start_date, end_date, created_on) VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ItemID, req.RequesterID, req.ID,
		req.TimeFrame.StartDate.Time(), req.TimeFrame.EndDate.Time(), req.UpdatedOn)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET version = version + 1, updated_on = $1 WHERE id = $2`,
		req.UpdatedOn, req.ItemID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.RentalRequest, error) {
	query := `UPDATE requests SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4 RETURNING ` + requestColumns
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, to, time.Now().UTC(), id, from))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("request", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Activate is the handoff commit. The guarded status update and the
// item's rented-by stamp succeed or fail together; the original client
// performed these as two unrelated writes.
func (r *requestRepository) Activate(ctx context.Context, requestID string) (*domain.RentalRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE requests SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4 RETURNING ` + requestColumns
	req, err := scanRequest(tx.QueryRowContext(ctx, query, domain.StatusActive, time.Now().UTC(), requestID, domain.StatusAccepted))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("request", requestID)
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET currently_rented_by = $1, version = version + 1, updated_on = $2 WHERE id = $3`,
		req.RequesterID, req.UpdatedOn, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return req, nil
}

// Close is the return commit: active → closed and the rented-by flag
// cleared, atomically.
func (r *requestRepository) Close(ctx context.Context, requestID string) (*domain.RentalRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE requests SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4 RETURNING ` + requestColumns
	req, err := scanRequest(tx.QueryRowContext(ctx, query, domain.StatusClosed, time.Now().UTC(), requestID, domain.StatusActive))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("request", requestID)
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET currently_rented_by = NULL, version = version + 1, updated_on = $1 WHERE id = $2`,
		req.UpdatedOn, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID string, status domain.RequestStatus) ([]domain.RentalRequest, error) {
	return r.list(ctx, "owner_id", ownerID, status)
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string, status domain.RequestStatus) ([]domain.RentalRequest, error) {
	return r.list(ctx, "requester_id", requesterID, status)
}

func (r *requestRepository) list(ctx context.Context, column, id string, status domain.RequestStatus) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE ` + column + ` = $1`
	args := []any{id}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *requestRepository) ListOverdue(ctx context.Context, before domain.Date) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.StatusActive, before.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ReleaseLapsedPeriods frees days held by accepted requests whose
// window passed without a handoff. The requests themselves stay
// accepted; only the committed period goes away.
func (r *requestRepository) ReleaseLapsedPeriods(ctx context.Context, before domain.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM rental_periods p
		USING requests q
		WHERE p.request_id = q.id AND q.status = $1 AND q.end_date < $2`,
		domain.StatusAccepted, before.Time())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectRequests(rows *sql.Rows) ([]domain.RentalRequest, error) {
	var requests []domain.RentalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
