package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/and161185/contact-keeper/internal/errs"
	"github.com/and161185/contact-keeper/internal/model"
	"github.com/jackc/pgx/v5"
)

// contactCols is the column list shared by every contact query.
const contactCols = `id, user_id, first_name, last_name, email, phone, birthday, created_at`

// ContactRepo implements ContactRepository using PostgreSQL.
type ContactRepo struct {
	db  *DB
	now func() time.Time // hook for tests
}

// NewContactRepo constructs a contact repository.
func NewContactRepo(db *DB) *ContactRepo {
	return &ContactRepo{db: db, now: time.Now}
}

// List returns a page of the owner's contacts. No ORDER BY: callers get
// storage order, as documented for offset pagination.
func (r *ContactRepo) List(ctx context.Context, userID int64, limit, offset int) ([]model.Contact, error) {
	const q = `
SELECT ` + contactCols + `
FROM contacts WHERE user_id=$1
LIMIT $2 OFFSET $3`
	rows, err := r.db.Pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// GetByID returns one contact within the owner's scope.
func (r *ContactRepo) GetByID(ctx context.Context, userID, id int64) (*model.Contact, error) {
	const q = `
SELECT ` + contactCols + `
FROM contacts WHERE user_id=$1 AND id=$2`
	return scanContact(r.db.Pool.QueryRow(ctx, q, userID, id))
}

// GetByEmail returns the owner's contact with the given email.
func (r *ContactRepo) GetByEmail(ctx context.Context, userID int64, email string) (*model.Contact, error) {
	const q = `
SELECT ` + contactCols + `
FROM contacts WHERE user_id=$1 AND email=$2`
	return scanContact(r.db.Pool.QueryRow(ctx, q, userID, email))
}

// Create inserts a contact bound to the owner and returns the persisted row.
// The unique index on (user_id, email) makes concurrent creates with the
// same email lose here instead of producing duplicates.
func (r *ContactRepo) Create(ctx context.Context, userID int64, in model.ContactInput) (*model.Contact, error) {
	const q = `
INSERT INTO contacts (user_id, first_name, last_name, email, phone, birthday)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + contactCols
	c, err := scanContact(r.db.Pool.QueryRow(ctx, q,
		userID, in.FirstName, in.LastName, in.Email, in.Phone, in.Birthday))
	if isUniqueViolation(err) {
		return nil, errs.ErrAlreadyExists
	}
	return c, err
}

// Update replaces all five mutable fields. Partial updates are not
// supported; whatever the caller sends is what gets stored.
func (r *ContactRepo) Update(ctx context.Context, userID, id int64, in model.ContactInput) (*model.Contact, error) {
	const q = `
UPDATE contacts
SET first_name=$3, last_name=$4, email=$5, phone=$6, birthday=$7
WHERE user_id=$1 AND id=$2
RETURNING ` + contactCols
	c, err := scanContact(r.db.Pool.QueryRow(ctx, q,
		userID, id, in.FirstName, in.LastName, in.Email, in.Phone, in.Birthday))
	if isUniqueViolation(err) {
		return nil, errs.ErrAlreadyExists
	}
	return c, err
}

// Delete removes the contact and returns its prior state.
func (r *ContactRepo) Delete(ctx context.Context, userID, id int64) (*model.Contact, error) {
	const q = `
DELETE FROM contacts
WHERE user_id=$1 AND id=$2
RETURNING ` + contactCols
	return scanContact(r.db.Pool.QueryRow(ctx, q, userID, id))
}

// SearchByFirstName returns the owner's contacts whose first name matches
// exactly (no substring matching).
func (r *ContactRepo) SearchByFirstName(ctx context.Context, userID int64, firstName string) ([]model.Contact, error) {
	const q = `
SELECT ` + contactCols + `
FROM contacts WHERE user_id=$1 AND first_name=$2`
	rows, err := r.db.Pool.Query(ctx, q, userID, firstName)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// SearchByLastName returns the owner's contacts whose last name matches exactly.
func (r *ContactRepo) SearchByLastName(ctx context.Context, userID int64, lastName string) ([]model.Contact, error) {
	const q = `
SELECT ` + contactCols + `
FROM contacts WHERE user_id=$1 AND last_name=$2`
	rows, err := r.db.Pool.Query(ctx, q, userID, lastName)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// UpcomingBirthdays returns contacts whose birthday falls within the next
// 7 days, computed on day-of-month and current month only:
//
//	day(birthday)   BETWEEN day(today) AND day(today+7d)
//	month(birthday) = month(today)
//
// This window does not follow the calendar across a month boundary: when
// today+7d lands in the next month the upper bound wraps to a small day
// number and cross-month birthdays are missed. Kept as-is for
// compatibility with existing clients (see DESIGN.md).
func (r *ContactRepo) UpcomingBirthdays(ctx context.Context, userID int64) ([]model.Contact, error) {
	today := r.now()
	nextWeek := today.AddDate(0, 0, 7)

	const q = `
SELECT ` + contactCols + `
FROM contacts
WHERE user_id=$1
  AND EXTRACT(DAY FROM birthday) >= $2
  AND EXTRACT(DAY FROM birthday) <= $3
  AND EXTRACT(MONTH FROM birthday) = $4`
	rows, err := r.db.Pool.Query(ctx, q, userID, today.Day(), nextWeek.Day(), int(today.Month()))
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// scanContact scans a single-row query result, mapping no-rows to ErrNotFound.
func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// collectContacts drains a rows iterator. An empty result is a valid
// empty slice, not an error.
func collectContacts(rows pgx.Rows) ([]model.Contact, error) {
	defer rows.Close()

	out := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
