package repository

import (
	"context"

	"github.com/and161185/contact-keeper/internal/model"
)

// ContactRepository provides owner-scoped access to contact records.
// Every operation filters by the owning user's id; a row owned by a
// different user is indistinguishable from a missing row
// (errs.ErrNotFound).
type ContactRepository interface {
	// List returns a page of the owner's contacts in storage order.
	List(ctx context.Context, userID int64, limit, offset int) ([]model.Contact, error)

	// GetByID returns one contact, errs.ErrNotFound when absent.
	GetByID(ctx context.Context, userID, id int64) (*model.Contact, error)

	// GetByEmail returns the owner's contact with that email, errs.ErrNotFound when absent.
	GetByEmail(ctx context.Context, userID int64, email string) (*model.Contact, error)

	// Create inserts a contact bound to the owner and returns the persisted
	// row including its assigned id. A duplicate (owner, email) pair yields
	// errs.ErrAlreadyExists.
	Create(ctx context.Context, userID int64, in model.ContactInput) (*model.Contact, error)

	// Update replaces all mutable fields of the contact and returns the new
	// state, errs.ErrNotFound when the owner has no such contact.
	Update(ctx context.Context, userID, id int64, in model.ContactInput) (*model.Contact, error)

	// Delete removes the contact and returns its prior state,
	// errs.ErrNotFound when the owner has no such contact.
	Delete(ctx context.Context, userID, id int64) (*model.Contact, error)

	// SearchByFirstName returns the owner's contacts with exactly that first name.
	SearchByFirstName(ctx context.Context, userID int64, firstName string) ([]model.Contact, error)

	// SearchByLastName returns the owner's contacts with exactly that last name.
	SearchByLastName(ctx context.Context, userID int64, lastName string) ([]model.Contact, error)

	// UpcomingBirthdays returns the owner's contacts whose birthday falls in
	// the next 7 days according to the day-of-month window (see the
	// implementation for the exact policy).
	UpcomingBirthdays(ctx context.Context, userID int64) ([]model.Contact, error)
}
