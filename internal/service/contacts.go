package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/contact-keeper/internal/errs"
	"github.com/and161185/contact-keeper/internal/model"
	"github.com/and161185/contact-keeper/internal/repository"
)

// defaultPageSize applies when a caller passes no limit.
const defaultPageSize = 10

// ContactService defines owner-scoped operations over contacts.
type ContactService interface {
	// List returns a page of the owner's contacts.
	List(ctx context.Context, userID int64, limit, offset int) ([]model.Contact, error)
	// Get returns a single contact by id.
	Get(ctx context.Context, userID, id int64) (*model.Contact, error)
	// GetByEmail returns the owner's contact with that email.
	GetByEmail(ctx context.Context, userID int64, email string) (*model.Contact, error)
	// Create checks email uniqueness within the owner's scope and inserts.
	Create(ctx context.Context, userID int64, in model.ContactInput) (*model.Contact, error)
	// Update replaces every mutable field of the contact.
	Update(ctx context.Context, userID, id int64, in model.ContactInput) (*model.Contact, error)
	// Delete removes a contact and returns its prior state.
	Delete(ctx context.Context, userID, id int64) (*model.Contact, error)
	// SearchFirstName returns contacts with exactly that first name.
	SearchFirstName(ctx context.Context, userID int64, name string) ([]model.Contact, error)
	// SearchLastName returns contacts with exactly that last name.
	SearchLastName(ctx context.Context, userID int64, name string) ([]model.Contact, error)
	// UpcomingBirthdays returns contacts with a birthday in the next 7 days.
	UpcomingBirthdays(ctx context.Context, userID int64) ([]model.Contact, error)
}

type ContactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService constructs ContactService.
func NewContactService(repo repository.ContactRepository) *ContactServiceImpl {
	return &ContactServiceImpl{repo: repo}
}

// List validates paging arguments and delegates to the repository.
func (s *ContactServiceImpl) List(ctx context.Context, userID int64, limit, offset int) ([]model.Contact, error) {
	if userID <= 0 {
		return nil, errors.New("validation: empty userID")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		return nil, fmt.Errorf("validation: negative offset (%d)", offset)
	}
	return s.repo.List(ctx, userID, limit, offset)
}

// Get fetches a single contact by id.
func (s *ContactServiceImpl) Get(ctx context.Context, userID, id int64) (*model.Contact, error) {
	if userID <= 0 || id <= 0 {
		return nil, errors.New("validation: empty userID/id")
	}
	return s.repo.GetByID(ctx, userID, id)
}

// GetByEmail fetches a single contact by email within the owner's scope.
func (s *ContactServiceImpl) GetByEmail(ctx context.Context, userID int64, email string) (*model.Contact, error) {
	if userID <= 0 || email == "" {
		return nil, errors.New("validation: empty userID/email")
	}
	return s.repo.GetByEmail(ctx, userID, email)
}

// Create inserts a new contact. The email pre-check gives a clean 409
// before touching the insert; the store's unique index settles
// concurrent creates that slip past it.
func (s *ContactServiceImpl) Create(ctx context.Context, userID int64, in model.ContactInput) (*model.Contact, error) {
	if userID <= 0 {
		return nil, errors.New("validation: empty userID")
	}
	if _, err := s.repo.GetByEmail(ctx, userID, in.Email); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, userID, in)
}

// Update replaces all five mutable fields with the payload's values.
func (s *ContactServiceImpl) Update(ctx context.Context, userID, id int64, in model.ContactInput) (*model.Contact, error) {
	if userID <= 0 || id <= 0 {
		return nil, errors.New("validation: empty userID/id")
	}
	return s.repo.Update(ctx, userID, id, in)
}

// Delete removes a contact and returns what was deleted.
func (s *ContactServiceImpl) Delete(ctx context.Context, userID, id int64) (*model.Contact, error) {
	if userID <= 0 || id <= 0 {
		return nil, errors.New("validation: empty userID/id")
	}
	return s.repo.Delete(ctx, userID, id)
}

// SearchFirstName finds contacts by exact first name.
func (s *ContactServiceImpl) SearchFirstName(ctx context.Context, userID int64, name string) ([]model.Contact, error) {
	if userID <= 0 || name == "" {
		return nil, errors.New("validation: empty userID/name")
	}
	return s.repo.SearchByFirstName(ctx, userID, name)
}

// SearchLastName finds contacts by exact last name.
func (s *ContactServiceImpl) SearchLastName(ctx context.Context, userID int64, name string) ([]model.Contact, error) {
	if userID <= 0 || name == "" {
		return nil, errors.New("validation: empty userID/name")
	}
	return s.repo.SearchByLastName(ctx, userID, name)
}

// UpcomingBirthdays delegates to the repository's 7-day window.
func (s *ContactServiceImpl) UpcomingBirthdays(ctx context.Context, userID int64) ([]model.Contact, error) {
	if userID <= 0 {
		return nil, errors.New("validation: empty userID")
	}
	return s.repo.UpcomingBirthdays(ctx, userID)
}
