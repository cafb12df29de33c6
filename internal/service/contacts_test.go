package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/contact-keeper/internal/errs"
	"github.com/and161185/contact-keeper/internal/model"
	"github.com/and161185/contact-keeper/internal/repository"
)

type fakeContactRepo struct {
	listInUser           int64
	listInLimit          int
	listInOffset         int
	listOut              []model.Contact
	listErr              error

	getInUser, getInID   int64
	getOut               *model.Contact
	getErr               error

	byEmailInUser        int64
	byEmailIn            string
	byEmailOut           *model.Contact
	byEmailErr           error

	createInUser         int64
	createIn             model.ContactInput
	createOut            *model.Contact
	createErr            error
	createCalls          int

	updInUser, updInID   int64
	updIn                model.ContactInput
	updOut               *model.Contact
	updErr               error

	delInUser, delInID   int64
	delOut               *model.Contact
	delErr               error

	firstIn, lastIn      string
	searchOut            []model.Contact
	searchErr            error

	bdayInUser           int64
	bdayOut              []model.Contact
	bdayErr              error
}

var _ repository.ContactRepository = (*fakeContactRepo)(nil)

func (f *fakeContactRepo) List(_ context.Context, userID int64, limit, offset int) ([]model.Contact, error) {
	f.listInUser, f.listInLimit, f.listInOffset = userID, limit, offset
	return append([]model.Contact(nil), f.listOut...), f.listErr
}
func (f *fakeContactRepo) GetByID(_ context.Context, userID, id int64) (*model.Contact, error) {
	f.getInUser, f.getInID = userID, id
	return f.getOut, f.getErr
}
func (f *fakeContactRepo) GetByEmail(_ context.Context, userID int64, email string) (*model.Contact, error) {
	f.byEmailInUser, f.byEmailIn = userID, email
	return f.byEmailOut, f.byEmailErr
}
func (f *fakeContactRepo) Create(_ context.Context, userID int64, in model.ContactInput) (*model.Contact, error) {
	f.createCalls++
	f.createInUser, f.createIn = userID, in
	return f.createOut, f.createErr
}
func (f *fakeContactRepo) Update(_ context.Context, userID, id int64, in model.ContactInput) (*model.Contact, error) {
	f.updInUser, f.updInID, f.updIn = userID, id, in
	return f.updOut, f.updErr
}
func (f *fakeContactRepo) Delete(_ context.Context, userID, id int64) (*model.Contact, error) {
	f.delInUser, f.delInID = userID, id
	return f.delOut, f.delErr
}
func (f *fakeContactRepo) SearchByFirstName(_ context.Context, userID int64, name string) ([]model.Contact, error) {
	f.firstIn = name
	return append([]model.Contact(nil), f.searchOut...), f.searchErr
}
func (f *fakeContactRepo) SearchByLastName(_ context.Context, userID int64, name string) ([]model.Contact, error) {
	f.lastIn = name
	return append([]model.Contact(nil), f.searchOut...), f.searchErr
}
func (f *fakeContactRepo) UpcomingBirthdays(_ context.Context, userID int64) ([]model.Contact, error) {
	f.bdayInUser = userID
	return append([]model.Contact(nil), f.bdayOut...), f.bdayErr
}

func sampleInput() model.ContactInput {
	return model.ContactInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Phone:     "555",
		Birthday:  time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestContacts_List_DefaultsAndValidation(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{listOut: []model.Contact{{ID: 1}}}
	s := NewContactService(repo)

	out, err := s.List(context.Background(), 7, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || repo.listInLimit != defaultPageSize {
		t.Fatalf("want default limit %d, got %d", defaultPageSize, repo.listInLimit)
	}

	if _, err := s.List(context.Background(), 0, 10, 0); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
	if _, err := s.List(context.Background(), 7, 10, -1); err == nil {
		t.Fatalf("want validation error on negative offset")
	}
}

func TestContacts_Get_PassesScope(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{getErr: errs.ErrNotFound}
	s := NewContactService(repo)

	_, err := s.Get(context.Background(), 7, 3)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if repo.getInUser != 7 || repo.getInID != 3 {
		t.Fatalf("scope not passed: user=%d id=%d", repo.getInUser, repo.getInID)
	}

	if _, err := s.Get(context.Background(), 7, 0); err == nil {
		t.Fatalf("want validation error on empty id")
	}
}

func TestContacts_Create_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()
	existing := model.Contact{ID: 5, UserID: 7, Email: "ada@x.com"}
	repo := &fakeContactRepo{byEmailOut: &existing}
	s := NewContactService(repo)

	_, err := s.Create(context.Background(), 7, sampleInput())
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("create must not be called after duplicate pre-check")
	}
}

func TestContacts_Create_OK(t *testing.T) {
	t.Parallel()
	created := model.Contact{ID: 9, UserID: 7, Email: "ada@x.com"}
	repo := &fakeContactRepo{byEmailErr: errs.ErrNotFound, createOut: &created}
	s := NewContactService(repo)

	out, err := s.Create(context.Background(), 7, sampleInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != 9 || repo.createInUser != 7 {
		t.Fatalf("unexpected result: %+v user=%d", out, repo.createInUser)
	}
}

func TestContacts_Create_PreCheckStoreErrorPropagates(t *testing.T) {
	t.Parallel()
	boom := errors.New("db down")
	repo := &fakeContactRepo{byEmailErr: boom}
	s := NewContactService(repo)

	_, err := s.Create(context.Background(), 7, sampleInput())
	if !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("create must not run when pre-check fails")
	}
}

func TestContacts_Update_FullPayloadForwarded(t *testing.T) {
	t.Parallel()
	in := sampleInput()
	updated := model.Contact{ID: 3, UserID: 7, FirstName: in.FirstName}
	repo := &fakeContactRepo{updOut: &updated}
	s := NewContactService(repo)

	out, err := s.Update(context.Background(), 7, 3, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.updIn != in {
		t.Fatalf("payload must be forwarded verbatim: %+v", repo.updIn)
	}
	if out.ID != 3 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestContacts_Update_AbsentStaysAbsent(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{updErr: errs.ErrNotFound}
	s := NewContactService(repo)

	_, err := s.Update(context.Background(), 7, 99, sampleInput())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestContacts_Delete(t *testing.T) {
	t.Parallel()
	prior := model.Contact{ID: 3, UserID: 7}
	repo := &fakeContactRepo{delOut: &prior}
	s := NewContactService(repo)

	out, err := s.Delete(context.Background(), 7, 3)
	if err != nil || out.ID != 3 {
		t.Fatalf("Delete: out=%+v err=%v", out, err)
	}

	repo.delOut, repo.delErr = nil, errs.ErrNotFound
	if _, err := s.Delete(context.Background(), 7, 3); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete must be absent, got %v", err)
	}
}

func TestContacts_Search_Validation(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{searchOut: []model.Contact{{ID: 1, FirstName: "Ada"}}}
	s := NewContactService(repo)

	out, err := s.SearchFirstName(context.Background(), 7, "Ada")
	if err != nil || len(out) != 1 || repo.firstIn != "Ada" {
		t.Fatalf("SearchFirstName: out=%v err=%v in=%q", out, err, repo.firstIn)
	}
	if _, err := s.SearchFirstName(context.Background(), 7, ""); err == nil {
		t.Fatalf("want validation error on empty name")
	}

	if _, err := s.SearchLastName(context.Background(), 7, "Lovelace"); err != nil || repo.lastIn != "Lovelace" {
		t.Fatalf("SearchLastName: err=%v in=%q", err, repo.lastIn)
	}
}

func TestContacts_UpcomingBirthdays(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{bdayOut: []model.Contact{{ID: 2}}}
	s := NewContactService(repo)

	out, err := s.UpcomingBirthdays(context.Background(), 7)
	if err != nil || len(out) != 1 || repo.bdayInUser != 7 {
		t.Fatalf("UpcomingBirthdays: out=%v err=%v user=%d", out, err, repo.bdayInUser)
	}
	if _, err := s.UpcomingBirthdays(context.Background(), 0); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
}
