package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

type fakeReviewStore struct {
	created []model.EmployerReview
	nextID  int64
}

func (f *fakeReviewStore) Create(_ context.Context, employerID, authorID int64, rating int, title, content string) (model.EmployerReview, error) {
	f.nextID++
	review := model.EmployerReview{
		ID:         f.nextID,
		EmployerID: employerID,
		AuthorID:   authorID,
		Rating:     rating,
		Title:      title,
		Content:    content,
		Status:     enums.ReviewStatusPending,
	}
	f.created = append(f.created, review)
	return review, nil
}

func (f *fakeReviewStore) ListForEmployer(_ context.Context, employerID int64, status string) ([]model.EmployerReview, error) {
	var out []model.EmployerReview
	for _, review := range f.created {
		if review.EmployerID == employerID && string(review.Status) == status {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) ListByStatus(_ context.Context, status string, _ int) ([]model.EmployerReview, error) {
	var out []model.EmployerReview
	for _, review := range f.created {
		if string(review.Status) == status {
			out = append(out, review)
		}
	}
	return out, nil
}

type fakeAccountStore struct {
	accounts map[int64]model.Account
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (model.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return model.Account{}, pgrepo.ErrAccountNotFound
	}
	return account, nil
}

func newTestService(store *fakeReviewStore) *Service {
	accounts := &fakeAccountStore{accounts: map[int64]model.Account{
		10: {ID: 10, Role: enums.RoleEmployer, Status: enums.AccountStatusActive},
		20: {ID: 20, Role: enums.RoleSeeker, Status: enums.AccountStatusActive},
	}}
	return NewService(store, accounts, nil)
}

func validInput() CreateInput {
	return CreateInput{
		EmployerID: 10,
		Rating:     4,
		Title:      "Solid team",
		Content:    "Clear expectations, paid on time.",
	}
}

func TestCreateRatingBounds(t *testing.T) {
	cases := []struct {
		rating int
		ok     bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
		{-3, false},
	}

	for _, tc := range cases {
		store := &fakeReviewStore{}
		service := newTestService(store)

		input := validInput()
		input.Rating = tc.rating
		review, err := service.Create(context.Background(), 20, input)

		if tc.ok {
			if err != nil {
				t.Fatalf("rating %d: unexpected error: %v", tc.rating, err)
			}
			if review.Rating != tc.rating {
				t.Fatalf("rating %d: stored %d", tc.rating, review.Rating)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", tc.rating, err)
		}
		if len(store.created) != 0 {
			t.Fatalf("rating %d: review was persisted despite validation failure", tc.rating)
		}
	}
}

func TestCreateStartsPending(t *testing.T) {
	service := newTestService(&fakeReviewStore{})

	review, err := service.Create(context.Background(), 20, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Status != enums.ReviewStatusPending {
		t.Fatalf("expected pending status, got %q", review.Status)
	}
}

func TestCreateRejectsSelfReview(t *testing.T) {
	service := newTestService(&fakeReviewStore{})

	input := validInput()
	_, err := service.Create(context.Background(), input.EmployerID, input)
	if !errors.Is(err, ErrSelfReview) {
		t.Fatalf("expected ErrSelfReview, got %v", err)
	}
}

func TestCreateRejectsNonEmployerSubject(t *testing.T) {
	service := newTestService(&fakeReviewStore{})

	input := validInput()
	input.EmployerID = 20 // a seeker account
	_, err := service.Create(context.Background(), 30, input)
	if !errors.Is(err, ErrEmployerNotFound) {
		t.Fatalf("expected ErrEmployerNotFound for seeker subject, got %v", err)
	}

	input.EmployerID = 404
	_, err = service.Create(context.Background(), 30, input)
	if !errors.Is(err, ErrEmployerNotFound) {
		t.Fatalf("expected ErrEmployerNotFound for missing account, got %v", err)
	}
}

func TestListApprovedFiltersStatus(t *testing.T) {
	store := &fakeReviewStore{}
	service := newTestService(store)

	if _, err := service.Create(context.Background(), 20, validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.created[0].Status = enums.ReviewStatusApproved
	if _, err := service.Create(context.Background(), 20, validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approved, err := service.ListApproved(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(approved) != 1 || approved[0].Status != enums.ReviewStatusApproved {
		t.Fatalf("expected exactly the approved review, got %+v", approved)
	}
}
