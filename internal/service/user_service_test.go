package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/fardardnsyh/Project-96/internal/domain"
)

type mockUserRepo struct {
	usersByID       map[string]domain.User
	usersByUsername map[string]string
	createErr       error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:       make(map[string]domain.User),
		usersByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.usersByUsername[user.Username]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_idx"}
	}
	m.usersByID[user.ID] = user
	m.usersByUsername[user.Username] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	id, ok := m.usersByUsername[username]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func TestUserService_SignupHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Password: "pw1",
		Email:    "a@x.com",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pw1" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}
}

func TestUserService_SignupRejectsMissingFields(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	cases := []SignupInput{
		{Username: "", Password: "pw", Email: "a@x.com"},
		{Username: "alice", Password: "", Email: "a@x.com"},
		{Username: "alice", Password: "pw", Email: ""},
	}
	for _, input := range cases {
		if _, err := svc.Signup(context.Background(), input); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", input, err)
		}
	}
}

func TestUserService_SignupDuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	input := SignupInput{Username: "alice", Password: "pw1", Email: "a@x.com"}
	if _, err := svc.Signup(context.Background(), input); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_AuthenticateSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Password: "pw1",
		Email:    "a@x.com",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %q, got %q", created.ID, user.ID)
	}
}

func TestUserService_AuthenticateRejectsBadCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Password: "pw1",
		Email:    "a@x.com",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
