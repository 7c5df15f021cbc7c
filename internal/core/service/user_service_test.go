package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

func strptr(s string) *string { return &s }

func mustCreateUser(t *testing.T, svc *UserService, input ports.CreateUserInput) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create %s: %v", input.Username, err)
	}
	return user
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := mustCreateUser(t, svc, ports.CreateUserInput{
		Username: "frank",
		Password: "supersecret",
		Role:     domain.RoleAdmin,
		RFIDTag:  "RFID-9",
	})
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role %q, got %q", domain.RoleAdmin, user.Role)
	}
	if user.RFIDTag != "RFID-9" {
		t.Fatalf("expected rfid tag to be stored, got %q", user.RFIDTag)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	cases := []ports.CreateUserInput{
		{Username: "", Password: "supersecret", Role: domain.RoleUser},
		{Username: "grace", Password: "", Role: domain.RoleUser},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "heidi",
		Password: "supersecret",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad role must not read as an auth failure")
	}
}

// A role update with an unknown role is a validation problem, not an auth
// failure, and must leave the stored user untouched.
func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	created := mustCreateUser(t, svc, ports.CreateUserInput{
		Username: "ivan",
		Password: "supersecret",
		Role:     domain.RoleUser,
	})

	_, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Role: strptr("superuser")})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad role must not read as an auth failure")
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Role != domain.RoleUser {
		t.Fatalf("role changed despite rejected update: %q", stored.Role)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	created := mustCreateUser(t, svc, ports.CreateUserInput{
		Username: "judy",
		Password: "supersecret",
		Role:     domain.RoleUser,
	})

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Role:    strptr(domain.RoleAdmin),
		RFIDTag: strptr("RFID-77"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role %q, got %q", domain.RoleAdmin, updated.Role)
	}
	if updated.RFIDTag != "RFID-77" {
		t.Fatalf("expected rfid tag update, got %q", updated.RFIDTag)
	}
	if updated.Username != "judy" {
		t.Fatalf("username must be untouched, got %q", updated.Username)
	}
}
