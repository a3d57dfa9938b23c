package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/pkg/token"
	"media-review/pkg/utils"
)

func newAuthFixture(mailer *fakeMailer) (AuthService, *fakeUserRepo, *token.Maker) {
	users := newFakeUserRepo()
	repo := &repository.Repository{User: users}
	cfg := &utils.Config{Code: utils.CodeConfig{Length: 6}}
	maker := token.NewMaker("test-secret", 1)
	svc := NewAuthService(repo, cfg, mailer, maker, zap.NewNop())
	return svc, users, maker
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSignupConflicts(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, _ := newAuthFixture(mailer)

	ctx := context.Background()
	if _, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("signup bob: %v", err)
	}

	// Username held by a different email.
	_, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "eve@example.com"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for taken username, got %v", err)
	}

	// Email held by a different username.
	_, err = svc.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "bob@example.com"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for taken email, got %v", err)
	}
}

func TestSignupThenObtainToken(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, maker := newAuthFixture(mailer)

	ctx := context.Background()
	resp, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.Username != "bob" || resp.Email != "bob@example.com" {
		t.Fatalf("unexpected signup response %+v", resp)
	}

	code := mailer.lastCode()
	if len(code) != 6 {
		t.Fatalf("expected 6 digit code in mail, got %q", code)
	}

	tok, err := svc.ObtainToken(ctx, &request.TokenRequest{Username: "bob", ConfirmationCode: code})
	if err != nil {
		t.Fatalf("obtain token: %v", err)
	}

	claims, err := maker.Verify(tok.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Username != "bob" || claims.Role != "user" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSignupReissuesCodeForSameIdentity(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, _ := newAuthFixture(mailer)

	ctx := context.Background()
	req := &request.SignupRequest{Username: "bob", Email: "bob@example.com"}
	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	firstCode := mailer.lastCode()

	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("repeat signup: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(mailer.sent))
	}

	// Only the latest code is accepted.
	code := mailer.lastCode()
	if _, err := svc.ObtainToken(ctx, &request.TokenRequest{Username: "bob", ConfirmationCode: code}); err != nil {
		t.Fatalf("obtain token with fresh code: %v", err)
	}
	if firstCode != code {
		_, err := svc.ObtainToken(ctx, &request.TokenRequest{Username: "bob", ConfirmationCode: firstCode})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for stale code, got %v", err)
		}
	}
}

func TestObtainTokenFailures(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, _ := newAuthFixture(mailer)

	ctx := context.Background()
	_, err := svc.ObtainToken(ctx, &request.TokenRequest{Username: "ghost", ConfirmationCode: "123456"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}

	if _, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err = svc.ObtainToken(ctx, &request.TokenRequest{Username: "bob", ConfirmationCode: "000000"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong code, got %v", err)
	}
}

func TestSignupMailFailureKeepsPendingUser(t *testing.T) {
	mailer := &fakeMailer{failWith: errors.New("smtp down")}
	svc, users, _ := newAuthFixture(mailer)

	ctx := context.Background()
	if _, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"}); err == nil {
		t.Fatal("expected signup to fail when mail delivery fails")
	}

	// The row survives so a retried signup re-issues a code.
	user, err := users.FindByUsername(ctx, "bob")
	if err != nil || user == nil {
		t.Fatalf("expected pending user row to remain, got user=%v err=%v", user, err)
	}

	mailer.failWith = nil
	if _, err := svc.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("retried signup: %v", err)
	}
}
