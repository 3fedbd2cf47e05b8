package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/requestdata"
)

type fakeUserRepo struct {
	byEmail map[string]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*types.User{}}
}

func (f *fakeUserRepo) Create(_ dbctx.Context, user *types.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ dbctx.Context, userID uuid.UUID) (*types.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ dbctx.Context, email string) (*types.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(_ dbctx.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := newFakeUserRepo()
	return NewAuthService(log, repo, "test-secret", time.Hour), repo
}

func TestRegisterLoginTokenRoundTrip(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "  Ada@Example.COM ", Password: "hunter22"}
	token, err := svc.RegisterUser(ctx, user)
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if token == "" {
		t.Fatalf("register returned empty token")
	}
	if _, ok := repo.byEmail["ada@example.com"]; !ok {
		t.Fatalf("email not normalized on register: %v", repo.byEmail)
	}
	if repo.byEmail["ada@example.com"].Password == "hunter22" {
		t.Fatalf("password stored in the clear")
	}

	authed, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data = %+v, want user %s", rd, user.ID)
	}

	loginToken, err := svc.LoginUser(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, loginToken); err != nil {
		t.Fatalf("login token rejected: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, &types.User{Email: "bob@example.com", Password: "correcthorse"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if _, err := svc.LoginUser(ctx, "bob@example.com", "wrong"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("bad password err = %v", err)
	}
	if _, err := svc.LoginUser(ctx, "nobody@example.com", "x"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("unknown email err = %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, &types.User{Email: "dup@example.com", Password: "pw-one"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.RegisterUser(ctx, &types.User{Email: "dup@example.com", Password: "pw-two"}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("duplicate register err = %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.SetContextFromToken(ctx, "not.a.token"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("garbage token err = %v", err)
	}

	other := NewAuthService(mustLogger(t), newFakeUserRepo(), "other-secret", time.Hour)
	token, err := other.RegisterUser(ctx, &types.User{Email: "eve@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register on other service: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("foreign-secret token err = %v", err)
	}
}

func mustLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}
