package service

import (
	"testing"
	"time"

	infraRepo "github.com/sangkips/dukastore-api/internal/infrastructure/repository"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/utils"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewUserRepository(db), jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(ctx(), &RegisterInput{
		Username: "mary",
		Email:    "mary@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Error("registration did not issue tokens")
	}
	if registered.User.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}

	loggedIn, err := svc.Login(ctx(), &LoginInput{Username: "mary", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Error("login returned a different user")
	}

	_, err = svc.Login(ctx(), &LoginInput{Username: "mary", Password: "wrong"})
	if apperror.GetAppError(err).Code != 401 {
		t.Errorf("expected 401 for bad password, got %v", err)
	}
	_, err = svc.Login(ctx(), &LoginInput{Username: "nobody", Password: "s3cret-pass"})
	if apperror.GetAppError(err).Code != 401 {
		t.Errorf("expected 401 for unknown user, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(ctx(), &RegisterInput{Username: "mary", Email: "mary@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx(), &RegisterInput{Username: "mary", Email: "other@example.com", Password: "s3cret-pass"})
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("expected 409 for duplicate username, got %v", err)
	}
	_, err = svc.Register(ctx(), &RegisterInput{Username: "maria", Email: "mary@example.com", Password: "s3cret-pass"})
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("expected 409 for duplicate email, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(ctx(), &RegisterInput{
		Username: "joe", Email: "joe@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx(), registered.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.User.ID != registered.User.ID {
		t.Error("refresh returned a different user")
	}

	_, err = svc.RefreshToken(ctx(), "not-a-token")
	if apperror.GetAppError(err).Code != 401 {
		t.Errorf("expected 401 for garbage token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(ctx(), &RegisterInput{
		Username: "ann", Email: "ann@example.com", Password: "old-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	err = svc.ChangePassword(ctx(), registered.User.ID, "wrong", "new-password")
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("expected 400 for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(ctx(), registered.User.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(ctx(), &LoginInput{Username: "ann", Password: "new-password"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}
