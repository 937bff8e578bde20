package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/aestheticmarket-backend/internal/auth"
	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

type stubAuthService struct {
	session  *auth.Session
	err      error
	register auth.RegisterRequest
	login    auth.LoginRequest
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (*auth.Session, error) {
	s.register = req
	return s.session, s.err
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.Session, error) {
	s.login = req
	return s.session, s.err
}

func TestSellerRegister(t *testing.T) {
	svc := &stubAuthService{session: &auth.Session{
		Seller: &sellers.SellerDTO{ID: 1, FullName: "Ada", Email: "ada@example.com"},
		Token:  "tok",
	}}
	rec := serve(t, SellerRegister(svc, testLogger()), http.MethodPost, "/api/sellers/register", requestOpts{
		body: `{"fullName":"Ada","email":"ada@example.com","phone":"1","password":"longenough","confirmPassword":"longenough"}`,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.register.ConfirmPassword != "longenough" || svc.register.FullName != "Ada" {
		t.Fatalf("unexpected request %+v", svc.register)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["token"] != "tok" {
		t.Fatalf("unexpected token %v", data["token"])
	}
	seller := data["seller"].(map[string]any)
	if _, ok := seller["password"]; ok {
		t.Fatal("password must never be serialized")
	}
}

func TestSellerLoginGenericFailure(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "Incorrect email or password")}
	rec := serve(t, SellerLogin(svc, testLogger()), http.MethodPost, "/api/sellers/login", requestOpts{
		body: `{"email":"ada@example.com","password":"nope"}`,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Incorrect email or password" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestSellerLoginRejectsMalformedJSON(t *testing.T) {
	svc := &stubAuthService{}
	rec := serve(t, SellerLogin(svc, testLogger()), http.MethodPost, "/api/sellers/login", requestOpts{body: `{"email":`})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
