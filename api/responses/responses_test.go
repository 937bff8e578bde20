package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/types"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return body
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Status != types.StatusSuccess {
		t.Fatalf("unexpected status %q", body.Status)
	}
	if body.Results != nil {
		t.Fatalf("expected no results count, got %d", *body.Results)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteList(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList(w, 2, map[string]any{"products": []int{1, 2}})

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Results == nil || *body.Results != 2 {
		t.Fatalf("expected results=2, got %v", body.Results)
	}
}

func TestWriteNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNoContent(w)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	body := decodeError(t, w)
	if body.Status != types.StatusError {
		t.Fatalf("unexpected status %q", body.Status)
	}
	if body.Code != string(pkgerrors.CodeValidation) || body.Message != "bad input" {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if body.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorConflictIsBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeConflict, "Email already in use"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Message != "Email already in use" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestWriteErrorDefaultsToInternalForUntypedErrors(t *testing.T) {
	ExposeInternalErrors(false)
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}
	body := decodeError(t, w)
	if body.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Details != nil {
		t.Fatalf("internal details must be hidden, got %v", body.Details)
	}
}

func TestWriteErrorExposesInternalDetailsWhenEnabled(t *testing.T) {
	ExposeInternalErrors(true)
	t.Cleanup(func() { ExposeInternalErrors(false) })

	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: boom"), "Failed to update product"))

	body := decodeError(t, w)
	if body.Message != "Failed to update product" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Details == nil {
		t.Fatalf("expected the cause chain in details")
	}
}
