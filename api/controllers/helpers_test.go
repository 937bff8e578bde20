package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/aestheticmarket-backend/api/middleware"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type requestOpts struct {
	sellerID int64
	params   map[string]string
	body     string
}

func serve(t *testing.T, h http.HandlerFunc, method, target string, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if opts.body != "" {
		body = strings.NewReader(opts.body)
	}
	req := httptest.NewRequest(method, target, body)

	ctx := context.Background()
	routeCtx := chi.NewRouteContext()
	for k, v := range opts.params {
		routeCtx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	if opts.sellerID > 0 {
		ctx = middleware.WithPrincipal(ctx, middleware.Principal{SellerID: opts.sellerID, Email: "ada@example.com"})
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return payload
}
