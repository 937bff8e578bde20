package validators

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

// ParsePathID reads a positive integer URL parameter.
func ParsePathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid data format").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
