package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/types"
)

var exposeInternal atomic.Bool

// ExposeInternalErrors toggles whether non-client errors carry their cause
// chain in the details field. It is switched on outside production.
func ExposeInternalErrors(enabled bool) {
	exposeInternal.Store(enabled)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Status: types.StatusSuccess, Data: data})
}

// WriteList is WriteSuccess with a results count.
func WriteList(w http.ResponseWriter, count int, data any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Status: types.StatusSuccess, Results: &count, Data: data})
}

// WriteJSON writes payload as is, without the envelope.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, payload)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); m != "" {
		msg = m
	}

	payload := types.ErrorEnvelope{
		Status:  types.StatusError,
		Code:    string(typed.Code()),
		Message: msg,
	}

	switch {
	case meta.DetailsAllowed && typed.Details() != nil:
		payload.Details = typed.Details()
	case !typed.Code().IsClientFacing() && exposeInternal.Load():
		payload.Details = err.Error()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		if typed.Code().IsClientFacing() {
			logg.Warn(ctx, "request.error")
		} else {
			logg.Error(ctx, "request.error", err)
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
