package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
)

type keyType string

const (
	identityKey keyType = "identity"
)

// Identity is the caller proven by a verified bearer token.
type Identity struct {
	UserID string
	Email  string
}

// ctxWithIdentity adds the verified caller to the context
func ctxWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity retrieves the verified caller from the context
func ctxGetIdentity(ctx context.Context) (Identity, error) {
	if ctxValue := ctx.Value(identityKey); ctxValue == nil {
		return Identity{}, errors.New("identity not found in context")
	} else if identity, ok := ctxValue.(Identity); !ok {
		return Identity{}, errors.New("value is not of type `Identity`")
	} else {
		return identity, nil
	}
}

// withIdentity hands the verified caller to next. Requests that did not go
// through authMiddleware.authenticate are rejected before next runs.
func withIdentity(responder Responder, next func(http.ResponseWriter, *http.Request, Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			responder.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("protected handler reached without identity")
			responder.WriteError(w, errs.Unauthorized)
			return
		}
		next(w, r, identity)
	}
}
