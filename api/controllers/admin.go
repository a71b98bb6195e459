package controllers

import (
	"net/http"

	"github.com/liorgem/diamondlab-backend/api/middleware"
	"github.com/liorgem/diamondlab-backend/api/responses"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
)

// AdminMe echoes the authenticated identity seeded by the auth
// middleware, so dashboards can confirm who a token belongs to.
func AdminMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := middleware.AdminIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		email, _ := middleware.EmailFromContext(r.Context())
		responses.WriteSuccess(w, map[string]string{
			"admin_id": adminID,
			"email":    email,
		})
	}
}
