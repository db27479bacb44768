package routehandlers

import (
	"context"
	"net/http"

	"github.com/coreybb/voxvite/datastore"
	"github.com/coreybb/voxvite/models"
	"github.com/coreybb/voxvite/webutil"
)

type ctxKeySession struct{}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, s)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(ctxKeySession{}).(*models.Session)
	return s, ok
}

// RequireAuth gates a route behind a valid session. The token travels
// verbatim in the Authorization header (no scheme prefix). A missing
// header and an unknown token produce the same uniform 401 so callers
// cannot probe which tokens exist.
func RequireAuth(sessions *datastore.SessionRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := req.Header.Get(webutil.HeaderAuthorization)
			if token == "" {
				webutil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			session, err := sessions.Resolve(req.Context(), token)
			if err != nil {
				webutil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, req.WithContext(WithSession(req.Context(), session)))
		})
	}
}
