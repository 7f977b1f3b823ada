package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/car-traders/application/user"
	utilsContext "github.com/muhammadheryan/car-traders/utils/context"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"go.uber.org/zap"
)

const sessionCookie = "session"

// SessionMiddleware resolves the session cookie into an identity. An
// unresolvable session leaves the request anonymous.
func SessionMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(sessionCookie)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utilsContext.WithSessionToken(r.Context(), c.Value)
			identity, err := userApp.ResolveSession(ctx, c.Value)
			if err != nil {
				logger.Debug("[Session] unresolved session", zap.String("path", r.URL.Path), zap.String("error", err.Error()))
			} else {
				ctx = utilsContext.WithIdentity(ctx, identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *RestHandler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *RestHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(sessionCookie, token, int(s.sessionTTL.Seconds())))
}

// endSession drops the server-side session and the cookie. The request is
// anonymous afterwards.
func (s *RestHandler) endSession(w http.ResponseWriter, req *Request) error {
	err := s.UserApp.EndSession(req.Context(), req.Token)
	http.SetCookie(w, s.cookie(sessionCookie, "", -1))
	req.Identity = nil
	req.Token = ""
	return err
}
