package http

import (
	"net/http"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/pkg/httpx"
)

const sessionCookieName = "session"

// Advisory browser lifetime only. Sessions live server-side until logout.
const sessionMaxAge = 7 * 24 * time.Hour

// cookieSettings controls the attributes of the session cookie. Cross-origin
// deployments need SameSite=None, which browsers only accept with Secure.
type cookieSettings struct {
	Secure bool
}

func (c cookieSettings) write(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, int(sessionMaxAge.Seconds())))
}

func (c cookieSettings) clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c cookieSettings) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if c.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
	}
}

// SessionMiddleware resolves the session cookie into a user id and stores it
// on the request context. Requests without a valid session get a 401.
func SessionMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := auth.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.ContextWithUserID(r.Context(), userID)))
		})
	}
}
