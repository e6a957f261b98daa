package services

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/plexdi/studio/modules/admin/domain/entities/session"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/constants"
	"github.com/plexdi/studio/pkg/httpapi"
)

var ErrInvalidToken = errors.New("invalid admin token")

// AuthService gates the admin panel. The access token is never stored
// in clear: only its bcrypt hash lives in configuration, and a
// successful login mints a server-side session delivered as an HttpOnly
// cookie.
type AuthService struct {
	sessions session.Repository
}

func NewAuthService(sessions session.Repository) *AuthService {
	return &AuthService{sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, token, ip, userAgent string) (session.Session, error) {
	conf := configuration.Use()
	if err := bcrypt.CompareHashAndPassword([]byte(conf.Admin.TokenHash), []byte(token)); err != nil {
		return nil, ErrInvalidToken
	}

	sess := session.New(ip, userAgent, conf.Admin.SessionDuration)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	composables.UseLogger(ctx).WithField("ip", ip).Info("admin logged in")
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) Authorize(ctx context.Context, token string) (session.Session, error) {
	return s.sessions.GetByToken(ctx, token)
}

// SessionCookie builds the cookie carrying the session token. Secure is
// tied to the configured scheme so local development over plain HTTP
// still works.
func (s *AuthService) SessionCookie(sess session.Session) *http.Cookie {
	conf := configuration.Use()
	return &http.Cookie{
		Name:     conf.Admin.SidCookieKey,
		Value:    sess.Token(),
		Path:     "/",
		Expires:  sess.ExpiresAt(),
		HttpOnly: true,
		Secure:   conf.Scheme() == "https",
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *AuthService) ExpiredCookie() *http.Cookie {
	conf := configuration.Use()
	return &http.Cookie{
		Name:     conf.Admin.SidCookieKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   conf.Scheme() == "https",
		SameSite: http.SameSiteStrictMode,
	}
}

// RequireSession rejects requests lacking a valid admin session and
// stashes the session in the request context for handlers that want it.
func (s *AuthService) RequireSession() func(http.Handler) http.Handler {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(conf.Admin.SidCookieKey)
			if err != nil {
				httpapi.WriteError(r.Context(), w, http.StatusUnauthorized, "authentication required", "UNAUTHORIZED")
				return
			}
			sess, err := s.Authorize(r.Context(), cookie.Value)
			if err != nil {
				httpapi.WriteError(r.Context(), w, http.StatusUnauthorized, "session invalid or expired", "UNAUTHORIZED")
				return
			}
			ctx := context.WithValue(r.Context(), constants.SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UseSession returns the admin session placed in the context by
// RequireSession.
func UseSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(constants.SessionKey).(session.Session)
	return sess, ok
}
