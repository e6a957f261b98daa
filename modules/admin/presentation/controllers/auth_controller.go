package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plexdi/studio/modules/admin/services"
	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/httpapi"
	"github.com/plexdi/studio/pkg/middleware"
)

type AuthControllerConfig struct {
	BasePath string
	App      application.Application
}

type AuthController struct {
	basePath string
	app      application.Application
	auth     *services.AuthService
}

func NewAuthController(cfg AuthControllerConfig) application.Controller {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/admin/api"
	}
	return &AuthController{
		basePath: basePath,
		app:      cfg.App,
		auth:     cfg.App.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *AuthController) Key() string {
	return "AdminAuthController"
}

func (c *AuthController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()

	// Brute-forcing the admin token gets expensive fast.
	loginLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerPeriod: conf.Admin.LoginAttempts,
		Period:            conf.Admin.LoginWindow,
	})

	router.Handle("/login", loginLimiter(http.HandlerFunc(c.login))).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	router.Handle("/session", c.auth.RequireSession()(http.HandlerFunc(c.session))).Methods(http.MethodGet)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	var dto struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Token == "" {
		httpapi.WriteError(r.Context(), w, http.StatusBadRequest, "token is required", "INVALID_REQUEST")
		return
	}

	ip, userAgent := "", ""
	if params, ok := composables.UseParams(r.Context()); ok {
		ip, userAgent = params.IP, params.UserAgent
	}

	sess, err := c.auth.Login(r.Context(), dto.Token, ip, userAgent)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			logger.WithField("ip", ip).Warn("admin login rejected")
			httpapi.WriteError(r.Context(), w, http.StatusUnauthorized, "invalid token", "UNAUTHORIZED")
			return
		}
		httpapi.WriteError(r.Context(), w, http.StatusInternalServerError, "login failed", "INTERNAL")
		return
	}

	http.SetCookie(w, c.auth.SessionCookie(sess))
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{
		"expires_at": sess.ExpiresAt().Format(http.TimeFormat),
	})
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.Admin.SidCookieKey); err == nil {
		if err := c.auth.Logout(r.Context(), cookie.Value); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("logout failed")
		}
	}
	http.SetCookie(w, c.auth.ExpiredCookie())
	httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *AuthController) session(w http.ResponseWriter, r *http.Request) {
	sess, ok := services.UseSession(r.Context())
	if !ok {
		httpapi.WriteError(r.Context(), w, http.StatusUnauthorized, "authentication required", "UNAUTHORIZED")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{
		"created_at": sess.CreatedAt().Format(http.TimeFormat),
		"expires_at": sess.ExpiresAt().Format(http.TimeFormat),
	})
}
