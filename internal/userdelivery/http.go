// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/internal/userservice"
	"github.com/pluto-fin/pluto/pkg/configpkg"
	"github.com/pluto-fin/pluto/pkg/web"
)

// UserService provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type UserService interface {
	Register(ctx context.Context, arg userservice.RegisterParams) (domain.User, error)
	CheckPassword(ctx context.Context, email, password string) (domain.User, error)
}

// SessionService starts and ends browser sessions.
type SessionService interface {
	Create(ctx context.Context, userID string) (string, domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// AssetLister supplies the favorite-asset choices on the registration form.
type AssetLister interface {
	List(ctx context.Context) ([]domain.Asset, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	users        UserService
	sessions     SessionService
	assets       AssetLister
	cookieMaxAge int
}

// NewHandler returns user handler.
func NewHandler(us UserService, ss SessionService, al AssetLister, config configpkg.Config) Handler {
	return Handler{
		users:        us,
		sessions:     ss,
		assets:       al,
		cookieMaxAge: int(config.SessionDuration.Seconds()),
	}
}

// RegisterForm handles http request to present the registration page.
func (h *Handler) RegisterForm(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	assets, err := h.assets.List(ctx)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	gctx.HTML(http.StatusOK, "register.html", gin.H{
		"Assets": assets,
		"Error":  gctx.Query("error"),
	})
}

type registerRequest struct {
	Email         string `form:"email" binding:"required,email"`
	Password      string `form:"password" binding:"required"`
	Timezone      string `form:"timezone" binding:"required,timezone"`
	AccountName   string `form:"account_name" binding:"required"`
	FavoriteAsset string `form:"favorite_asset" binding:"required"`
}

// Register handles http request to register a user.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		web.RedirectError(gctx, "/register", bindingError(err, map[string]domain.ValidationError{
			"Email":       domain.ErrInvalidEmail,
			"Password":    domain.ErrInvalidPassword,
			"Timezone":    domain.ErrInvalidTimezone,
			"AccountName": domain.ErrInvalidAccountName,
		}))

		return
	}

	user, err := h.users.Register(ctx, userservice.RegisterParams{
		Email:           req.Email,
		Password:        req.Password,
		Timezone:        req.Timezone,
		AccountName:     req.AccountName,
		FavoriteAssetID: req.FavoriteAsset,
	})
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			err = domain.ErrEmailTaken
		}

		web.RedirectError(gctx, "/register", err)

		return
	}

	h.startSession(gctx, user.ID)
}

// LoginForm handles http request to present the login page.
func (h *Handler) LoginForm(gctx *gin.Context) {
	gctx.HTML(http.StatusOK, "login.html", gin.H{
		"Error": gctx.Query("error"),
	})
}

type loginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Login handles http request to log a user in.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		web.RedirectError(gctx, "/login", domain.ErrInvalidCredentials)

		return
	}

	user, err := h.users.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		// A missing user and a wrong password are indistinguishable to the
		// browser.
		if err == domain.ErrUserNotFound || err == domain.ErrWrongPassword {
			err = domain.ErrInvalidCredentials
		}

		web.RedirectError(gctx, "/login", err)

		return
	}

	h.startSession(gctx, user.ID)
}

// Logout handles http request to end the session.
func (h *Handler) Logout(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	if token, err := gctx.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.sessions.Delete(ctx, token); err != nil {
			l.Warn().Err(err).Send()
		}
	}

	gctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	web.Redirect(gctx, "/login")
}

func (h *Handler) startSession(gctx *gin.Context, userID string) {
	token, _, err := h.sessions.Create(gctx.Request.Context(), userID)
	if err != nil {
		web.RedirectError(gctx, "/login", err)
		return
	}

	gctx.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAge, "/", "", false, true)
	web.Redirect(gctx, "/transactions")
}
