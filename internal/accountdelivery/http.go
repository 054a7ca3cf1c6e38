// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	CreateOwned(ctx context.Context, ownerID, name string) (domain.Account, error)
	ListOwned(ctx context.Context, userID string) ([]domain.Account, error)
}

// CSRFService guards the account creation form.
type CSRFService interface {
	Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error)
	Consume(ctx context.Context, token, userID, usage string) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
	csrf    CSRFService
}

// NewHandler returns account handler.
func NewHandler(as Service, cs CSRFService) Handler {
	return Handler{service: as, csrf: cs}
}

// NewForm handles http request to present the account creation page.
func (h *Handler) NewForm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	user := middleware.UserFromCtx(gctx)

	token, err := h.csrf.Issue(ctx, user.ID, domain.CSRFUsageNewAccount)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	gctx.HTML(http.StatusOK, "new_account.html", gin.H{
		"CSRF":  token.Token,
		"Error": gctx.Query("error"),
	})
}

type createRequest struct {
	CSRF string `form:"csrf"`
	Name string `form:"name"`
}

// Create handles http request to create an account owned by the viewer.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	user := middleware.UserFromCtx(gctx)

	var req createRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		web.RedirectError(gctx, "/new-account", domain.ErrInvalidAccountName)

		return
	}

	if err := h.csrf.Consume(ctx, req.CSRF, user.ID, domain.CSRFUsageNewAccount); err != nil {
		web.RedirectError(gctx, "/new-account", err)
		return
	}

	if _, err := h.service.CreateOwned(ctx, user.ID, req.Name); err != nil {
		web.RedirectError(gctx, "/new-account", err)
		return
	}

	web.Redirect(gctx, "/transactions")
}
