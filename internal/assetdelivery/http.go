// Package assetdelivery manages delivery layer of assets.
package assetdelivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/pkg/web"
)

// Service provides service layer interface needed by asset delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package assetdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
}

// CSRFService guards the asset creation form.
type CSRFService interface {
	Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error)
	Consume(ctx context.Context, token, userID, usage string) error
}

// Handler facilitates asset delivery layer logic.
type Handler struct {
	service Service
	csrf    CSRFService
}

// NewHandler returns asset handler.
func NewHandler(as Service, cs CSRFService) Handler {
	return Handler{service: as, csrf: cs}
}

// NewForm handles http request to present the asset creation page.
func (h *Handler) NewForm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	user := middleware.UserFromCtx(gctx)

	token, err := h.csrf.Issue(ctx, user.ID, domain.CSRFUsageNewAsset)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	gctx.HTML(http.StatusOK, "new_asset.html", gin.H{
		"CSRF":  token.Token,
		"Error": gctx.Query("error"),
	})
}

type createRequest struct {
	CSRF      string `form:"csrf"`
	Ticker    string `form:"ticker"`
	Symbol    string `form:"symbol"`
	Label     string `form:"label"`
	Precision string `form:"precision"`
}

// Create handles http request to create an asset.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	user := middleware.UserFromCtx(gctx)

	var req createRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		web.RedirectError(gctx, "/new-asset", domain.ErrInvalidTicker)

		return
	}

	if err := h.csrf.Consume(ctx, req.CSRF, user.ID, domain.CSRFUsageNewAsset); err != nil {
		web.RedirectError(gctx, "/new-asset", err)
		return
	}

	precision, err := strconv.ParseInt(req.Precision, 10, 32)
	if err != nil {
		web.RedirectError(gctx, "/new-asset", domain.ErrInvalidPrecision)
		return
	}

	_, err = h.service.Create(ctx, domain.CreateAssetParams{
		Ticker:    req.Ticker,
		Symbol:    req.Symbol,
		Label:     req.Label,
		Precision: int32(precision),
	})
	if err != nil {
		if err == domain.ErrTickerAlreadyExists {
			err = domain.ErrTickerTaken
		}

		web.RedirectError(gctx, "/new-asset", err)

		return
	}

	web.Redirect(gctx, "/transactions")
}
