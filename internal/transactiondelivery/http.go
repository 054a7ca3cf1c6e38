// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/internal/transactionservice"
	"github.com/pluto-fin/pluto/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, viewer domain.User, arg domain.CreateTransactionParams) (domain.Transaction, error)
	List(ctx context.Context, viewer domain.User, page, size int32) (transactionservice.Page, error)
}

// CSRFService mints the one-time token for the creation form.
type CSRFService interface {
	Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error)
}

// AccountLister supplies the viewer's accounts for the form dropdowns.
type AccountLister interface {
	ListOwned(ctx context.Context, userID string) ([]domain.Account, error)
}

// AssetLister supplies the asset choices for the form dropdowns.
type AssetLister interface {
	List(ctx context.Context) ([]domain.Asset, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service  Service
	csrf     CSRFService
	accounts AccountLister
	assets   AssetLister
}

// NewHandler returns transaction handler.
func NewHandler(ts Service, cs CSRFService, acl AccountLister, asl AssetLister) Handler {
	return Handler{
		service:  ts,
		csrf:     cs,
		accounts: acl,
		assets:   asl,
	}
}

// List handles http request to show the transactions page.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	user := middleware.UserFromCtx(gctx)

	page := queryInt32(gctx, "page", 1)
	size := queryInt32(gctx, "size", 0)

	result, err := h.service.List(ctx, user, page, size)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	gctx.HTML(http.StatusOK, "transactions.html", gin.H{
		"Unsettled": result.Unsettled,
		"Settled":   result.Settled,
		"Page":      result.Number,
		"Size":      result.Size,
		"NextPage":  result.Number + 1,
		"PrevPage":  result.Number - 1,
		"Created":   gctx.Query("created") == "true",
	})
}

// NewForm handles http request to present the transaction creation page.
func (h *Handler) NewForm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	user := middleware.UserFromCtx(gctx)

	token, err := h.csrf.Issue(ctx, user.ID, domain.CSRFUsageNewTransaction)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	assets, err := h.assets.List(ctx)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	accounts, err := h.accounts.ListOwned(ctx, user.ID)
	if err != nil {
		gctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": web.CodeUnknown})
		return
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}

	gctx.HTML(http.StatusOK, "new_transaction.html", gin.H{
		"CSRF":              token.Token,
		"Assets":            assets,
		"Accounts":          accounts,
		"FavoriteAccountID": user.FavoriteAccountID,
		"FavoriteAssetID":   user.FavoriteAssetID,
		"Timestamp":         time.Now().In(loc).Format(domain.StampLayout),
		"Error":             gctx.Query("error"),
	})
}

type createRequest struct {
	CSRF                string `form:"csrf"`
	Note                string `form:"note"`
	CreditAccount       string `form:"credit_account"`
	CreateCreditAccount bool   `form:"create_credit_account"`
	DebitAccount        string `form:"debit_account"`
	CreateDebitAccount  bool   `form:"create_debit_account"`
	Asset               string `form:"asset"`
	CreditAsset         string `form:"credit_asset"`
	DebitAsset          string `form:"debit_asset"`
	Amount              string `form:"amount"`
	CreditAmount        string `form:"credit_amount"`
	DebitAmount         string `form:"debit_amount"`
	Timestamp           string `form:"timestamp"`
}

// Create handles http request to create a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	user := middleware.UserFromCtx(gctx)

	var req createRequest
	if err := gctx.ShouldBind(&req); err != nil {
		web.RedirectError(gctx, "/new-transaction", domain.ErrInvalidCSRF)
		return
	}

	_, err := h.service.Create(ctx, user, domain.CreateTransactionParams{
		CSRF:                req.CSRF,
		Note:                req.Note,
		CreditAccount:       req.CreditAccount,
		CreateCreditAccount: req.CreateCreditAccount,
		DebitAccount:        req.DebitAccount,
		CreateDebitAccount:  req.CreateDebitAccount,
		Asset:               req.Asset,
		CreditAsset:         req.CreditAsset,
		DebitAsset:          req.DebitAsset,
		Amount:              req.Amount,
		CreditAmount:        req.CreditAmount,
		DebitAmount:         req.DebitAmount,
		Timestamp:           req.Timestamp,
	})
	if err != nil {
		web.RedirectError(gctx, "/new-transaction", err)
		return
	}

	web.Redirect(gctx, "/transactions?created=true")
}

func queryInt32(gctx *gin.Context, key string, fallback int32) int32 {
	raw := gctx.Query(key)
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}

	return int32(v)
}
