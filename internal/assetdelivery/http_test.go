package assetdelivery

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestEngine(h Handler, user domain.User) *gin.Engine {
	engine := gin.New()
	engine.Use(func(gctx *gin.Context) {
		gctx.Set(middleware.UserKey, user)
	})
	engine.POST("/new-asset", h.Create)

	return engine
}

func TestAssetCreate(t *testing.T) {
	user := domain.User{ID: uuid.NewString(), Email: "user@example.com"}
	csrfToken := uuid.NewString()

	asset := domain.Asset{
		ID:        uuid.NewString(),
		Ticker:    "USD",
		Symbol:    "$",
		Label:     "US Dollar",
		Precision: 2,
		Type:      domain.AssetTypeCurrency,
	}

	okForm := url.Values{
		"csrf":      {csrfToken},
		"ticker":    {"USD"},
		"symbol":    {"$"},
		"label":     {"US Dollar"},
		"precision": {"2"},
	}

	testCases := []struct {
		name          string
		form          url.Values
		buildStubs    func(service *MockService, csrf *MockCSRFService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			form: okForm,
			buildStubs: func(service *MockService, csrf *MockCSRFService) {
				csrf.EXPECT().
					Consume(gomock.Any(), gomock.Eq(csrfToken), gomock.Eq(user.ID), gomock.Eq(domain.CSRFUsageNewAsset)).
					Times(1).
					Return(nil)
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAssetParams{
						Ticker: "USD", Symbol: "$", Label: "US Dollar", Precision: 2,
					})).
					Times(1).
					Return(asset, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/transactions", recorder.Header().Get("Location"))
			},
		},
		{
			name: "BadCSRF",
			form: okForm,
			buildStubs: func(service *MockService, csrf *MockCSRFService) {
				csrf.EXPECT().
					Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrInvalidCSRF)
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/new-asset?error=invalid-csrf", recorder.Header().Get("Location"))
			},
		},
		{
			name: "BadPrecision",
			form: url.Values{
				"csrf":      {csrfToken},
				"ticker":    {"USD"},
				"label":     {"US Dollar"},
				"precision": {"two"},
			},
			buildStubs: func(service *MockService, csrf *MockCSRFService) {
				csrf.EXPECT().
					Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/new-asset?error=invalid-precision", recorder.Header().Get("Location"))
			},
		},
		{
			name: "DuplicateTicker",
			form: okForm,
			buildStubs: func(service *MockService, csrf *MockCSRFService) {
				csrf.EXPECT().
					Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Asset{}, domain.ErrTickerAlreadyExists)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/new-asset?error=ticker-taken", recorder.Header().Get("Location"))
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			csrf := NewMockCSRFService(ctrl)
			tc.buildStubs(service, csrf)

			handler := NewHandler(service, csrf)
			engine := newTestEngine(handler, user)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/new-asset", strings.NewReader(tc.form.Encode()))
			request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			engine.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
