package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestAuthMiddleware(t *testing.T) {
	user := domain.User{ID: uuid.NewString(), Email: "user@example.com"}
	token := uuid.NewString()

	testCases := []struct {
		name          string
		setupRequest  func(t *testing.T, request *http.Request)
		buildStubs    func(sessions *MockSessionResolver)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:         "OK",
			setupRequest: func(t *testing.T, request *http.Request) {
				request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			},
			buildStubs: func(sessions *MockSessionResolver) {
				sessions.EXPECT().
					Resolve(gomock.Any(), gomock.Eq(token)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name:         "NoCookie",
			setupRequest: func(t *testing.T, request *http.Request) {},
			buildStubs: func(sessions *MockSessionResolver) {
				sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/login", recorder.Header().Get("Location"))
			},
		},
		{
			name: "DeadSession",
			setupRequest: func(t *testing.T, request *http.Request) {
				request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			},
			buildStubs: func(sessions *MockSessionResolver) {
				sessions.EXPECT().
					Resolve(gomock.Any(), gomock.Eq(token)).
					Times(1).
					Return(domain.User{}, domain.ErrSessionNotFound)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, recorder.Code)
				require.Equal(t, "/login", recorder.Header().Get("Location"))

				// The dead cookie must be cleared.
				cookies := recorder.Result().Cookies()
				require.Len(t, cookies, 1)
				require.Equal(t, SessionCookieName, cookies[0].Name)
				require.Empty(t, cookies[0].Value)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessions := NewMockSessionResolver(ctrl)
			tc.buildStubs(sessions)

			engine := gin.New()
			engine.GET("/protected", AuthMiddleware(sessions), func(gctx *gin.Context) {
				got := UserFromCtx(gctx)
				require.Equal(t, user, got)
				gctx.Status(http.StatusOK)
			})

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tc.setupRequest(t, request)

			engine.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
