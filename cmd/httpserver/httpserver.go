// Package httpserver manages server creation and page routing.
package httpserver

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/accountdelivery"
	"github.com/pluto-fin/pluto/internal/accountrepo"
	"github.com/pluto-fin/pluto/internal/accountservice"
	"github.com/pluto-fin/pluto/internal/assetdelivery"
	"github.com/pluto-fin/pluto/internal/assetrepo"
	"github.com/pluto-fin/pluto/internal/assetservice"
	"github.com/pluto-fin/pluto/internal/csrfrepo"
	"github.com/pluto-fin/pluto/internal/csrfservice"
	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/internal/sessionrepo"
	"github.com/pluto-fin/pluto/internal/sessionservice"
	"github.com/pluto-fin/pluto/internal/transactiondelivery"
	"github.com/pluto-fin/pluto/internal/transactionrepo"
	"github.com/pluto-fin/pluto/internal/transactionservice"
	"github.com/pluto-fin/pluto/internal/userdelivery"
	"github.com/pluto-fin/pluto/internal/userrepo"
	"github.com/pluto-fin/pluto/internal/userservice"
	"github.com/pluto-fin/pluto/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	assetRepo := assetrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	csrfRepo := csrfrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn, config.CSRFTokenDuration)

	userService := userservice.New(userRepo)
	assetService := assetservice.New(assetRepo)
	accountService := accountservice.New(accountRepo)
	csrfService := csrfservice.New(csrfRepo, config)
	transactionService := transactionservice.New(transactionRepo, config)

	sessionService, err := sessionservice.New(sessionRepo, userRepo, config)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService, assetService, config)
	accountHandler := accountdelivery.NewHandler(accountService, csrfService)
	assetHandler := assetdelivery.NewHandler(assetService, csrfService)
	transactionHandler := transactiondelivery.NewHandler(transactionService, csrfService, accountService, assetService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("timezone", userdelivery.ValidTimezone); err != nil {
			return nil, errors.New("cannot register timezone validator")
		}
	}

	engine.SetFuncMap(template.FuncMap{
		"stamp": func(t time.Time) string { return t.Format(domain.StampLayout) },
	})
	engine.LoadHTMLGlob("web/templates/*.html")
	engine.Static("/static", "web/static")

	engine.GET("/", func(gctx *gin.Context) {
		gctx.Redirect(http.StatusSeeOther, "/transactions")
	})

	engine.GET("/register", userHandler.RegisterForm)
	engine.POST("/register", userHandler.Register)
	engine.GET("/login", userHandler.LoginForm)
	engine.POST("/login", userHandler.Login)
	engine.POST("/logout", userHandler.Logout)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService))

	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/new-transaction", transactionHandler.NewForm)
	authRoutes.POST("/new-transaction", transactionHandler.Create)

	authRoutes.GET("/new-account", accountHandler.NewForm)
	authRoutes.POST("/new-account", accountHandler.Create)

	authRoutes.GET("/new-asset", assetHandler.NewForm)
	authRoutes.POST("/new-asset", assetHandler.Create)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
