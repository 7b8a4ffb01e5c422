// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/clientdelivery"
	"github.com/go-petr/pet-ledger/internal/clientrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/entryrepo"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/operatordelivery"
	"github.com/go-petr/pet-ledger/internal/operatorservice"
	"github.com/go-petr/pet-ledger/internal/reportdelivery"
	"github.com/go-petr/pet-ledger/internal/reportservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	// DB is nil when the server runs on in-memory storage.
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type backed by PostgreSQL with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	server, err := build(
		clientrepo.NewRepoPGS(conn),
		accountrepo.NewRepoPGS(conn),
		entryrepo.NewRepoPGS(conn),
		logger,
		config,
	)
	if err != nil {
		return nil, err
	}

	server.DB = conn

	return server, nil
}

// NewInMemory creates Server type backed by in-memory storage.
// All data is lost when the process exits.
func NewInMemory(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	entries := entryrepo.NewRepoMem()

	return build(
		clientrepo.NewRepoMem(),
		accountrepo.NewRepoMem(entries),
		entries,
		logger,
		config,
	)
}

func build(
	cr ledgerservice.ClientRepo,
	ar ledgerservice.AccountRepo,
	er ledgerservice.EntryRepo,
	logger zerolog.Logger,
	config configpkg.Config,
) (*Server, error) {
	policy := domain.ClosePolicy(config.ClosePolicy)
	if policy != domain.RequireZeroBalance && policy != domain.AllowWriteOff {
		return nil, fmt.Errorf("unsupported close policy %q", config.ClosePolicy)
	}

	locale, err := language.Parse(config.Locale)
	if err != nil {
		return nil, fmt.Errorf("cannot parse locale %q: %w", config.Locale, err)
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	ledgerService := ledgerservice.New(cr, ar, er, policy)
	reportService := reportservice.New(ledgerService, reportservice.NewEngine(locale))
	operatorService := operatorservice.New(
		config.OperatorUsername,
		config.OperatorPasswordHash,
		tokenMaker,
		config.AccessTokenDuration,
	)

	clientHandler := clientdelivery.NewHandler(ledgerService, reportService)
	accountHandler := accountdelivery.NewHandler(ledgerService)
	reportHandler := reportdelivery.NewHandler(reportService)
	operatorHandler := operatordelivery.NewHandler(operatorService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/operators/login", operatorHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/store", storeHandler(config))

	authRoutes.POST("/clients", clientHandler.Create)
	authRoutes.GET("/clients", clientHandler.List)
	authRoutes.GET("/clients/:id", clientHandler.Get)
	authRoutes.PUT("/clients/:id", clientHandler.Update)
	authRoutes.GET("/clients/:id/accounts", accountHandler.ListForClient)
	authRoutes.POST("/clients/:id/accounts", accountHandler.Open)

	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.POST("/accounts/:id/charges", accountHandler.Charge)
	authRoutes.POST("/accounts/:id/payments", accountHandler.Pay)
	authRoutes.POST("/accounts/:id/close", accountHandler.Close)
	authRoutes.GET("/accounts/:id/entries", accountHandler.ListEntries)

	authRoutes.GET("/reports/summary", reportHandler.Summary)
	authRoutes.GET("/reports/closed-accounts", reportHandler.ClosedAccounts)

	if err := registerValidators(); err != nil {
		return nil, err
	}

	server := &Server{
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
	}

	return server, nil
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds custom binding tags to gin's shared validator.
func registerValidators() error {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("amount", moneypkg.ValidAmount); err != nil {
				validatorsErr = fmt.Errorf("cannot register amount validator: %w", err)
			}
		}
	})

	return validatorsErr
}

type store struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// storeHandler serves the shop identity shown by clients of the API.
func storeHandler(config configpkg.Config) gin.HandlerFunc {
	res := struct {
		Data struct {
			Store store `json:"store"`
		} `json:"data"`
	}{}
	res.Data.Store = store{Name: config.StoreName, LogoURL: config.StoreLogoURL}

	return func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, res)
	}
}
