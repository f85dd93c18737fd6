// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/accountrepo"
	"github.com/clearledger/bank-office/internal/accountservice"
	"github.com/clearledger/bank-office/internal/kycdelivery"
	"github.com/clearledger/bank-office/internal/kycrepo"
	"github.com/clearledger/bank-office/internal/kycservice"
	"github.com/clearledger/bank-office/internal/middleware"
	"github.com/clearledger/bank-office/internal/statementdelivery"
	"github.com/clearledger/bank-office/internal/statementservice"
	"github.com/clearledger/bank-office/internal/transactiondelivery"
	"github.com/clearledger/bank-office/internal/transactionrepo"
	"github.com/clearledger/bank-office/internal/transactionservice"
	"github.com/clearledger/bank-office/internal/userdelivery"
	"github.com/clearledger/bank-office/internal/userrepo"
	"github.com/clearledger/bank-office/internal/userservice"
	"github.com/clearledger/bank-office/pkg/configpkg"
	"github.com/clearledger/bank-office/pkg/pdfpkg"
	"github.com/clearledger/bank-office/pkg/tokenpkg"
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
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	kycRepo := kycrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo, transactionRepo)
	accountService := accountservice.New(accountRepo, transactionRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)
	kycService := kycservice.New(kycRepo)
	statementService := statementservice.New(transactionRepo, accountService)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	kycHandler := kycdelivery.NewHandler(kycService)
	statementHandler := statementdelivery.NewHandler(statementService, pdfpkg.NewStatementRenderer())

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api")

	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)

	authRoutes := api.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/users", userHandler.List)
	authRoutes.GET("/users/:id", userHandler.Get)
	authRoutes.GET("/users/:id/transactions", userHandler.ListTransactions)

	authRoutes.POST("/accounts/create/:userId", accountHandler.Create)
	authRoutes.GET("/accounts/:accountNumber", accountHandler.Get)
	authRoutes.GET("/accounts/:accountNumber/balance", accountHandler.GetBalance)
	authRoutes.GET("/accounts/:accountNumber/transactions", accountHandler.ListTransactions)
	authRoutes.GET("/accounts/:accountNumber/statement/pdf", statementHandler.GetPDF)

	authRoutes.POST("/transactions/deposit/:accountNumber", transactionHandler.Deposit)
	authRoutes.POST("/transactions/withdraw/:accountNumber", transactionHandler.Withdraw)
	authRoutes.POST("/transactions/transfer", transactionHandler.Transfer)

	authRoutes.POST("/kyc/submit/:userId", kycHandler.Submit)
	authRoutes.POST("/kyc/verify/:kycId", kycHandler.Verify)
	authRoutes.GET("/kyc/user/:userId", kycHandler.GetByUser)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("doctype", kycdelivery.ValidDocumentType)
		if err != nil {
			return nil, errors.New("cannot register document type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
