// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/web"
)

const dateLayout = "2006-01-02"

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID int64, accountNumber string) (domain.Account, error)
	Get(ctx context.Context, accountNumber string) (domain.Account, error)
	GetBalance(ctx context.Context, accountNumber string) (string, error)
	ListTransactions(ctx context.Context, accountNumber string, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type createUserIDRequest struct {
	UserID int64 `uri:"userId" binding:"required,min=1"`
}

type createAccountNumberRequest struct {
	AccountNumber string `form:"accountNumber" binding:"required"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq createUserIDRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq createAccountNumberRequest
	if err := gctx.ShouldBindQuery(&queryReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	account, err := h.service.Create(ctx, uriReq.UserID, queryReq.AccountNumber)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrAccountAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type accountNumberRequest struct {
	AccountNumber string `uri:"accountNumber" binding:"required"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req accountNumberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	account, err := h.service.Get(ctx, req.AccountNumber)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type balanceData struct {
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

// GetBalance handles http request to get the account balance.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req accountNumberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	balance, err := h.service.GetBalance(ctx, req.AccountNumber)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{req.AccountNumber, balance}})
}

// ListQueryRequest binds the shared pagination, ordering and date
// filter parameters of transaction listings.
type ListQueryRequest struct {
	Page      int32  `form:"page,default=0" binding:"min=0"`
	Size      int32  `form:"size,default=20" binding:"min=0,max=100"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=createdAt amount id"`
	Direction string `form:"direction" binding:"omitempty,oneof=asc desc"`
	FromDate  string `form:"fromDate"`
	ToDate    string `form:"toDate"`
}

// ToParams converts the query values into domain listing parameters.
func (r ListQueryRequest) ToParams() (domain.ListTransactionsParams, error) {
	fromDate, err := ParseDate(r.FromDate)
	if err != nil {
		return domain.ListTransactionsParams{}, err
	}

	toDate, err := ParseDate(r.ToDate)
	if err != nil {
		return domain.ListTransactionsParams{}, err
	}

	return domain.ListTransactionsParams{
		Page:      r.Page,
		Size:      r.Size,
		SortBy:    r.SortBy,
		Direction: r.Direction,
		FromDate:  fromDate,
		ToDate:    toDate,
	}, nil
}

// ParseDate parses an optional inclusive calendar date filter.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	return &date, nil
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int32                `json:"page"`
	Size         int32                `json:"size"`
}

// ListTransactions handles http request to list the account's transactions.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq accountNumberRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq ListQueryRequest
	if err := gctx.ShouldBindQuery(&queryReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	arg, err := queryReq.ToParams()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transactions, err := h.service.ListTransactions(ctx, uriReq.AccountNumber, arg)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInvalidPagination, domain.ErrInvalidSortField, domain.ErrInvalidDirection, domain.ErrInvalidDateRange:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions, arg.Page, arg.Size}})
}

func handleBindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.GetErrorMsg(ve))
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}
