// Package transactiondelivery manages delivery layer of the deposit,
// withdraw and transfer operations.
package transactiondelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error)
	Withdraw(ctx context.Context, accountNumber, amount string) (domain.TransactionResult, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type accountNumberRequest struct {
	AccountNumber string `uri:"accountNumber" binding:"required"`
}

type amountRequest struct {
	Amount string `form:"amount" binding:"required"`
}

type resultData struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.mutate(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.mutate(gctx, h.service.Withdraw)
}

func (h *Handler) mutate(gctx *gin.Context, op func(context.Context, string, string) (domain.TransactionResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq accountNumberRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq amountRequest
	if err := gctx.ShouldBindQuery(&queryReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	result, err := op(ctx, uriReq.AccountNumber, queryReq.Amount)
	if err != nil {
		writeOperationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: resultData{result.Account, result.Transaction}})
}

type transferRequest struct {
	FromAccount string      `json:"fromAccount" binding:"required"`
	ToAccount   string      `json:"toAccount" binding:"required"`
	Amount      json.Number `json:"amount" binding:"required"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// Transfer handles http request to transfer money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	arg := domain.CreateTransferParams{
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount.String(),
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		writeOperationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}

func writeOperationError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrSameAccountTransfer:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errorspkg.ErrUnavailable:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
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
