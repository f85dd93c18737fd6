// Package statementdelivery manages delivery layer of account statements.
package statementdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/web"
)

// Service provides service layer interface needed by statement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	Generate(ctx context.Context, accountNumber string, fromDate, toDate *time.Time) (domain.Statement, error)
}

// Renderer turns a statement into a downloadable PDF document.
type Renderer interface {
	Render(statement domain.Statement) ([]byte, error)
}

// Handler facilitates statement delivery layer logic.
type Handler struct {
	service  Service
	renderer Renderer
}

// NewHandler returns statement handler.
func NewHandler(ss Service, r Renderer) *Handler {
	return &Handler{
		service:  ss,
		renderer: r,
	}
}

type statementURIRequest struct {
	AccountNumber string `uri:"accountNumber" binding:"required"`
}

type statementQueryRequest struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
}

// GetPDF handles http request to download the account statement as a
// PDF attachment.
func (h *Handler) GetPDF(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq statementURIRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq statementQueryRequest
	if err := gctx.ShouldBindQuery(&queryReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	fromDate, err := accountdelivery.ParseDate(queryReq.FromDate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	toDate, err := accountdelivery.ParseDate(queryReq.ToDate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	statement, err := h.service.Generate(ctx, uriReq.AccountNumber, fromDate, toDate)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInvalidDateRange:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	document, err := h.renderer.Render(statement)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	filename := fmt.Sprintf("statement-%s.pdf", statement.AccountNumber)
	gctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	gctx.Data(http.StatusOK, "application/pdf", document)
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
