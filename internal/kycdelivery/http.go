// Package kycdelivery manages delivery layer of KYC verification.
package kycdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/web"
)

// Service provides service layer interface needed by KYC delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package kycdelivery
type Service interface {
	Submit(ctx context.Context, arg domain.CreateKYCParams) (domain.KYCRecord, error)
	Verify(ctx context.Context, kycID int64, approved bool) (domain.KYCRecord, error)
	GetByUser(ctx context.Context, userID int64) ([]domain.KYCRecord, error)
}

// Handler facilitates KYC delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns KYC handler.
func NewHandler(ks Service) *Handler {
	return &Handler{service: ks}
}

type userIDRequest struct {
	UserID int64 `uri:"userId" binding:"required,min=1"`
}

type submitRequest struct {
	DocumentType   string `json:"documentType" binding:"required,doctype"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
	Address        string `json:"address" binding:"required"`
}

type recordData struct {
	KYC domain.KYCRecord `json:"kyc"`
}

// Submit handles http request to submit a KYC document.
func (h *Handler) Submit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq userIDRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var req submitRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	record, err := h.service.Submit(ctx, domain.CreateKYCParams{
		UserID:         uriReq.UserID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
	})
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInvalidDocumentType, domain.ErrMissingDocumentData:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: recordData{record}})
}

type verifyURIRequest struct {
	KYCID int64 `uri:"kycId" binding:"required,min=1"`
}

type verifyQueryRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

// Verify handles http request to decide a PENDING KYC record.
func (h *Handler) Verify(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq verifyURIRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq verifyQueryRequest
	if err := gctx.ShouldBindQuery(&queryReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	record, err := h.service.Verify(ctx, uriReq.KYCID, *queryReq.Approved)
	if err != nil {
		switch err {
		case domain.ErrKYCNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrKYCAlreadyDecided:
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: recordData{record}})
}

type recordsData struct {
	KYCRecords []domain.KYCRecord `json:"kycRecords"`
}

// GetByUser handles http request to list the user's KYC records.
func (h *Handler) GetByUser(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq userIDRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	records, err := h.service.GetByUser(ctx, uriReq.UserID)
	if err != nil {
		switch err {
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: recordsData{records}})
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
