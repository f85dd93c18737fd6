// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/passpkg"
	"github.com/clearledger/bank-office/pkg/tokenpkg"
	"github.com/clearledger/bank-office/pkg/web"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, username, hashedPassword, email string) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context, size, page int32) ([]domain.User, error)
	CheckPassword(ctx context.Context, username, password string) (domain.User, error)
	ListTransactions(ctx context.Context, userID int64, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service        Service
	tokenMaker     tokenpkg.Maker
	accessDuration time.Duration
}

// NewHandler returns user handler.
func NewHandler(us Service, tm tokenpkg.Maker, accessDuration time.Duration) *Handler {
	return &Handler{
		service:        us,
		tokenMaker:     tm,
		accessDuration: accessDuration,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

type userData struct {
	User domain.User `json:"user"`
}

// Register handles http request to register a user.
//
// The password is hashed at this boundary; the registry below only
// ever stores the hash.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	hashedPassword, err := passpkg.Hash(req.Password)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	user, err := h.service.Create(ctx, req.Username, hashedPassword, req.Email)
	if err != nil {
		switch err {
		case domain.ErrUsernameAlreadyExists, domain.ErrEmailAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: userData{user}})
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles http request to authenticate a user and issue an
// access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	user, err := h.service.CheckPassword(ctx, req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(user.Username, h.accessDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt.Format(time.RFC3339),
		Data:                 userData{user},
	})
}

type userIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a user by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req userIDRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	user, err := h.service.Get(ctx, req.ID)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: userData{user}})
}

type listRequest struct {
	Page int32 `form:"page,default=0" binding:"min=0"`
	Size int32 `form:"size,default=100" binding:"min=0,max=100"`
}

type usersData struct {
	Users []domain.User `json:"users"`
}

// List handles http request to list users.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	users, err := h.service.List(ctx, req.Size, req.Page)
	if err != nil {
		switch err {
		case domain.ErrInvalidPagination:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: usersData{users}})
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int32                `json:"page"`
	Size         int32                `json:"size"`
}

// ListTransactions handles http request to list transactions across
// all the user's accounts.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq userIDRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		handleBindError(gctx, l, err)
		return
	}

	var queryReq accountdelivery.ListQueryRequest
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

	transactions, err := h.service.ListTransactions(ctx, uriReq.ID, arg)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
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
