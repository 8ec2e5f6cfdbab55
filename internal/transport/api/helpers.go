package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

// publicErrors maps domain errors to a status and the message shown to the client.
var publicErrors = []struct {
	err    error
	status int
	msg    string
}{
	{err: domain.ErrRecordNotFound, status: http.StatusNotFound, msg: "not found"},
	{err: domain.ErrAdminPurchase, status: http.StatusForbidden, msg: "Admins cannot purchase courses"},
	{err: domain.ErrNotSubscribed, status: http.StatusForbidden, msg: "You are not subscribed to this course"},
	{err: domain.ErrAlreadySubscribed, status: http.StatusConflict, msg: "You already have this course"},
	{err: domain.ErrPaymentClaimReused, status: http.StatusConflict, msg: "Payment already used for another purchase"},
	{err: domain.ErrPaymentVerificationFailed, status: http.StatusBadRequest, msg: "Payment verification failed"},
	{err: domain.ErrInvalidOTP, status: http.StatusBadRequest, msg: "Wrong otp"},
	{err: domain.ErrDuplicateKey, status: http.StatusConflict, msg: "User already exists"},
}

// abortWithServiceError aborts with the status matching err. The public message goes first so the Errors
// middleware renders it, the original error stays private. Unknown errors become 500, gateway failures 502.
func abortWithServiceError(c *gin.Context, err error) {
	for _, pe := range publicErrors {
		if errors.Is(err, pe.err) {
			_ = c.AbortWithError(pe.status, errors.New(pe.msg)).SetType(gin.ErrorTypePublic)
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			return
		}
	}
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrUpstream) {
		status = http.StatusBadGateway
	}
	_ = c.AbortWithError(status, err).SetType(gin.ErrorTypePrivate)
}

// errorResult is a short label of err used in metrics.
func errorResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		return "rejected"
	case errors.Is(err, domain.ErrPaymentClaimReused):
		return "reused"
	case errors.Is(err, domain.ErrAdminPurchase), errors.Is(err, domain.ErrNotSubscribed):
		return "forbidden"
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return "conflict"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	default:
		return "failed"
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidID).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}
