package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/metrics"
	"github.com/fsdevblog/learnmarket/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

// checkoutTimeout covers the gateway call with its retries.
const checkoutTimeout = 15 * time.Second

type PaymentHandler struct {
	checkoutSvs CheckoutServicer
	paymentSvs  PaymentServicer
	recorder    PurchaseRecorder
}

func NewPaymentHandler(
	checkoutSvs CheckoutServicer,
	paymentSvs PaymentServicer,
	recorder PurchaseRecorder,
) *PaymentHandler {
	return &PaymentHandler{
		checkoutSvs: checkoutSvs,
		paymentSvs:  paymentSvs,
		recorder:    recorder,
	}
}

// Checkout POST RouteGroup + CheckoutRoute. Creates a gateway order for the course.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	courseID, ok := idParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, checkoutTimeout)
	defer cancel()

	result, err := h.checkoutSvs.Checkout(reqCtx, middlewares.CurrentUserID(c), courseID)
	if err != nil {
		h.recordCheckout(errorResult(err))
		abortWithServiceError(c, err)
		return
	}
	h.recordCheckout(metrics.ResultOK)

	c.JSON(http.StatusCreated, gin.H{
		"order":  newOrderResponse(result.Order),
		"course": newCourseResponse(result.Course),
	})
}

// PaymentVerificationParams limits match the payments table columns.
type PaymentVerificationParams struct {
	OrderID   string `binding:"required,max_bytes=64,provider_id=order" json:"razorpay_order_id"`
	PaymentID string `binding:"required,max_bytes=64,provider_id=pay"   json:"razorpay_payment_id"`
	Signature string `binding:"required,max_bytes=128"                  json:"razorpay_signature"`
}

// Verification POST RouteGroup + VerificationRoute. The user and course come from the session and the
// path, the body carries only the gateway claim.
func (h *PaymentHandler) Verification(c *gin.Context) {
	courseID, ok := idParam(c)
	if !ok {
		return
	}

	var params PaymentVerificationParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		h.recordVerification(errorResult(domain.ErrPaymentVerificationFailed))
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	receipt, err := h.paymentSvs.VerifyAndEnroll(reqCtx, middlewares.CurrentUserID(c), courseID, domain.PaymentClaim{
		OrderID:   params.OrderID,
		PaymentID: params.PaymentID,
		Signature: params.Signature,
	})
	if err != nil {
		h.recordVerification(errorResult(err))
		abortWithServiceError(c, err)
		return
	}
	h.recordVerification(metrics.ResultOK)

	c.JSON(http.StatusOK, gin.H{"message": receipt.Message})
}

func (h *PaymentHandler) recordCheckout(result string) {
	if h.recorder != nil {
		h.recorder.RecordCheckout(result)
	}
}

func (h *PaymentHandler) recordVerification(result string) {
	if h.recorder != nil {
		h.recorder.RecordVerification(result)
	}
}
