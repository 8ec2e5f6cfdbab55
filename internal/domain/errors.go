package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrAdminPurchase             = errors.New("admins cannot purchase courses")
	ErrAlreadySubscribed         = errors.New("course already purchased")
	ErrNotSubscribed             = errors.New("not subscribed to the course")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrPaymentClaimReused        = errors.New("payment already used for another purchase")
	ErrUpstream                  = errors.New("payment provider error")
	ErrInvalidOTP                = errors.New("invalid otp")
)

// PaymentConflictError is returned when the payment id is already recorded for another user or course.
type PaymentConflictError struct {
	Payment *Payment
}

func NewPaymentConflictError(payment *Payment) error {
	return &PaymentConflictError{Payment: payment}
}

func (e *PaymentConflictError) Error() string {
	return fmt.Sprintf(
		"payment %s already recorded for user %d course %d",
		e.Payment.ProviderPaymentID,
		e.Payment.UserID,
		e.Payment.CourseID,
	)
}

func (e *PaymentConflictError) Unwrap() error {
	return ErrPaymentClaimReused
}
