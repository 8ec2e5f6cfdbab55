package domain

import "time"

// CoursePurchasedEvent is enqueued together with an entitlement grant.
type CoursePurchasedEvent struct {
	UserID            int64     `json:"user_id"`
	CourseID          int64     `json:"course_id"`
	ProviderOrderID   string    `json:"provider_order_id"`
	ProviderPaymentID string    `json:"provider_payment_id"`
	PurchasedAt       time.Time `json:"purchased_at"`
}

// OTPMailEvent is consumed by the mailer which delivers the verification code.
type OTPMailEvent struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}
