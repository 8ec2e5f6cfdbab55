package repoargs

type CreatePayment struct {
	UserID            int64
	CourseID          int64
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
}
