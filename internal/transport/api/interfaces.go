package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/service"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (string, error)
	Verify(ctx context.Context, args service.VerifyUserArgs) (*domain.User, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

type CourseServicer interface {
	MyCourses(ctx context.Context, userID int64) ([]domain.Course, error)
	Lectures(ctx context.Context, userID, courseID int64) ([]domain.Lecture, error)
	Lecture(ctx context.Context, userID, lectureID int64) (*domain.Lecture, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

type CheckoutServicer interface {
	Checkout(ctx context.Context, userID, courseID int64) (*service.CheckoutResult, error)
}

type PaymentServicer interface {
	VerifyAndEnroll(
		ctx context.Context,
		userID, courseID int64,
		claim domain.PaymentClaim,
	) (*service.Receipt, error)
}

// PurchaseRecorder counts checkout and verification outcomes.
type PurchaseRecorder interface {
	RecordCheckout(result string)
	RecordVerification(result string)
}
