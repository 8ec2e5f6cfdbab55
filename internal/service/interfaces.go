package service

import (
	"context"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

// PaymentProvider creates orders on the payment gateway side. The shared secret used for claim
// verification is never passed through it.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, args domain.CreateOrderArgs) (*domain.Order, error)
}

// Publisher delivers a message to the broker queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CourseRepository interface {
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Course, error)
}

type LectureRepository interface {
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Lecture, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]domain.Lecture, error)
}

type PaymentRepository interface {
	CreateIfNotExists(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, bool, error)
	FindByProviderPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error)
}

type SubscriptionRepository interface {
	Add(ctx context.Context, userID, courseID int64) (bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, args repoargs.CreateOutboxEvent) (*domain.OutboxEvent, error)
	ClaimPending(ctx context.Context, limit, maxAttempts int32, lease time.Duration) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []int64) error
	IncrementAttempts(ctx context.Context, ids []int64) error
}
