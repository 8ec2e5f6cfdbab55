package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/google/uuid"
)

const DefaultCurrency = "INR"

type CheckoutService struct {
	userRepo   UserRepository
	courseRepo CourseRepository
	provider   PaymentProvider
	currency   string
}

func NewCheckoutService(u uow.UOW, provider PaymentProvider, currency string) (*CheckoutService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	courseRepo, courseRepoErr := uow.GetRepositoryAs[CourseRepository](u, uow.RepositoryName(repoargs.CourseRepoName))
	if courseRepoErr != nil {
		return nil, courseRepoErr
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &CheckoutService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		provider:   provider,
		currency:   currency,
	}, nil
}

type CheckoutResult struct {
	Order  *domain.Order
	Course *domain.Course
}

// Checkout creates a payment gateway order for the course price. Nothing is written locally, an abandoned
// checkout needs no cleanup.
//
// Errors:
//   - domain.ErrRecordNotFound: user or course does not exist.
//   - domain.ErrAdminPurchase: admins cannot buy courses.
//   - domain.ErrAlreadySubscribed: the course is already in the user's subscription.
//   - domain.ErrUpstream: the gateway call failed.
func (c *CheckoutService) Checkout(ctx context.Context, userID, courseID int64) (*CheckoutResult, error) {
	user, userErr := c.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("checkout: %w", userErr)
	}
	course, courseErr := c.courseRepo.FindByID(ctx, courseID)
	if courseErr != nil {
		return nil, fmt.Errorf("checkout: %w", courseErr)
	}

	if user.IsAdmin() {
		return nil, fmt.Errorf("checkout: user %d: %w", user.ID, domain.ErrAdminPurchase)
	}
	if user.IsSubscribed(course.ID) {
		return nil, fmt.Errorf("checkout: user %d course %d: %w", user.ID, course.ID, domain.ErrAlreadySubscribed)
	}

	order, orderErr := c.provider.CreateOrder(ctx, domain.CreateOrderArgs{
		Amount:   course.MinorUnits(),
		Currency: c.currency,
		Receipt:  uuid.NewString(),
		Notes: map[string]string{
			"user_id":   strconv.FormatInt(user.ID, 10),
			"course_id": strconv.FormatInt(course.ID, 10),
		},
	})
	if orderErr != nil {
		return nil, fmt.Errorf("checkout: %w: %s", domain.ErrUpstream, orderErr.Error())
	}

	return &CheckoutResult{
		Order:  order,
		Course: course,
	}, nil
}
