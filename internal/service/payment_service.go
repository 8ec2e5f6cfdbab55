package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/internal/service/signature"
	"github.com/fsdevblog/learnmarket/pkg/uow"
)

const PurchaseSuccessMessage = "Course purchased successfully"

type PaymentService struct {
	uow    uow.UOW
	secret []byte
}

func NewPaymentService(u uow.UOW, secret []byte) (*PaymentService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("payment service: empty gateway secret")
	}
	return &PaymentService{
		uow:    u,
		secret: secret,
	}, nil
}

type Receipt struct {
	PaymentID       int64
	CourseID        int64
	AlreadyEnrolled bool
	Message         string
}

// VerifyAndEnroll checks the gateway signature of the claim and grants the user access to the course.
//
// userID and courseID come from the session and the request path, the claim only carries gateway ids.
//
// Algorithm:
//  1. Verify HMAC-SHA256(orderID|paymentID) against claim.Signature in constant time. A mismatch returns
//     domain.ErrPaymentVerificationFailed and nothing is written.
//  2. In one transaction: resolve user and course, record the payment, add the course to the subscription
//     set, enqueue the purchase event.
//  3. A claim that is already recorded for the same user and course is a resubmission: no rows are
//     written and the receipt has AlreadyEnrolled set. The same claim for another user or course returns
//     *domain.PaymentConflictError.
func (p *PaymentService) VerifyAndEnroll(
	ctx context.Context,
	userID, courseID int64,
	claim domain.PaymentClaim,
) (*Receipt, error) {
	if !signature.Verify(p.secret, claim.OrderID, claim.PaymentID, claim.Signature) {
		return nil, fmt.Errorf("verifying payment `%s`: %w", claim.PaymentID, domain.ErrPaymentVerificationFailed)
	}

	var receipt *Receipt
	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var grantErr error
		receipt, grantErr = p.enroll(c, tx, userID, courseID, claim)
		return grantErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("verifying payment `%s`: %w", claim.PaymentID, txErr)
	}
	return receipt, nil
}

func (p *PaymentService) enroll(
	ctx context.Context,
	tx uow.TX,
	userID, courseID int64,
	claim domain.PaymentClaim,
) (*Receipt, error) {
	user, course, resolveErr := p.resolve(ctx, tx, userID, courseID)
	if resolveErr != nil {
		return nil, resolveErr
	}

	paymentRepo, paymentRepoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
	if paymentRepoErr != nil {
		return nil, paymentRepoErr //nolint:wrapcheck
	}

	payment, created, createErr := paymentRepo.CreateIfNotExists(ctx, repoargs.CreatePayment{
		UserID:            user.ID,
		CourseID:          course.ID,
		ProviderOrderID:   claim.OrderID,
		ProviderPaymentID: claim.PaymentID,
		ProviderSignature: claim.Signature,
	})
	if createErr != nil {
		return nil, createErr //nolint:wrapcheck
	}
	if !created {
		return p.resubmission(ctx, paymentRepo, user, course, claim)
	}

	subRepo, subRepoErr := uow.GetAs[SubscriptionRepository](tx, uow.RepositoryName(repoargs.SubscriptionRepoName))
	if subRepoErr != nil {
		return nil, subRepoErr //nolint:wrapcheck
	}
	added, addErr := subRepo.Add(ctx, user.ID, course.ID)
	if addErr != nil {
		return nil, addErr //nolint:wrapcheck
	}

	// the course may already be subscribed through a parallel checkout with another order,
	// the payment is recorded anyway but the purchase is not announced twice.
	if added {
		if eventErr := p.enqueuePurchased(ctx, tx, payment); eventErr != nil {
			return nil, eventErr
		}
	}

	return &Receipt{
		PaymentID:       payment.ID,
		CourseID:        course.ID,
		AlreadyEnrolled: !added,
		Message:         PurchaseSuccessMessage,
	}, nil
}

// resolve loads user and course by trusted ids.
func (p *PaymentService) resolve(
	ctx context.Context,
	tx uow.TX,
	userID, courseID int64,
) (*domain.User, *domain.Course, error) {
	userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, nil, userRepoErr //nolint:wrapcheck
	}
	courseRepo, courseRepoErr := uow.GetAs[CourseRepository](tx, uow.RepositoryName(repoargs.CourseRepoName))
	if courseRepoErr != nil {
		return nil, nil, courseRepoErr //nolint:wrapcheck
	}

	user, userErr := userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, nil, userErr //nolint:wrapcheck
	}
	course, courseErr := courseRepo.FindByID(ctx, courseID)
	if courseErr != nil {
		return nil, nil, courseErr //nolint:wrapcheck
	}
	return user, course, nil
}

func (p *PaymentService) resubmission(
	ctx context.Context,
	paymentRepo PaymentRepository,
	user *domain.User,
	course *domain.Course,
	claim domain.PaymentClaim,
) (*Receipt, error) {
	existing, findErr := paymentRepo.FindByProviderPaymentID(ctx, claim.PaymentID)
	if findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}
	if existing.UserID != user.ID || existing.CourseID != course.ID || existing.ProviderOrderID != claim.OrderID {
		return nil, domain.NewPaymentConflictError(existing)
	}
	return &Receipt{
		PaymentID:       existing.ID,
		CourseID:        course.ID,
		AlreadyEnrolled: true,
		Message:         PurchaseSuccessMessage,
	}, nil
}

func (p *PaymentService) enqueuePurchased(ctx context.Context, tx uow.TX, payment *domain.Payment) error {
	outboxRepo, outboxRepoErr := uow.GetAs[OutboxRepository](tx, uow.RepositoryName(repoargs.OutboxRepoName))
	if outboxRepoErr != nil {
		return outboxRepoErr //nolint:wrapcheck
	}

	payload, marshalErr := json.Marshal(domain.CoursePurchasedEvent{
		UserID:            payment.UserID,
		CourseID:          payment.CourseID,
		ProviderOrderID:   payment.ProviderOrderID,
		ProviderPaymentID: payment.ProviderPaymentID,
		PurchasedAt:       time.Now().UTC(),
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal purchase event: %s", marshalErr.Error())
	}

	if _, err := outboxRepo.Create(ctx, repoargs.CreateOutboxEvent{
		EventType: domain.EventCoursePurchased,
		Payload:   payload,
	}); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
