package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
)

const (
	DefaultOutboxMaxAttempts int32 = 10
	// DefaultOutboxLease must outlast one relay iteration, otherwise events are published twice.
	DefaultOutboxLease = time.Minute
)

type OutboxService struct {
	uow         uow.UOW
	outboxRepo  OutboxRepository
	maxAttempts int32
	lease       time.Duration
}

func NewOutboxService(u uow.UOW, maxAttempts int32) (*OutboxService, error) {
	outboxRepo, err := uow.GetRepositoryAs[OutboxRepository](u, uow.RepositoryName(repoargs.OutboxRepoName))
	if err != nil {
		return nil, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultOutboxMaxAttempts
	}
	return &OutboxService{
		uow:         u,
		outboxRepo:  outboxRepo,
		maxAttempts: maxAttempts,
		lease:       DefaultOutboxLease,
	}, nil
}

// SetLease sets how long claimed events stay hidden from other relays.
func (o *OutboxService) SetLease(lease time.Duration) *OutboxService {
	o.lease = lease
	return o
}

// PendingEvents claims up to limit events waiting for delivery. Claimed events are not returned again
// until the lease expires or Complete records a failed delivery, so several relays can share the table.
func (o *OutboxService) PendingEvents(ctx context.Context, limit uint) ([]domain.OutboxEvent, error) {
	if limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	events, err := o.outboxRepo.ClaimPending(ctx, int32(limit), o.maxAttempts, o.lease) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("pending outbox events: %w", err)
	}
	return events, nil
}

type DeliveryResult struct {
	EventID int64
	Error   error
}

// Complete stores delivery results: delivered events are marked as sent, failed ones get their attempt
// counter incremented. Both updates run in one transaction.
func (o *OutboxService) Complete(ctx context.Context, results []DeliveryResult) error {
	sentIDs, failedIDs := splitDeliveryResults(results)
	if len(sentIDs) == 0 && len(failedIDs) == 0 {
		return nil
	}

	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[OutboxRepository](tx, uow.RepositoryName(repoargs.OutboxRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if len(sentIDs) > 0 {
			if err := repo.MarkSent(c, sentIDs); err != nil {
				return err //nolint:wrapcheck
			}
		}
		if len(failedIDs) > 0 {
			if err := repo.IncrementAttempts(c, failedIDs); err != nil {
				return err //nolint:wrapcheck
			}
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("completing outbox events: %w", txErr)
	}
	return nil
}

func splitDeliveryResults(results []DeliveryResult) ([]int64, []int64) {
	var sentIDs = make([]int64, 0, len(results))
	var failedIDs = make([]int64, 0, len(results))
	for _, result := range results {
		if result.Error == nil {
			sentIDs = append(sentIDs, result.EventID)
		} else {
			failedIDs = append(failedIDs, result.EventID)
		}
	}
	return sentIDs, failedIDs
}
