package pgrepo

import (
	"context"

	"github.com/fsdevblog/learnmarket/pkg/uow"
)

type SubscriptionRepository struct {
	conn uow.DBTX
}

func NewSubscriptionRepository(conn uow.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{conn: conn}
}

// Add puts the course into the user's subscription set. The set is keyed by (user_id, course_id),
// adding an existing pair is a no-op. Returns true if the pair was inserted.
func (s *SubscriptionRepository) Add(ctx context.Context, userID, courseID int64) (bool, error) {
	tag, err := s.conn.Exec(ctx, `INSERT INTO subscriptions (user_id, course_id)
VALUES ($1, $2)
ON CONFLICT (user_id, course_id) DO NOTHING`, userID, courseID)
	if err != nil {
		return false, convertErr(err, "adding course %d to user %d subscription", courseID, userID)
	}
	return tag.RowsAffected() == 1, nil
}
