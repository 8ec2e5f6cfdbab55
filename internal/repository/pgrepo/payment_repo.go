package pgrepo

import (
	"context"
	"errors"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, created_at, user_id, course_id, provider_order_id, provider_payment_id, provider_signature`

type PaymentRepository struct {
	conn uow.DBTX
}

func NewPaymentRepository(conn uow.DBTX) *PaymentRepository {
	return &PaymentRepository{conn: conn}
}

// CreateIfNotExists inserts a payment record unless one with the same provider payment id exists.
// Returns the created record and true, or nil and false when the payment id is already recorded.
// Concurrent inserts of the same payment id wait on the unique index, so exactly one of them wins.
func (p *PaymentRepository) CreateIfNotExists(
	ctx context.Context,
	args repoargs.CreatePayment,
) (*domain.Payment, bool, error) {
	const query = `INSERT INTO payments (user_id, course_id, provider_order_id, provider_payment_id, provider_signature)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (provider_payment_id) DO NOTHING
RETURNING ` + paymentColumns

	row := p.conn.QueryRow(
		ctx,
		query,
		args.UserID,
		args.CourseID,
		args.ProviderOrderID,
		args.ProviderPaymentID,
		args.ProviderSignature,
	)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, convertErr(err, "creating payment `%s`", args.ProviderPaymentID)
	}
	return payment, true, nil
}

func (p *PaymentRepository) FindByProviderPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE provider_payment_id = $1`, paymentID)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "finding payment by provider payment id `%s`", paymentID)
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	if err := row.Scan(
		&payment.ID,
		&payment.CreatedAt,
		&payment.UserID,
		&payment.CourseID,
		&payment.ProviderOrderID,
		&payment.ProviderPaymentID,
		&payment.ProviderSignature,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &payment, nil
}
