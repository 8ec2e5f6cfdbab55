package paygate

import "github.com/fsdevblog/learnmarket/internal/domain"

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func (r orderResponse) toDomain() *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		Entity:    r.Entity,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Receipt:   r.Receipt,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
