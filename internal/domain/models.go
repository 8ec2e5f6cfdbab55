package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Password  string
	Role      RoleType
	// Subscription holds ids of purchased courses, without duplicates.
	Subscription []int64
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSubscribed reports whether the course is in the user's subscription set.
func (u *User) IsSubscribed(courseID int64) bool {
	return slices.Contains(u.Subscription, courseID)
}

// CanAccessCourse admins see every course, students only the purchased ones.
func (u *User) CanAccessCourse(courseID int64) bool {
	return u.IsAdmin() || u.IsSubscribed(courseID)
}

type Course struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Description string
	Category    string
	CreatedBy   string
	Image       string
	Duration    int32
	Price       decimal.Decimal
}

// MinorUnits returns the course price in the smallest currency unit (price * 100).
func (c *Course) MinorUnits() int64 {
	return c.Price.Shift(minorUnitsExp).Round(0).IntPart()
}

type Lecture struct {
	ID          int64
	CreatedAt   time.Time
	CourseID    int64
	Title       string
	Description string
	Video       string
}

// Order is the payment provider's order handle. It is never persisted locally.
type Order struct {
	ID        string
	Entity    string
	Amount    int64
	Currency  string
	Receipt   string
	Status    string
	CreatedAt int64
}

// PaymentClaim is the callback payload the client receives from the provider after paying.
type PaymentClaim struct {
	OrderID   string
	PaymentID string
	Signature string
}

type Payment struct {
	ID                int64
	CreatedAt         time.Time
	UserID            int64
	CourseID          int64
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
}

// OutboxEvent LockedUntil is set while a relay instance holds the event for delivery.
type OutboxEvent struct {
	ID          int64
	CreatedAt   time.Time
	EventType   EventType
	Payload     []byte
	Attempts    int32
	LockedUntil *time.Time
	SentAt      *time.Time
}

type CreateOrderArgs struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalCourses  int64
	TotalLectures int64
	TotalUsers    int64
}
