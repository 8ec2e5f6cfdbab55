package api

import (
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
)

type UserResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Subscription []int64   `json:"subscription"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	subscription := u.Subscription
	if subscription == nil {
		subscription = []int64{}
	}
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Subscription: subscription,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type CourseResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedBy   string    `json:"createdBy"`
	Image       string    `json:"image"`
	Duration    int32     `json:"duration"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		CreatedBy:   c.CreatedBy,
		Image:       c.Image,
		Duration:    c.Duration,
		Price:       c.Price.InexactFloat64(),
		CreatedAt:   c.CreatedAt,
	}
}

type LectureResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Video       string    `json:"video"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newLectureResponse(l *domain.Lecture) LectureResponse {
	return LectureResponse{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		Video:       l.Video,
		CreatedAt:   l.CreatedAt,
	}
}

type OrderResponse struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func newOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		Entity:    o.Entity,
		Amount:    o.Amount,
		Currency:  o.Currency,
		Receipt:   o.Receipt,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

type StatsResponse struct {
	TotalCourses  int64 `json:"totalCourses"`
	TotalLectures int64 `json:"totalLectures"`
	TotalUsers    int64 `json:"totalUsers"`
}

func newStatsResponse(s *domain.Stats) StatsResponse {
	return StatsResponse{
		TotalCourses:  s.TotalCourses,
		TotalLectures: s.TotalLectures,
		TotalUsers:    s.TotalUsers,
	}
}
