package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
)

// CourseService serves course content gated by the subscription set.
type CourseService struct {
	userRepo    UserRepository
	courseRepo  CourseRepository
	lectureRepo LectureRepository
}

func NewCourseService(u uow.UOW) (*CourseService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	courseRepo, courseRepoErr := uow.GetRepositoryAs[CourseRepository](u, uow.RepositoryName(repoargs.CourseRepoName))
	if courseRepoErr != nil {
		return nil, courseRepoErr
	}
	lectureRepo, lectureRepoErr :=
		uow.GetRepositoryAs[LectureRepository](u, uow.RepositoryName(repoargs.LectureRepoName))
	if lectureRepoErr != nil {
		return nil, lectureRepoErr
	}
	return &CourseService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
	}, nil
}

// MyCourses returns the courses from the user's subscription set.
func (c *CourseService) MyCourses(ctx context.Context, userID int64) ([]domain.Course, error) {
	user, userErr := c.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("my courses: %w", userErr)
	}
	courses, err := c.courseRepo.GetByIDs(ctx, user.Subscription)
	if err != nil {
		return nil, fmt.Errorf("my courses: %w", err)
	}
	return courses, nil
}

// Lectures returns the course lectures to admins and subscribers, domain.ErrNotSubscribed to anyone else.
func (c *CourseService) Lectures(ctx context.Context, userID, courseID int64) ([]domain.Lecture, error) {
	user, userErr := c.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("course %d lectures: %w", courseID, userErr)
	}
	if _, courseErr := c.courseRepo.FindByID(ctx, courseID); courseErr != nil {
		return nil, fmt.Errorf("course %d lectures: %w", courseID, courseErr)
	}
	if !user.CanAccessCourse(courseID) {
		return nil, fmt.Errorf("course %d lectures: %w", courseID, domain.ErrNotSubscribed)
	}

	lectures, err := c.lectureRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course %d lectures: %w", courseID, err)
	}
	return lectures, nil
}

// Stats counts courses, lectures and users for the admin dashboard.
func (c *CourseService) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	var err error
	if stats.TotalCourses, err = c.courseRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if stats.TotalLectures, err = c.lectureRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if stats.TotalUsers, err = c.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &stats, nil
}

// Lecture returns a single lecture if the user may access its course.
func (c *CourseService) Lecture(ctx context.Context, userID, lectureID int64) (*domain.Lecture, error) {
	lecture, lectureErr := c.lectureRepo.FindByID(ctx, lectureID)
	if lectureErr != nil {
		return nil, fmt.Errorf("lecture %d: %w", lectureID, lectureErr)
	}
	user, userErr := c.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("lecture %d: %w", lectureID, userErr)
	}
	if !user.CanAccessCourse(lecture.CourseID) {
		return nil, fmt.Errorf("lecture %d: %w", lectureID, domain.ErrNotSubscribed)
	}
	return lecture, nil
}
