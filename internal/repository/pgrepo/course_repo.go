package pgrepo

import (
	"context"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const courseSelect = `SELECT id, created_at, updated_at, title, description, category, created_by, image, duration, price
FROM courses
`

type CourseRepository struct {
	conn uow.DBTX
}

func NewCourseRepository(conn uow.DBTX) *CourseRepository {
	return &CourseRepository{conn: conn}
}

func (c *CourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := scanCourse(c.conn.QueryRow(ctx, courseSelect+`WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding course by id %d", id)
	}
	return course, nil
}

// GetByIDs returns the existing courses among ids ordered by id. Unknown ids are skipped.
func (c *CourseRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	rows, err := c.conn.Query(ctx, courseSelect+`WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, convertErr(err, "getting courses by ids %v", ids)
	}
	courses, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Course, error) {
		course, scanErr := scanCourse(row)
		if scanErr != nil {
			return domain.Course{}, scanErr
		}
		return *course, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "collecting courses by ids %v", ids)
	}
	return courses, nil
}

func (c *CourseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := c.conn.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&total); err != nil {
		return 0, convertErr(err, "counting courses")
	}
	return total, nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.CreatedBy,
		&course.Image,
		&course.Duration,
		&course.Price,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &course, nil
}
