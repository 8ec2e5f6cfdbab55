package pgrepo

import (
	"context"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const lectureSelect = `SELECT id, created_at, course_id, title, description, video FROM lectures `

type LectureRepository struct {
	conn uow.DBTX
}

func NewLectureRepository(conn uow.DBTX) *LectureRepository {
	return &LectureRepository{conn: conn}
}

func (l *LectureRepository) FindByID(ctx context.Context, id int64) (*domain.Lecture, error) {
	lecture, err := scanLecture(l.conn.QueryRow(ctx, lectureSelect+`WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding lecture by id %d", id)
	}
	return lecture, nil
}

// GetByCourseID returns course lectures in creation order.
func (l *LectureRepository) GetByCourseID(ctx context.Context, courseID int64) ([]domain.Lecture, error) {
	rows, err := l.conn.Query(ctx, lectureSelect+`WHERE course_id = $1 ORDER BY created_at, id`, courseID)
	if err != nil {
		return nil, convertErr(err, "getting lectures by course id %d", courseID)
	}
	lectures, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Lecture, error) {
		lecture, scanErr := scanLecture(row)
		if scanErr != nil {
			return domain.Lecture{}, scanErr
		}
		return *lecture, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "collecting lectures by course id %d", courseID)
	}
	return lectures, nil
}

func (l *LectureRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := l.conn.QueryRow(ctx, `SELECT count(*) FROM lectures`).Scan(&total); err != nil {
		return 0, convertErr(err, "counting lectures")
	}
	return total, nil
}

func scanLecture(row pgx.Row) (*domain.Lecture, error) {
	var lecture domain.Lecture
	if err := row.Scan(
		&lecture.ID,
		&lecture.CreatedAt,
		&lecture.CourseID,
		&lecture.Title,
		&lecture.Description,
		&lecture.Video,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &lecture, nil
}
