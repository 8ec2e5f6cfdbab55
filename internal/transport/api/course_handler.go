package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/learnmarket/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseSvs CourseServicer
}

func NewCourseHandler(courseSvs CourseServicer) *CourseHandler {
	return &CourseHandler{
		courseSvs: courseSvs,
	}
}

// MyCourses GET RouteGroup + MyCoursesRoute.
func (h *CourseHandler) MyCourses(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	courses, err := h.courseSvs.MyCourses(reqCtx, middlewares.CurrentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	var response = make([]CourseResponse, len(courses))
	for i := range courses {
		response[i] = newCourseResponse(&courses[i])
	}
	c.JSON(http.StatusOK, gin.H{"courses": response})
}

// Lectures GET RouteGroup + LecturesRoute.
func (h *CourseHandler) Lectures(c *gin.Context) {
	courseID, ok := idParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	lectures, err := h.courseSvs.Lectures(reqCtx, middlewares.CurrentUserID(c), courseID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	var response = make([]LectureResponse, len(lectures))
	for i := range lectures {
		response[i] = newLectureResponse(&lectures[i])
	}
	c.JSON(http.StatusOK, gin.H{"lectures": response})
}

// Lecture GET RouteGroup + LectureRoute.
func (h *CourseHandler) Lecture(c *gin.Context) {
	lectureID, ok := idParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	lecture, err := h.courseSvs.Lecture(reqCtx, middlewares.CurrentUserID(c), lectureID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lecture": newLectureResponse(lecture)})
}
