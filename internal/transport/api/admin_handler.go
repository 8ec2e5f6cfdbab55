package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	courseSvs CourseServicer
}

func NewAdminHandler(courseSvs CourseServicer) *AdminHandler {
	return &AdminHandler{
		courseSvs: courseSvs,
	}
}

// Stats GET RouteGroup + AdminStatsRoute. Admins only.
func (h *AdminHandler) Stats(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	stats, err := h.courseSvs.Stats(reqCtx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": newStatsResponse(stats)})
}
