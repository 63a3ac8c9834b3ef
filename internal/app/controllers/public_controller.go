package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/services"
	"github.com/dcbcollege/noticeboard/internal/middleware"
	"github.com/dcbcollege/noticeboard/internal/pkg/helpers"
)

// PublicController serves the read-only endpoints of the college website.
type PublicController struct {
	notificationService services.NotificationService
	facultyService      services.FacultyService
}

// NewPublicController creates a new PublicController
func NewPublicController(notifications services.NotificationService, faculty services.FacultyService) *PublicController {
	return &PublicController{
		notificationService: notifications,
		facultyService:      faculty,
	}
}

// ListNotices serves the filtered, paginated notice board page. The page
// size is fixed; only the page number comes from the query.
func (pc *PublicController) ListNotices(c *gin.Context) {
	page, _ := helpers.ParsePaginationParams(c)

	filter := dto.NoticeFilter{
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: services.PublicPageSize,
	}

	resp, err := pc.notificationService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LatestNotices serves the home page feed.
func (pc *PublicController) LatestNotices(c *gin.Context) {
	notices, err := pc.notificationService.Latest(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notices": notices})
}

// NoticeDetail serves one notice with its attachment list.
func (pc *PublicController) NoticeDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid notification ID"))
		return
	}

	resp, err := pc.notificationService.Detail(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFaculty serves the public faculty directory for one department,
// active profiles only.
func (pc *PublicController) ListFaculty(c *gin.Context) {
	resp, err := pc.facultyService.ListByDepartment(c.Request.Context(), c.Query("department"), true)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
