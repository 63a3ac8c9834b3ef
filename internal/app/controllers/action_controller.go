package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/services"
	"github.com/dcbcollege/noticeboard/internal/middleware"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
)

// ActionController serves the admin panel's single action endpoint. Read
// actions name themselves in the query string, write actions in the posted
// form (query accepted as fallback); every action except login requires an
// authenticated admin.
type ActionController struct {
	authService         services.AuthService
	notificationService services.NotificationService
	facultyService      services.FacultyService
}

// NewActionController creates a new ActionController
func NewActionController(auth services.AuthService, notifications services.NotificationService, faculty services.FacultyService) *ActionController {
	return &ActionController{
		authService:         auth,
		notificationService: notifications,
		facultyService:      faculty,
	}
}

var publicActions = map[string]bool{
	"login": true,
}

// HandleGet dispatches read-side admin actions.
func (ac *ActionController) HandleGet(c *gin.Context) {
	action := c.Query("action")
	if !ac.authorize(c, action) {
		return
	}

	switch action {
	case "get_notifications":
		ac.getNotifications(c)
	case "get_faculty":
		ac.getFaculty(c)
	case "get_faculty_details":
		ac.getFacultyDetails(c)
	case "get_statistics":
		ac.getStatistics(c)
	case "logout":
		ac.logout(c)
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid action"))
	}
}

// HandlePost dispatches write-side admin actions. The action name travels
// in the form body alongside the operation's fields; clients that put it in
// the query string instead are still served.
func (ac *ActionController) HandlePost(c *gin.Context) {
	action := c.PostForm("action")
	if action == "" {
		action = c.Query("action")
	}
	if !ac.authorize(c, action) {
		return
	}

	switch action {
	case "login":
		ac.login(c)
	case "upload":
		ac.upload(c)
	case "delete":
		ac.deleteNotification(c)
	case "add_faculty", "edit_faculty":
		ac.saveFaculty(c)
	case "delete_faculty":
		ac.deleteFaculty(c)
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid action"))
	}
}

// authorize gates protected actions on the identity the auth middleware may
// have stored. Returns false after writing the 401 body.
func (ac *ActionController) authorize(c *gin.Context, action string) bool {
	if publicActions[action] {
		return true
	}
	if !middleware.IsAuthenticated(c) {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
		return false
	}
	return true
}

func (ac *ActionController) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Username and password required"))
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// logout exists for client symmetry. Session tokens are stateless, so there
// is nothing to revoke server-side; the client discards its token.
func (ac *ActionController) logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewMessageResponse("Logged out successfully"))
}

func (ac *ActionController) upload(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid form data"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid form data"))
		return
	}

	attachments := extractFiles(form, "files[]", "files")

	resp, err := ac.notificationService.Create(c.Request.Context(), &req, attachments, middleware.DisplayNameFromContext(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// extractFiles accepts both the bracketed and plain multipart field names
// for the attachment set.
func extractFiles(form *multipart.Form, names ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, name := range names {
		if files := form.File[name]; len(files) > 0 {
			return files
		}
	}
	return nil
}

func (ac *ActionController) deleteNotification(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid notification ID"))
		return
	}

	resp, err := ac.notificationService.Delete(c.Request.Context(), req.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (ac *ActionController) getNotifications(c *gin.Context) {
	list, err := ac.notificationService.ListAdmin(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{Success: true, Notifications: list})
}

func (ac *ActionController) getStatistics(c *gin.Context) {
	stats, err := ac.notificationService.Statistics(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatisticsResponse{Success: true, Statistics: *stats})
}

func (ac *ActionController) saveFaculty(c *gin.Context) {
	var req dto.FacultyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid form data"))
		return
	}

	image, err := c.FormFile("profile_image")
	if err != nil {
		image = nil
	}

	resp, err := ac.facultyService.Save(c.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (ac *ActionController) deleteFaculty(c *gin.Context) {
	var req dto.DeleteFacultyRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid faculty ID"))
		return
	}

	resp, err := ac.facultyService.Delete(c.Request.Context(), req.FacultyID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (ac *ActionController) getFaculty(c *gin.Context) {
	department := c.Query("department")

	resp, err := ac.facultyService.ListByDepartment(c.Request.Context(), department, false)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (ac *ActionController) getFacultyDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid faculty ID"))
		return
	}

	resp, err := ac.facultyService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
