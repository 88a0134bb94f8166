package handler

import (
	"net/http"
	"strconv"

	"rosalia.com/connect/internal/modules/enrollment/dto"
	enrollment "rosalia.com/connect/internal/modules/enrollment/service"
	"rosalia.com/connect/pkg/response"
	"rosalia.com/connect/pkg/validator"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	service enrollment.EnrollmentService
}

func NewEnrollmentHandler(service enrollment.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	claims, err := response.GetClaims(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollmentID, err := h.service.Enroll(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "enrolled successfully",
		"enrollment_id": enrollmentID,
	})
}

func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	claims, err := response.GetClaims(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	courses, err := h.service.MyCourses(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *EnrollmentHandler) CourseStudents(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	students, err := h.service.CourseStudents(c.Request.Context(), uint(courseID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	enrollmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment id"})
		return
	}

	claims, err := response.GetClaims(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), claims, uint(enrollmentID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "enrollment cancelled successfully"})
}
