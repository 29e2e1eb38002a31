package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// EnrollmentHandler handles enrollment and progress tracking. The acting user
// always comes from the session claims, never from the request body.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Enroll enrolls the authenticated user in a course. Enrolling twice in the
// same course returns the existing enrollment with 200 instead of 201.
//
// @Summary      Enroll in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      enrollRequest  true  "Course to enroll in"
// @Success      201   {object}  enrollmentEnvelope
// @Success      200   {object}  enrollmentEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /enroll [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Enroll(c.Request().Context(), userID, req.CourseID)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	outcome := "created"
	if result.AlreadyExisted {
		status = http.StatusOK
		outcome = "existing"
	}
	metrics.EnrollmentsTotal.WithLabelValues(outcome).Inc()

	return c.JSON(status, enrollmentEnvelope{Enrollment: result.Enrollment})
}

// ListMine returns the authenticated user's enrollments with course summaries.
//
// @Summary      List my enrollments
// @Tags         enrollments
// @Produce      json
// @Success      200  {object}  enrollmentsEnvelope
// @Failure      401  {object}  errorResponse
// @Router       /enrollments/me [get]
func (h *EnrollmentHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	enrollments, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollmentsEnvelope{Enrollments: enrollments})
}

// SetProgress records completion state for one lesson on an enrollment the
// authenticated user owns.
//
// @Summary      Set lesson progress
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Enrollment id"
// @Param        body  body      progressRequest  true  "Lesson and completion state"
// @Success      200   {object}  enrollmentEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /enrollments/{id}/progress [put]
func (h *EnrollmentHandler) SetProgress(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.service.SetProgress(c.Request().Context(), c.Param("id"), userID, req.LessonID, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollmentEnvelope{Enrollment: enrollment})
}
