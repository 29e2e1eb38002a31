package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// CourseHandler handles catalog browsing and admin CRUD.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List returns course summaries matching the optional query filters.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        category    query     string  false  "Exact category match"
// @Param        difficulty  query     string  false  "Exact difficulty match"
// @Param        price       query     number  false  "Inclusive price ceiling"
// @Param        search      query     string  false  "Substring match on title or description"
// @Success      200         {object}  coursesEnvelope
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	filter := ports.CourseFilter{
		Category:   strings.TrimSpace(c.QueryParam("category")),
		Difficulty: strings.TrimSpace(c.QueryParam("difficulty")),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}

	// A non-numeric price value is ignored rather than rejected.
	if raw := strings.TrimSpace(c.QueryParam("price")); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &n
		}
	}

	courses, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coursesEnvelope{Courses: courses})
}

// Get returns one course, resolved by id or slug.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        idOrSlug  path      string  true  "Course id or slug"
// @Success      200       {object}  courseEnvelope
// @Failure      404       {object}  errorResponse
// @Router       /courses/{idOrSlug} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("idOrSlug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseEnvelope{Course: course})
}

// Create adds a course to the catalog. Admin only.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      createCourseRequest  true  "Course fields"
// @Success      201   {object}  courseEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.service.Create(c.Request().Context(), ports.CreateCourseInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		ThumbnailURL: req.ThumbnailURL,
		Lessons:      toLessonInputs(req.Lessons),
	})
	if err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, courseEnvelope{Course: course})
}

// Update applies a partial patch to a course. Admin only.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to change"
// @Success      200   {object}  courseEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateCourseInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		ThumbnailURL: req.ThumbnailURL,
	}
	if req.Lessons != nil {
		lessons := toLessonInputs(*req.Lessons)
		input.Lessons = &lessons
	}

	course, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, courseEnvelope{Course: course})
}

// Delete removes a course. Admin only.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Param        id  path      string  true  "Course id"
// @Success      200  {object}  okResponse
// @Failure      404  {object}  errorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func toLessonInputs(lessons []lessonRequest) []ports.LessonInput {
	out := make([]ports.LessonInput, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, ports.LessonInput{
			Title:       l.Title,
			ContentHTML: l.ContentHTML,
			VideoURL:    l.VideoURL,
			Order:       l.Order,
		})
	}
	return out
}
