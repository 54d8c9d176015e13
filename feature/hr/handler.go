package hr

import (
	"errors"

	"mini-orm/core/logger"
	"mini-orm/core/orm"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for HR data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the hr routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/hr")
	group.Get("/summary", h.HandleSummary)
	group.Get("/departments", h.HandleDepartments)
	group.Post("/demo", h.HandleDemo)
}

// HandleSummary returns the counts of the loaded HR data.
// @Summary HR Summary
// @Description Count departments, employees, projects and assignments.
// @Tags hr
// @Produce json
// @Success 200 {object} hr.Summary "Summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /hr/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sum, err := h.service.Summary(c.Context())
	if err != nil {
		l.Error("Failed to load hr summary", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(sum)
}

// HandleDepartments returns every department with its staff.
// @Summary List Departments
// @Description List every department with its employees and their projects.
// @Tags hr
// @Produce json
// @Success 200 {array} hr.DepartmentView "Departments"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /hr/departments [get]
func (h *Handler) HandleDepartments(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	views, err := h.service.Departments(c.Context())
	if err != nil {
		l.Error("Failed to load departments", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(views)
}

// HandleDemo runs the sample save cycle. Pass ?dry_run=true to only preview it.
// @Summary Run Demo Cycle
// @Description Hire an employee, rename the last one, open a department and drop one assignment in a single save.
// @Tags hr
// @Produce json
// @Param dry_run query boolean false "Preview the pending changes without saving"
// @Success 200 {object} hr.DemoReport "Demo Report"
// @Failure 422 {object} map[string]string "Validation Failed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /hr/demo [post]
func (h *Handler) HandleDemo(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)

	report, err := h.service.RunDemo(c.Context(), DemoOptions{DryRun: dryRun})
	if err != nil {
		l.Error("Demo cycle failed", zap.Error(err), zap.Bool("dry_run", dryRun))
		return respondError(c, err)
	}
	return c.JSON(report)
}

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var validationErr *orm.ValidationError
	if errors.As(err, &validationErr) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
