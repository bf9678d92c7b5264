package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/utils"
	"gorm.io/gorm"
)

// TasksHandler handles ask and favour routes. One handler serves both
// kinds; the mounted Kind decides which table the requests hit.
type TasksHandler struct {
	DB   *gorm.DB
	Kind models.TaskKind
}

// List handles GET /api/rolodex/asks and GET /api/rolodex/favours
// @Summary List asks or favours
// @Description List the user's asks/favours, newest first, optionally filtered by person and completion
// @Tags Tasks
// @Accept json
// @Produce json
// @Param personId query string false "Restrict to one person"
// @Param completed query string false "Literal true or false; anything else is ignored"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/asks [get]
func (h *TasksHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	filters := services.TaskFilters{
		PersonID:  c.Query("personId"),
		Completed: parseQueryBool(c.Query("completed")),
	}

	tasks, err := services.ListTasks(h.DB, h.Kind, userID, filters)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tasks, fiber.StatusOK)
}

// Create handles POST /api/rolodex/asks and POST /api/rolodex/favours
// @Summary Create an ask or favour
// @Description Create a task against an owned, non-deleted person
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body services.CreateTaskInput true "Task to create"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/asks [post]
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.CreateTaskInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	task, err := services.CreateTask(h.DB, h.Kind, userID, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, task, fiber.StatusCreated)
}

// Update handles PUT /api/rolodex/asks/:id and PUT /api/rolodex/favours/:id
// @Summary Update an ask or favour
// @Description Apply partial updates; parentId null clears the parent, absent leaves it
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body services.UpdateTaskInput true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/asks/{id} [put]
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.UpdateTaskInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	task, err := services.UpdateTask(h.DB, h.Kind, userID, c.Params("id"), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, task, fiber.StatusOK)
}

// Delete handles DELETE /api/rolodex/asks/:id and DELETE /api/rolodex/favours/:id
// @Summary Delete an ask or favour
// @Description Hard-delete a task; children keep their dangling parentId
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/asks/{id} [delete]
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if _, err := services.DeleteTask(h.DB, h.Kind, userID, c.Params("id")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.StatusOK)
}
