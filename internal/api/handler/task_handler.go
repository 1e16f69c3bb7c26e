package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/todo-system/internal/api/metrics"
	"github.com/taskboard/todo-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Domain errors are
// returned as-is and mapped to status codes by the central error handler.
type TaskHandler struct {
	tasks    ports.TaskService
	activity ports.ActivityService
}

func NewTaskHandler(tasks ports.TaskService, activity ports.ActivityService) *TaskHandler {
	return &TaskHandler{tasks: tasks, activity: activity}
}

// List handles GET /v1/tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListForOwner(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponseList(tasks))
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Create(c.Request().Context(), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	}, username)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /v1/tasks/:id.
//
// @Summary      Update a task (full replacement)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Replacement task state"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Update(c.Request().Context(), c.Param("id"), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	}, username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), c.Param("id"), username); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Activity handles GET /v1/tasks/:id/activity.
//
// @Summary      List a task's authorization decisions
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      200  {object}  taskActivityResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	entries, err := h.activity.ListForTask(c.Request().Context(), id, username)
	if err != nil {
		return err
	}

	resp := taskActivityResponse{TaskID: id, Entries: make([]activityEntryResponse, 0, len(entries))}
	for _, a := range entries {
		resp.Entries = append(resp.Entries, activityEntryResponse{
			Username:  a.Username,
			Action:    a.Action,
			Outcome:   a.Outcome,
			Reason:    a.Reason,
			Timestamp: a.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
