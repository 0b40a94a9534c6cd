package fiber

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"tasktrack"
	"tasktrack/core"
)

// handleRegister returns a handler for the registration endpoint
func handleRegister(auth *core.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input tasktrack.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid request body",
			})
		}

		result, err := auth.Register(input)
		if err != nil {
			return handleServiceError(c, err)
		}

		response := fiber.Map{
			"status":  "success",
			"message": "User registered",
			"token":   result.Token,
			"user":    result.User,
		}
		if result.WeakPassword {
			response["warning"] = "password strength is low"
		}
		return c.Status(http.StatusCreated).JSON(response)
	}
}

// handleLogin returns a handler for the login endpoint
func handleLogin(auth *core.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input tasktrack.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid request body",
			})
		}

		result, err := auth.Login(input)
		if err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Login successful",
			"token":   result.Token,
			"user":    result.User,
		})
	}
}

// handleLogout acknowledges the end of a session. Tokens are
// self-contained and expire on their own; there is no server-side
// state to destroy.
func handleLogout(auth *core.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)
		if subject != nil {
			_ = auth.Logout(subject.UserID())
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Logout",
		})
	}
}

func handleHealth() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// handleProfile returns the authenticated user's identity and tasks
func handleProfile(tasks *core.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)

		profile, err := tasks.Profile(subject.UserID())
		if err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"status": "success",
			"user": fiber.Map{
				"id":            profile.User.ID,
				"username":      profile.User.Username,
				"email":         profile.User.Email,
				"register_date": profile.User.CreatedAt,
				"task_count":    profile.TaskCount,
			},
			"tasks": profile.Tasks,
		})
	}
}

func handleListTasks(tasks *core.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)

		list, err := tasks.List(subject.UserID())
		if err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"status": "success",
			"tasks":  list,
		})
	}
}

func handleAddTask(tasks *core.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)

		var input tasktrack.TaskInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid request body",
			})
		}

		task, err := tasks.Add(subject.UserID(), input)
		if err != nil {
			return handleServiceError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"status": "success",
			"task":   task,
		})
	}
}

func handleUpdateTask(tasks *core.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)

		taskID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid task id",
			})
		}

		var input struct {
			Completed bool `json:"completed"`
		}
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid request body",
			})
		}

		if err := tasks.SetCompleted(taskID, subject.UserID(), input.Completed); err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Task updated",
		})
	}
}

func handleDeleteTask(tasks *core.TaskService) fiber.Handler {
	return func(c fiber.Ctx) error {
		subject := subjectFromContext(c)

		taskID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid task id",
			})
		}

		if err := tasks.Delete(taskID, subject.UserID()); err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Task deleted",
		})
	}
}

// handleServiceError maps service errors to the wire contract:
// {"status":"error","message":"..."} with the mapped status code.
// Unmapped errors carry wrapped storage detail; that stays in the
// server log and the client sees a generic message.
func handleServiceError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// mapErrorToStatus maps service error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, tasktrack.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, tasktrack.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, tasktrack.ErrUserNotFound),
		errors.Is(err, tasktrack.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrUsernameRequired),
		errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrTitleRequired):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
