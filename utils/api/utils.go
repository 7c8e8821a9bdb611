package api

import (
	"hallin-site/utils"

	"github.com/gofiber/fiber/v2"
)

// ====================== Response Functions ======================

type GenericResponse[T any] struct {
	Status      int    `json:"status"`
	Message     string `json:"message"`
	UpdatedData *T     `json:"updatedData,omitempty"`
}

func NewResponse[T any](status int, message string, data *T) *GenericResponse[T] {
	return &GenericResponse[T]{
		Status:      status,
		Message:     message,
		UpdatedData: data,
	}
}

func UpdatedDataResponse[T any](c *fiber.Ctx, status int, message string, data *T) error {
	return c.Status(status).JSON(NewResponse(status, message, data))
}

// ====================== Action Response Functions ======================

func ActionDataResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(utils.ActionResult{Data: data})
}

func ActionErrorResponse(c *fiber.Ctx, code utils.ActionErrorCode, message string) error {
	return c.Status(code.HTTPStatus()).JSON(utils.ActionResult{
		Error: &utils.ActionError{Code: code, Message: message},
	})
}
