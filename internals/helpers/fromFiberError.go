package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError menulis *fiber.Error (mis. dari helper token / middleware)
// sebagai envelope JSON standar; error lain jatuh ke 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}
