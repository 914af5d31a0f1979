package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errInvalidID = errors.New("invalid id")

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errInvalidID
	}
	return uint(parsed), nil
}

// parseOptionalQueryInt returns 0 when the query parameter is absent.
func parseOptionalQueryInt(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
