package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RegisterClient serves the built client bundle from dir. GET requests outside
// /api that match no file get index.html so client-side routes resolve.
func RegisterClient(app *fiber.App, dir string) error {
	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		return err
	}

	app.Static("/", dir, fiber.Static{Compress: true})
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/api" {
			return c.Next()
		}
		return c.SendFile(indexPath)
	})
	return nil
}
