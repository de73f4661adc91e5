package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
)

func generateOAuthState(size int) (string, error) {
	if size < 16 {
		size = 16
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func redirectWithError(c *fiber.Ctx, path, message string) error {
	return flash.WithError(c, fiber.Map{"type": "error", "message": message}).Redirect(path)
}

func redirectWithSuccess(c *fiber.Ctx, path, message string) error {
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": message}).Redirect(path)
}

func dashboardPath(slug string) string {
	return constants.DashboardRoute + "/" + url.PathEscape(slug)
}
