package role

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/session"
)

// ForbiddenMessage is returned for admin pages requested in the general view mode.
const ForbiddenMessage = "Forbidden: switch to the admin role to access this page"

// RequireAdmin only lets requests in the ADMIN view mode through.
func RequireAdmin(c *fiber.Ctx) error {
	if session.From(c).IsAdmin() {
		return c.Next()
	}

	log.Warn().Str("path", c.Path()).Msg("admin page requested without admin role")

	return c.Status(fiber.StatusForbidden).SendString(ForbiddenMessage)
}

// Parse returns the role named by s, case insensitive.
func Parse(s string) (governance.UserRole, bool) {
	switch governance.UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case governance.RoleAdmin:
		return governance.RoleAdmin, true
	case governance.RoleGeneralUser:
		return governance.RoleGeneralUser, true
	default:
		return "", false
	}
}

// Switch handles the role switch form and sends the visitor back.
// Without an explicit role the view mode is flipped.
func Switch(c *fiber.Ctx) error {
	data := session.From(c)

	next, ok := Parse(c.FormValue("role"))
	if !ok {
		next = governance.RoleAdmin
		if data.IsAdmin() {
			next = governance.RoleGeneralUser
		}
	}

	data.Role = next
	log.Debug().Str("role", string(next)).Msg("view mode switched")

	if next == governance.RoleAdmin {
		return c.Redirect("/admin/analytics")
	}

	return c.Redirect("/upload")
}
