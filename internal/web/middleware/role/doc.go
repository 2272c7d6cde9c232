// Package role provides the view mode middleware of the web application.
//
// There is no login: every visitor picks a view mode with the role switch,
// and the choice is kept in the session. Admin pages are only served in the
// ADMIN view mode.
//
// Usage:
//
//	app.Get("/admin/brand", role.RequireAdmin, handler)
package role
