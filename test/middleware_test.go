package main

import (
	"net/http/httptest"
	"testing"

	"backhouse/middleware"

	"github.com/gofiber/fiber/v2"
)

// Helper to create an app with a pre-local middleware that sets userRole
func makeAppWithRole(role string, check func(*fiber.Ctx) error) *fiber.App {
	app := fiber.New()

	// Insert a middleware to set role before the requirement middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})

	app.Use(check)

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})

	return app
}

func TestOwnerRequired_AllowsOwner(t *testing.T) {
	app := makeAppWithRole("owner", middleware.OwnerRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for owner role, got %d", resp.StatusCode)
	}
}

func TestOwnerRequired_DeniesNonOwner(t *testing.T) {
	app := makeAppWithRole("staff", middleware.OwnerRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for non-owner role, got %d", resp.StatusCode)
	}
}

func TestManagerRequired_AllowsOwnerAndManager(t *testing.T) {
	for _, role := range []string{"owner", "manager"} {
		app := makeAppWithRole(role, middleware.ManagerRequired)
		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app test error: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("expected 200 for %s role, got %d", role, resp.StatusCode)
		}
	}
}

func TestManagerRequired_DeniesStaff(t *testing.T) {
	app := makeAppWithRole("staff", middleware.ManagerRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for staff role, got %d", resp.StatusCode)
	}
}

func TestCheckRole_AllowsListedRole(t *testing.T) {
	app := makeAppWithRole("staff", middleware.CheckRole("staff", "manager"))
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for listed role, got %d", resp.StatusCode)
	}
}

func TestCheckRole_DeniesUnlistedRole(t *testing.T) {
	app := makeAppWithRole("staff", middleware.CheckRole("owner"))
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for unlisted role, got %d", resp.StatusCode)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without authorization header, got %d", resp.StatusCode)
	}
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 for malformed token, got %d", resp.StatusCode)
	}
}
