package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/cache"
	"github.com/mnasmart/onlinemart/internal/pkg/database"
)

// HandleHealth reports database and cache reachability.
func HandleHealth(c *fiber.Ctx) error {
	dbOK := false
	if db := database.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB.Ping() == nil {
			dbOK = true
		}
	}
	cacheOK := cache.Ping() == nil

	status := fiber.StatusOK
	if !dbOK {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"database": dbOK,
		"cache":    cacheOK,
	})
}
