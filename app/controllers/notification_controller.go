package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mnasmart/onlinemart/app/repository"
	"github.com/mnasmart/onlinemart/internal/pkg/middleware"
)

// HandleListNotifications returns the authenticated user's notifications,
// newest first.
func HandleListNotifications(c *fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	repo := repository.GetGlobalFactory().GetNotificationRepository()
	notifications, err := repo.ListByUserID(user.ID, offset, limit)
	if err != nil {
		log.Printf("notification list failed: %v", err)
		return serverError(c, "Notifications could not be loaded")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notifications": notifications})
}

// HandleMarkNotificationRead marks one of the user's notifications as read.
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return badRequest(c, "Invalid notification id")
	}

	repo := repository.GetGlobalFactory().GetNotificationRepository()
	notification, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Notification not found")
		}
		log.Printf("notification lookup failed: %v", err)
		return serverError(c, "Notification could not be loaded")
	}
	if notification.UserID != user.ID {
		return notFound(c, "Notification not found")
	}

	if err := repo.MarkRead(notification.ID); err != nil {
		log.Printf("notification mark read failed: %v", err)
		return serverError(c, "Notification could not be updated")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
