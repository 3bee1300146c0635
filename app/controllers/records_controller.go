package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/records"
)

type recordsRequest struct {
	ObjectKey string `json:"objectKey"`
}

// HandleFetchRecords proxies a lookup against the third-party records API.
// The object key is interpolated into the upstream path, so it must survive
// sanitization unchanged or the request is rejected.
func HandleFetchRecords(c *fiber.Ctx) error {
	var req recordsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !records.ValidObjectKey(req.ObjectKey) {
		return badRequest(c, records.ErrInvalidObjectKey.Error())
	}

	client := records.NewClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := client.Fetch(ctx, req.ObjectKey)
	if err != nil {
		log.Printf("records fetch failed for %s: %v", req.ObjectKey, err)
		return serverError(c, "Records could not be fetched")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"records": result})
}
