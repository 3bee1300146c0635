package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mnasmart/onlinemart/app/repository"
)

// HandleListProducts returns the active catalog, newest first.
func HandleListProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 24)
	if limit < 1 || limit > 100 {
		limit = 24
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.ListActive(offset, limit)
	if err != nil {
		log.Printf("product list failed: %v", err)
		return serverError(c, "Products could not be loaded")
	}
	total, err := repo.Count()
	if err != nil {
		log.Printf("product count failed: %v", err)
		total = int64(len(products))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"products": products,
		"total":    total,
	})
}

// HandleGetProduct returns a single product by slug.
func HandleGetProduct(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return badRequest(c, "Product slug is required")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product not found")
		}
		log.Printf("product lookup failed: %v", err)
		return serverError(c, "Product could not be loaded")
	}

	return c.Status(fiber.StatusOK).JSON(product)
}
