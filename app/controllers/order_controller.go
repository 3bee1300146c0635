package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mnasmart/onlinemart/app/models"
	"github.com/mnasmart/onlinemart/app/repository"
	"github.com/mnasmart/onlinemart/internal/pkg/middleware"
)

type createOrderItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items           []createOrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string            `json:"shipping_address" validate:"required"`
}

// HandleCreateOrder creates a pending order priced from the catalog rows and
// returns the payment reference the checkout flow passes to the provider.
func HandleCreateOrder(c *fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "At least one item and a shipping address are required")
	}

	productRepo := repository.GetGlobalFactory().GetProductRepository()
	var items []models.OrderItem
	var totalKobo int64
	for _, item := range req.Items {
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return badRequest(c, "Unknown product in order")
			}
			log.Printf("product lookup failed: %v", err)
			return serverError(c, "Order could not be created")
		}
		if !product.IsActive || product.Stock < item.Quantity {
			return badRequest(c, "Product "+product.Name+" is not available in the requested quantity")
		}
		items = append(items, models.OrderItem{
			ProductID:     product.ID,
			Quantity:      item.Quantity,
			UnitPriceKobo: product.PriceKobo,
		})
		totalKobo += product.PriceKobo * int64(item.Quantity)
	}

	order := &models.Order{
		OrderNumber:      models.NewOrderNumber(),
		UserID:           user.ID,
		PaymentReference: models.NewPaymentReference(),
		AmountKobo:       totalKobo,
		PaymentStatus:    models.PaymentStatusPending,
		OrderStatus:      models.OrderStatusPending,
		Status:           models.OrderStatusPending,
		ShippingAddress:  strings.TrimSpace(req.ShippingAddress),
		Items:            items,
	}
	if err := repository.GetGlobalFactory().GetOrderRepository().Create(order); err != nil {
		log.Printf("order create failed: %v", err)
		return serverError(c, "Order could not be created")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":           true,
		"order_number":      order.OrderNumber,
		"payment_reference": order.PaymentReference,
		"amount_kobo":       order.AmountKobo,
	})
}

// HandleGetOrderTracking returns the tracking history of an order owned by
// the authenticated user.
func HandleGetOrderTracking(c *fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	orderNumber := strings.TrimSpace(c.Params("orderNumber"))
	if orderNumber == "" {
		return badRequest(c, "Order number is required")
	}

	orderRepo := repository.GetGlobalFactory().GetOrderRepository()
	order, err := orderRepo.GetByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Order not found")
		}
		log.Printf("order lookup failed: %v", err)
		return serverError(c, "Order could not be loaded")
	}
	if order.UserID != user.ID && user.Role != models.ROLE_ADMIN {
		return notFound(c, "Order not found")
	}

	entries, err := orderRepo.GetTrackingHistory(order.ID)
	if err != nil {
		log.Printf("tracking history lookup failed: %v", err)
		return serverError(c, "Tracking history could not be loaded")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"tracking":       entries,
	})
}
