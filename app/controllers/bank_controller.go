package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/cache"
	"github.com/mnasmart/onlinemart/internal/pkg/paystack"
)

const bankResolveCacheTTL = 24 * time.Hour

type resolveAccountRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

type resolveAccountResponse struct {
	Success       bool   `json:"success"`
	Verified      bool   `json:"verified"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankID        int    `json:"bank_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

// HandleResolveBankAccount verifies a seller payout account against the
// payment provider. Nigerian NUBAN account numbers are exactly 10 digits;
// anything else is rejected before the provider call. Successful resolutions
// are cached, account registrations rarely change.
func HandleResolveBankAccount(c *fiber.Ctx) error {
	var req resolveAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	bankCode := strings.TrimSpace(req.BankCode)
	if !validAccountNumber(accountNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(resolveAccountResponse{
			Success: false, Verified: false, Message: "account_number must be exactly 10 digits",
		})
	}
	if bankCode == "" || !isDigits(bankCode) {
		return c.Status(fiber.StatusBadRequest).JSON(resolveAccountResponse{
			Success: false, Verified: false, Message: "bank_code is required",
		})
	}

	cacheKey := fmt.Sprintf("bank_resolve:%s:%s", accountNumber, bankCode)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		var resp resolveAccountResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return c.Status(fiber.StatusOK).JSON(resp)
		}
	}

	client := paystack.NewClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := client.ResolveAccount(ctx, accountNumber, bankCode)
	if err != nil {
		log.Printf("paystack account resolve failed: %v", err)
		return c.Status(fiber.StatusOK).JSON(resolveAccountResponse{
			Success: false, Verified: false, Message: "Account could not be verified",
		})
	}

	resp := resolveAccountResponse{
		Success:       true,
		Verified:      true,
		AccountName:   result.AccountName,
		AccountNumber: result.AccountNumber,
		BankID:        result.BankID,
	}
	if encoded, err := json.Marshal(resp); err == nil {
		if err := cache.Set(cacheKey, string(encoded), bankResolveCacheTTL); err != nil {
			log.Printf("failed to cache bank resolution: %v", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// validAccountNumber reports whether s is a well-formed NUBAN account number:
// exactly 10 digits, nothing else.
func validAccountNumber(s string) bool {
	return len(s) == 10 && isDigits(s)
}
