// Package api exposes the ledger and both query paths over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-insights/internal/ledger"
	"github.com/insightdelivered/statement-insights/internal/process"
	"github.com/insightdelivered/statement-insights/internal/query"
	"github.com/insightdelivered/statement-insights/internal/search"
)

// Handler holds the wired components the HTTP surface serves from.
type Handler struct {
	Engine       *query.Engine
	Index        *search.Index // nil when the semantic index is disabled
	Transactions []ledger.Transaction
	Version      string
}

// AskRequest is the /api/ask request body.
type AskRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode,omitempty"` // "structured" (default) or "semantic"
}

// AskResponse is the /api/ask response body.
type AskResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// Register sets up the routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.handleHealth)
	app.Get("/api/transactions", h.handleTransactions)
	app.Get("/api/stats", h.handleStats)
	app.Post("/api/ask", h.handleAsk)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"engine":       "fiber",
		"version":      h.Version,
		"transactions": len(h.Transactions),
	})
}

func (h *Handler) handleTransactions(c *fiber.Ctx) error {
	txns := h.Transactions
	if txns == nil {
		txns = []ledger.Transaction{}
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"count":        len(txns),
		"transactions": txns,
	})
}

func (h *Handler) handleStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   process.Summarize(h.Transactions),
	})
}

func (h *Handler) handleAsk(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AskResponse{
			Error: "invalid request body",
		})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(AskResponse{
			Error: "question is required",
		})
	}

	if req.Mode == "semantic" {
		if h.Index == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(AskResponse{
				Error: "semantic index not available",
			})
		}
		answer, err := h.Index.Search(req.Question, 5)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(AskResponse{
				Error: err.Error(),
			})
		}
		return c.JSON(AskResponse{Success: true, Answer: answer})
	}

	return c.JSON(AskResponse{
		Success: true,
		Answer:  h.Engine.Answer(req.Question, h.Transactions),
	})
}
