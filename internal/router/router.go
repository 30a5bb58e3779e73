package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/accounts"
	handlers "github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/http"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/prices"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/reports"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/tags"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/transactions"
)

type Router struct {
	AuthHandler         *handlers.AuthHandler
	AccountsHandler     *accounts.Handler
	TransactionsHandler *transactions.Handler
	PricesHandler       *prices.Handler
	TagsHandler         *tags.Handler
	ReportsHandler      *reports.Handler
	AuthMW              fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/auth/signup", RateLimitAuth(), r.AuthHandler.Signup)
		app.Post("/api/auth/login", RateLimitAuth(), r.AuthHandler.Login)
		app.Get("/api/me", r.AuthMW, r.AuthHandler.Me)
	}

	if r.AccountsHandler != nil {
		app.Get("/api/account-types", r.AuthMW, r.AccountsHandler.ListTypes)
		app.Post("/api/accounts", RateLimitWrite(), r.AuthMW, r.AccountsHandler.Create)
		app.Get("/api/accounts", r.AuthMW, r.AccountsHandler.List)
		app.Get("/api/accounts/:id", r.AuthMW, r.AccountsHandler.Get)
		app.Put("/api/accounts/:id", RateLimitWrite(), r.AuthMW, r.AccountsHandler.Update)
		app.Delete("/api/accounts/:id", RateLimitWrite(), r.AuthMW, r.AccountsHandler.Deactivate)
	}

	if r.TransactionsHandler != nil {
		app.Post("/api/transactions", RateLimitWrite(), r.AuthMW, r.TransactionsHandler.Create)
		app.Post("/api/transactions/split", RateLimitWrite(), r.AuthMW, r.TransactionsHandler.CreateSplit)
		app.Get("/api/transactions", r.AuthMW, r.TransactionsHandler.List)
		app.Get("/api/transactions/:id", r.AuthMW, r.TransactionsHandler.Get)
		app.Patch("/api/transactions/:id", RateLimitWrite(), r.AuthMW, r.TransactionsHandler.Update)
	}

	if r.PricesHandler != nil {
		app.Post("/api/prices", RateLimitWrite(), r.AuthMW, r.PricesHandler.Create)
		app.Get("/api/accounts/:accountId/prices", r.AuthMW, r.PricesHandler.ListByAccount)
		app.Get("/api/accounts/:accountId/prices/latest", r.AuthMW, r.PricesHandler.Latest)
	}

	if r.TagsHandler != nil {
		app.Post("/api/tags", RateLimitWrite(), r.AuthMW, r.TagsHandler.Create)
		app.Get("/api/tags", r.AuthMW, r.TagsHandler.List)
		app.Post("/api/transactions/:transactionId/tags/:tagId", RateLimitWrite(), r.AuthMW, r.TagsHandler.Attach)
		app.Delete("/api/transactions/:transactionId/tags/:tagId", RateLimitWrite(), r.AuthMW, r.TagsHandler.Detach)
	}

	if r.ReportsHandler != nil {
		app.Get("/api/reports/balance-sheet", r.AuthMW, r.ReportsHandler.BalanceSheet)
		app.Get("/api/reports/balance-sheet.pdf", r.AuthMW, r.ReportsHandler.BalanceSheetPDF)
		app.Get("/api/reports/investments", r.AuthMW, r.ReportsHandler.Investments)
		app.Get("/api/reports/account-tree", r.AuthMW, r.ReportsHandler.AccountTree)
	}
}
