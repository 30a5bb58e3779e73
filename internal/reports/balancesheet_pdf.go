package reports

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/money"
)

// BalanceSheetPDF renders the balance sheet as a downloadable PDF.
func (h *Handler) BalanceSheetPDF(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	at, err := asOf(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	bs, unavailable, err := h.Service.BalanceSheet(userContext(c), userID, at)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build balance sheet: "+err.Error())
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Balance Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Balance Sheet")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "As of "+at.Format("2006-01-02")+"  (INR)")
	pdf.Ln(10)

	section := func(title string, s ledger.CategorySection) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(130, 8, title, "1", 0, "L", true, 0, "")
		pdf.CellFormat(56, 8, money.FormatINR(s.Total), "1", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, line := range s.Accounts {
			if pdf.GetY() > 270 {
				pdf.AddPage()
			}
			value := line.Balance
			if line.IsInvestment {
				value = line.MarketValue
			}
			pdf.CellFormat(130, 7, "  "+line.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(56, 7, money.FormatINR(value), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Assets", bs.Assets)
	section("Liabilities", bs.Liabilities)
	section("Equity", bs.Equity)

	summary := [][2]string{
		{"Total Assets", money.FormatINR(bs.TotalAssets)},
		{"Total Liabilities", money.FormatINR(bs.TotalLiabilities)},
		{"Net Worth", money.FormatINR(bs.NetWorth)},
		{"Unrealized Gains", money.FormatINR(bs.UnrealizedGains)},
		{"Net Income", money.FormatINR(bs.NetIncome)},
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary {
		pdf.CellFormat(130, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(56, 7, row[1], "1", 1, "R", false, 0, "")
	}

	status := "Balanced"
	if !bs.IsBalanced {
		status = "NOT balanced"
	}
	diff := bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.UnrealizedGains).Add(bs.NetIncome))
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Accounting identity: "+status+statusDetail(diff))
	pdf.Ln(6)

	if len(unavailable) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 7, "Unavailable accounts (balance unknown)")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		for _, u := range unavailable {
			pdf.Cell(0, 6, "  "+u.Name)
			pdf.Ln(5)
		}
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+time.Now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed: "+err.Error())
	}

	filename := "balance-sheet-" + at.Format("2006-01-02") + ".pdf"
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func statusDetail(diff decimal.Decimal) string {
	if diff.IsZero() {
		return ""
	}
	return " (difference " + money.FormatINR(diff) + ")"
}
