package purchase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"procurement-backend/internal/catalog"

	"github.com/gofiber/fiber/v2"
)

// ParsedLine: one line-item candidate extracted from pasted quote text.
// MatchedItemID is nil when no catalog item matched.
type ParsedLine struct {
	ItemName        string  `json:"item_name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Amount          float64 `json:"amount"`
	MatchedItemID   *uint   `json:"matched_item_id"`
	MatchedItemName string  `json:"matched_item_name"`
}

type ParseTextResponse struct {
	Lines       []ParsedLine `json:"lines"`
	Date        string       `json:"date,omitempty"`
	QuoteNumber string       `json:"quote_number,omitempty"`
}

var (
	dateRe  = regexp.MustCompile(`(?i)date[:\s]+(\d{2}[./-]\d{2}[./-]\d{4})`)
	quoteRe = regexp.MustCompile(`(?i)(?:quote|quotation|ref)\s*(?:no|number|#)?[:\s]+([A-Z0-9/-]+)`)
)

// parseAmount handles thousand separators ("1,234.56" -> 1234.56) and
// stray currency suffixes.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/-")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimPrefix(s, "Rs."))
	return strconv.ParseFloat(s, 64)
}

// ParseQuoteText extracts line-item candidates from a pasted vendor quote.
// Expected table format: pipe-separated columns
//
//	| Item | Qty | Unit Price | Amount |
//
// Rows without pipes are treated as continuations of the previous item name
// (quotes wrap long descriptions over several lines).
func ParseQuoteText(text string) (*ParseTextResponse, error) {
	lines := strings.Split(text, "\n")

	tableStartIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "item") && strings.Contains(lower, "qty") {
			tableStartIdx = i
			break
		}
	}
	if tableStartIdx == -1 {
		return nil, fmt.Errorf("table header not found")
	}

	res := &ParseTextResponse{}
	if m := dateRe.FindStringSubmatch(text); m != nil {
		res.Date = m[1]
	}
	if m := quoteRe.FindStringSubmatch(text); m != nil {
		res.QuoteNumber = m[1]
	}

	for i := tableStartIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.Contains(line, "Total:") || strings.Contains(line, "Grand Total") {
			continue
		}

		if !strings.Contains(line, "|") {
			// continuation of the previous item name
			if len(res.Lines) > 0 {
				last := &res.Lines[len(res.Lines)-1]
				last.ItemName += " " + line
			}
			continue
		}

		// columns: | Item | Qty | Unit Price | Amount |
		// split yields an empty leading and trailing part
		parts := strings.Split(line, "|")
		if len(parts) < 6 {
			// likely a wrapped item name fragment
			if len(res.Lines) > 0 {
				cleaned := strings.TrimSpace(strings.Trim(line, "|"))
				if cleaned != "" {
					res.Lines[len(res.Lines)-1].ItemName += " " + cleaned
				}
			}
			continue
		}

		itemName := strings.TrimSpace(parts[1])
		qtyStr := strings.TrimSpace(parts[2])
		unitPriceStr := strings.TrimSpace(parts[3])
		amountStr := strings.TrimSpace(parts[4])

		if itemName == "" {
			continue
		}

		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			qty = 1
		}
		unitPrice, err := parseAmount(unitPriceStr)
		if err != nil {
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			amount = unitPrice * float64(qty)
		}

		res.Lines = append(res.Lines, ParsedLine{
			ItemName:  itemName,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Amount:    amount,
		})
	}

	return res, nil
}

// MatchLines resolves each parsed line against the item-name catalog.
// Exact (case-insensitive) name match wins; otherwise the first catalog
// item whose name contains the parsed name, or vice versa.
func MatchLines(lines []ParsedLine, items []catalog.Entry) {
	for i := range lines {
		line := &lines[i]
		name := strings.ToLower(strings.TrimSpace(line.ItemName))
		if name == "" {
			continue
		}

		var matched *catalog.Entry
		for j := range items {
			candidate := strings.ToLower(items[j].Name)
			if candidate == name {
				matched = &items[j]
				break
			}
			if matched == nil && (strings.Contains(candidate, name) || strings.Contains(name, candidate)) {
				matched = &items[j]
			}
		}
		if matched == nil {
			continue
		}
		if id, err := parseID(matched.ID); err == nil {
			line.MatchedItemID = &id
			line.MatchedItemName = matched.Name
		}
	}
}

// POST /api/purchase_order/parse-text
// The client extracts the PDF text and sends it in the "text" field; the
// server parses it into line candidates matched against the item catalog.
func (h *Handlers) ParseText() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body; a 'text' field is required")
		}
		if body.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "'text' cannot be empty")
		}

		res, err := ParseQuoteText(body.Text)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not parse quote text: "+err.Error())
		}

		bundle := h.loader.LoadAll(c.Context())
		MatchLines(res.Lines, bundle.Items)

		return c.JSON(res)
	}
}
