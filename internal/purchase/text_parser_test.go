package purchase

import (
	"testing"

	"procurement-backend/internal/catalog"
)

const sampleQuote = `ACME ELECTRICALS
Quote No: Q-2024/118
Date: 12.03.2024

| Item | Qty | Unit Price | Amount |
| Copper Wire 2.5mm | 10 | 1,250.00 | 12,500.00 |
| MCB Switch | 4 | 340.50 | 1,362.00 |
| Distribution Board | 1 | 4,800.00 | 4,800.00 |
16 Way

Grand Total: 18,662.00
`

func TestParseQuoteText(t *testing.T) {
	res, err := ParseQuoteText(sampleQuote)
	if err != nil {
		t.Fatalf("ParseQuoteText() error = %v", err)
	}

	if res.QuoteNumber != "Q-2024/118" {
		t.Errorf("quote number = %q", res.QuoteNumber)
	}
	if res.Date != "12.03.2024" {
		t.Errorf("date = %q", res.Date)
	}

	if len(res.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(res.Lines))
	}

	first := res.Lines[0]
	if first.ItemName != "Copper Wire 2.5mm" || first.Quantity != 10 {
		t.Errorf("first line = %+v", first)
	}
	if first.UnitPrice != 1250.00 || first.Amount != 12500.00 {
		t.Errorf("first line amounts = %v / %v", first.UnitPrice, first.Amount)
	}

	// the wrapped third row folds its continuation into the item name
	third := res.Lines[2]
	if third.ItemName != "Distribution Board 16 Way" {
		t.Errorf("third item name = %q", third.ItemName)
	}
	if third.Quantity != 1 || third.Amount != 4800.00 {
		t.Errorf("third line = %+v", third)
	}
}

func TestParseQuoteTextNoHeader(t *testing.T) {
	if _, err := ParseQuoteText("just some prose\nwith no table"); err == nil {
		t.Error("expected an error when the table header is missing")
	}
}

func TestParseQuoteTextBadQuantityDefaultsToOne(t *testing.T) {
	text := "| Item | Qty | Unit Price | Amount |\n| Widget | n/a | 10.00 | 10.00 |\n"
	res, err := ParseQuoteText(text)
	if err != nil {
		t.Fatalf("ParseQuoteText() error = %v", err)
	}
	if len(res.Lines) != 1 || res.Lines[0].Quantity != 1 {
		t.Errorf("lines = %+v, want quantity 1", res.Lines)
	}
}

func TestMatchLines(t *testing.T) {
	items := []catalog.Entry{
		{ID: "40", Name: "Copper Wire 2.5mm"},
		{ID: "41", Name: "MCB Switch 16A"},
	}

	lines := []ParsedLine{
		{ItemName: "copper wire 2.5mm"}, // exact, case-insensitive
		{ItemName: "MCB Switch"},        // partial
		{ItemName: "Unknown Thing"},     // no match
	}
	MatchLines(lines, items)

	if lines[0].MatchedItemID == nil || *lines[0].MatchedItemID != 40 {
		t.Errorf("exact match failed: %+v", lines[0])
	}
	if lines[0].MatchedItemName != "Copper Wire 2.5mm" {
		t.Errorf("matched name = %q", lines[0].MatchedItemName)
	}
	if lines[1].MatchedItemID == nil || *lines[1].MatchedItemID != 41 {
		t.Errorf("partial match failed: %+v", lines[1])
	}
	if lines[2].MatchedItemID != nil {
		t.Errorf("unexpected match: %+v", lines[2])
	}
}
