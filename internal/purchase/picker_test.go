package purchase

import "testing"

func TestPickerWrap(t *testing.T) {
	p := NewFieldPicker()
	const n = 3

	// from -1, down goes to the first candidate
	p.MoveDown(n)
	if p.Highlight() != 0 {
		t.Fatalf("highlight = %d, want 0", p.Highlight())
	}

	p.MoveDown(n)
	p.MoveDown(n)
	if p.Highlight() != 2 {
		t.Fatalf("highlight = %d, want 2", p.Highlight())
	}

	// wrap at the bottom
	p.MoveDown(n)
	if p.Highlight() != 0 {
		t.Errorf("down from last index should wrap to 0, got %d", p.Highlight())
	}

	// wrap at the top
	p.MoveUp(n)
	if p.Highlight() != 2 {
		t.Errorf("up from 0 should wrap to 2, got %d", p.Highlight())
	}
}

func TestPickerMoveUpFromIdle(t *testing.T) {
	p := NewFieldPicker()
	p.MoveUp(3)
	if p.Highlight() != 2 {
		t.Errorf("up from idle should land on the last candidate, got %d", p.Highlight())
	}
}

func TestPickerEmptyList(t *testing.T) {
	p := NewFieldPicker()
	p.MoveDown(0)
	if p.Highlight() != -1 {
		t.Errorf("highlight over empty list = %d, want -1", p.Highlight())
	}
	if _, ok := p.Choose(0); ok {
		t.Error("Choose over empty list should fail")
	}
}

func TestPickerChooseResetsHighlight(t *testing.T) {
	p := NewFieldPicker()
	p.MoveDown(3)
	p.MoveDown(3)

	idx, ok := p.Choose(3)
	if !ok || idx != 1 {
		t.Fatalf("Choose = %d, %v; want 1, true", idx, ok)
	}
	if p.Highlight() != -1 {
		t.Errorf("highlight after Choose = %d, want -1", p.Highlight())
	}
}

func TestPickerChooseAfterListShrank(t *testing.T) {
	p := NewFieldPicker()
	p.MoveDown(5)
	p.MoveDown(5)
	p.MoveDown(5)

	// the filtered list shrank to 2 before Enter landed
	if _, ok := p.Choose(2); ok {
		t.Error("Choose beyond the current list length should fail")
	}
	if p.Highlight() != -1 {
		t.Errorf("highlight = %d, want -1", p.Highlight())
	}
}

func TestPickerEscape(t *testing.T) {
	p := NewFieldPicker()
	p.MoveDown(3)
	p.Escape()
	if p.Highlight() != -1 {
		t.Errorf("highlight after Escape = %d, want -1", p.Highlight())
	}
}

func TestPickerSearchChangeResetsHighlight(t *testing.T) {
	p := NewFieldPicker()
	p.SetSearch("wir")
	p.MoveDown(3)

	p.SetSearch("wire")
	if p.Highlight() != -1 {
		t.Errorf("highlight after search change = %d, want -1", p.Highlight())
	}

	// setting the same text again is not a change
	p.MoveDown(3)
	p.SetSearch("wire")
	if p.Highlight() != 0 {
		t.Errorf("highlight after identical search = %d, want 0", p.Highlight())
	}
}
