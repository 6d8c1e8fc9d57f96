package purchase

// FieldPicker: keyboard-navigation state for one search field. The
// highlight index moves circularly over the current filtered candidate
// list and is independent per field; -1 means nothing highlighted.
type FieldPicker struct {
	Search    string
	highlight int
}

func NewFieldPicker() *FieldPicker {
	return &FieldPicker{highlight: -1}
}

func (p *FieldPicker) Highlight() int {
	return p.highlight
}

// SetSearch updates the search text and drops the highlight, since the
// candidate list underneath it changed.
func (p *FieldPicker) SetSearch(s string) {
	if s != p.Search {
		p.Search = s
		p.highlight = -1
	}
}

// MoveDown advances the highlight over n candidates, wrapping to the top.
func (p *FieldPicker) MoveDown(n int) {
	if n <= 0 {
		p.highlight = -1
		return
	}
	if p.highlight < 0 {
		p.highlight = 0
		return
	}
	p.highlight = (p.highlight + 1) % n
}

// MoveUp retreats the highlight, wrapping to the bottom.
func (p *FieldPicker) MoveUp(n int) {
	if n <= 0 {
		p.highlight = -1
		return
	}
	if p.highlight < 0 {
		p.highlight = n - 1
		return
	}
	p.highlight = (p.highlight - 1 + n) % n
}

// Choose returns the highlighted index for the caller to commit as the
// field's selection, then resets the highlight. False when nothing is
// highlighted or the list shrank under the highlight.
func (p *FieldPicker) Choose(n int) (int, bool) {
	idx := p.highlight
	p.highlight = -1
	if idx < 0 || idx >= n {
		return -1, false
	}
	return idx, true
}

// Escape clears the highlight without touching the selection.
func (p *FieldPicker) Escape() {
	p.highlight = -1
}
