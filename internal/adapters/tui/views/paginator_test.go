package views

import "testing"

func TestPaginator_WindowFollowsCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(10)

	for range 4 {
		p.CursorDown()
	}
	if start, end := p.VisibleRange(); start != 2 || end != 5 {
		t.Errorf("expected window [2,5), got [%d,%d)", start, end)
	}

	p.SetCursor(0)
	if start, _ := p.VisibleRange(); start != 0 {
		t.Errorf("expected window back at 0, got %d", start)
	}
}

func TestPaginator_ClampsOnShrink(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(10)
	p.SetCursor(9)

	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", p.Cursor())
	}
	if start, end := p.VisibleRange(); start != 0 || end != 4 {
		t.Errorf("expected window [0,4), got [%d,%d)", start, end)
	}

	p.SetTotal(0)
	if p.Cursor() != 0 || p.CursorUp() || p.CursorDown() {
		t.Error("expected empty paginator to stay at 0")
	}
}

func TestPaginator_ResizeKeepsCursorVisible(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(20)
	p.SetCursor(8)

	p.SetPageSize(4)
	start, end := p.VisibleRange()
	if p.Cursor() < start || p.Cursor() >= end {
		t.Errorf("cursor %d outside window [%d,%d)", p.Cursor(), start, end)
	}
}
