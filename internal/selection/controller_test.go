package selection

import "testing"

func TestFocusNextWrapsAround(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.FocusNext(3)
	if idx, ok := c.Focused(); !ok || idx != 0 {
		t.Fatalf("expected focus on 0, got %d ok=%v", idx, ok)
	}
	c.FocusNext(3)
	c.FocusNext(3)
	c.FocusNext(3)
	if idx, _ := c.Focused(); idx != 0 {
		t.Fatalf("expected wrap to 0, got %d", idx)
	}
}

func TestFocusPrevWrapsToLast(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.FocusPrev(4)
	if idx, ok := c.Focused(); !ok || idx != 3 {
		t.Fatalf("expected focus on last line, got %d ok=%v", idx, ok)
	}
	c.FocusPrev(4)
	if idx, _ := c.Focused(); idx != 2 {
		t.Fatalf("expected 2, got %d", idx)
	}
}

func TestSyncClampsAfterRemoval(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.FocusNext(5)
	c.FocusNext(5)
	c.FocusNext(5)
	c.FocusNext(5)
	c.FocusNext(5) // index 4

	c.Sync(3)
	if idx, ok := c.Focused(); !ok || idx != 2 {
		t.Fatalf("expected clamp to 2, got %d ok=%v", idx, ok)
	}
}

func TestSyncClearsOnEmptyList(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.FocusNext(2)
	c.Sync(0)
	if _, ok := c.Focused(); ok {
		t.Fatal("expected focus cleared when the line list empties")
	}
}

func TestReleaseDropsFocus(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.FocusNext(2)
	c.Release()
	if _, ok := c.Focused(); ok {
		t.Fatal("expected no focus after release")
	}
}
