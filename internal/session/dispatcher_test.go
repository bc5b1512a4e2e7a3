package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/internal/cart"
	"github.com/tillworks/pos-terminal/internal/catalog"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
)

func mustID(s string) uuid.UUID {
	return uuid.MustParse(s)
}

func filtersProduct() catalog.Product {
	p := coffeeProduct()
	p.ID = mustID("22222222-2222-2222-2222-222222222222")
	p.Name = "Paper Filters"
	p.SalePrice = decimal.RequireFromString("3.50")
	return p
}

func TestDispatchNavigationWraps(t *testing.T) {
	t.Parallel()

	s := testSession(t, cashierClaims(), &stubSubmitter{})
	if _, err := s.AddProduct(coffeeProduct(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddProduct(filtersProduct(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	mustDispatch(t, s, CommandFocusNext) // line 0
	mustDispatch(t, s, CommandFocusNext) // line 1
	mustDispatch(t, s, CommandFocusNext) // wraps to 0

	snap := s.Snapshot()
	if snap.FocusedIndex == nil || *snap.FocusedIndex != 0 {
		t.Fatalf("expected wrap to first line, got %v", snap.FocusedIndex)
	}

	mustDispatch(t, s, CommandFocusPrev) // wraps back to last
	snap = s.Snapshot()
	if snap.FocusedIndex == nil || *snap.FocusedIndex != 1 {
		t.Fatalf("expected wrap to last line, got %v", snap.FocusedIndex)
	}
}

func TestDispatchIncrementHitsStockGuard(t *testing.T) {
	t.Parallel()

	p := coffeeProduct()
	p.Stock = 2
	s := testSession(t, cashierClaims(), &stubSubmitter{})
	if _, err := s.AddProduct(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	mustDispatch(t, s, CommandFocusNext)
	out, err := s.Dispatch(CommandIncrement, false)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if out.Signal != cart.SignalStockInsufficient {
		t.Fatalf("expected stock signal, got %q", out.Signal)
	}
	if s.Snapshot().Lines[0].Quantity != 2 {
		t.Fatal("rejected increment must not change quantity")
	}
}

func TestDispatchDecrementAtOneNeedsConfirmation(t *testing.T) {
	t.Parallel()

	s := testSession(t, cashierClaims(), &stubSubmitter{})
	if _, err := s.AddProduct(coffeeProduct(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	mustDispatch(t, s, CommandFocusNext)

	out, err := s.Dispatch(CommandDecrement, false)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !out.NeedsConfirmation {
		t.Fatal("expected removal confirmation request")
	}
	if len(s.Snapshot().Lines) != 1 {
		t.Fatal("line must survive until the removal is confirmed")
	}

	out, err = s.Dispatch(CommandDecrement, true)
	if err != nil {
		t.Fatalf("confirmed decrement: %v", err)
	}
	if !out.Removed {
		t.Fatal("expected removal after confirmation")
	}

	snap := s.Snapshot()
	if len(snap.Lines) != 0 {
		t.Fatal("expected empty cart")
	}
	if snap.FocusedIndex != nil {
		t.Fatal("focus must clear when the cart empties")
	}
}

func TestDispatchRemoveFocusedClampsFocus(t *testing.T) {
	t.Parallel()

	s := testSession(t, cashierClaims(), &stubSubmitter{})
	if _, err := s.AddProduct(coffeeProduct(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddProduct(filtersProduct(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	mustDispatch(t, s, CommandFocusNext)
	mustDispatch(t, s, CommandFocusNext) // focus last line

	out, err := s.Dispatch(CommandRemove, false)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !out.Removed {
		t.Fatal("expected removal")
	}

	snap := s.Snapshot()
	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Lines))
	}
	if snap.FocusedIndex == nil || *snap.FocusedIndex != 0 {
		t.Fatalf("expected focus clamped to last valid index, got %v", snap.FocusedIndex)
	}
}

func TestDispatchWithoutFocusErrors(t *testing.T) {
	t.Parallel()

	s := testSession(t, cashierClaims(), &stubSubmitter{})
	_, err := s.Dispatch(CommandIncrement, false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected no-focus conflict, got %v", err)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Parallel()

	s := testSession(t, cashierClaims(), &stubSubmitter{})
	_, err := s.Dispatch(Command("jump"), false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func mustDispatch(t *testing.T, s *Session, cmd Command) {
	t.Helper()
	if _, err := s.Dispatch(cmd, false); err != nil {
		t.Fatalf("dispatch %s: %v", cmd, err)
	}
}

func TestDispatchIsAtomicUnderConcurrency(t *testing.T) {
	t.Parallel()

	p := coffeeProduct()
	p.Stock = 100
	s := testSession(t, cashierClaims(), &stubSubmitter{})
	if _, err := s.AddProduct(p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	mustDispatch(t, s, CommandFocusNext)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.Dispatch(CommandIncrement, false); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if got := snap.Lines[0].Quantity; got != 1+workers {
		t.Fatalf("lost increments: expected %d, got %d", 1+workers, got)
	}
}
