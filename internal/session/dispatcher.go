package session

import (
	"github.com/tillworks/pos-terminal/internal/cart"
	"github.com/tillworks/pos-terminal/internal/checkout"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
)

// Command is a discrete UI command, typically translated from a key event by
// the shell. The session routes it to the selection controller or the cart;
// the core never sees key codes.
type Command string

const (
	CommandFocusNext    Command = "focus_next"
	CommandFocusPrev    Command = "focus_prev"
	CommandReleaseFocus Command = "release_focus"
	CommandIncrement    Command = "increment"
	CommandDecrement    Command = "decrement"
	CommandRemove       Command = "remove"
)

// Outcome reports what a dispatched command did. NeedsConfirmation is set
// when decrementing a quantity-1 line: the line is only removed once the
// command is re-issued with confirm.
type Outcome struct {
	Signal            cart.Signal `json:"signal,omitempty"`
	NeedsConfirmation bool        `json:"needs_confirmation,omitempty"`
	Removed           bool        `json:"removed,omitempty"`
}

// Dispatch executes a UI command against the session. The whole command,
// focus lookup included, runs under the session mutex.
func (s *Session) Dispatch(cmd Command, confirm bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case CommandFocusNext:
		s.sel.FocusNext(len(s.state.Lines))
		return Outcome{}, nil
	case CommandFocusPrev:
		s.sel.FocusPrev(len(s.state.Lines))
		return Outcome{}, nil
	case CommandReleaseFocus:
		s.sel.Release()
		return Outcome{}, nil
	case CommandIncrement:
		return s.adjustFocused(+1, confirm)
	case CommandDecrement:
		return s.adjustFocused(-1, confirm)
	case CommandRemove:
		line, err := s.focusedLine()
		if err != nil {
			return Outcome{}, err
		}
		sig, err := s.applyLocked(cart.RemoveItem{ProductID: line.ProductID})
		return Outcome{Signal: sig, Removed: err == nil && sig == cart.SignalNone}, err
	default:
		return Outcome{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown command").WithDetails(map[string]any{"command": string(cmd)})
	}
}

func (s *Session) adjustFocused(delta int, confirm bool) (Outcome, error) {
	line, err := s.focusedLine()
	if err != nil {
		return Outcome{}, err
	}

	next := line.Quantity + delta
	if next <= 0 && !confirm {
		// Decrementing past quantity 1 deletes the line; ask first.
		return Outcome{NeedsConfirmation: true}, nil
	}

	sig, err := s.applyLocked(cart.SetQuantity{ProductID: line.ProductID, Quantity: next})
	return Outcome{Signal: sig, Removed: next <= 0 && err == nil && sig == cart.SignalNone}, err
}

// focusedLine resolves the focused line. Callers hold s.mu.
func (s *Session) focusedLine() (cart.Line, error) {
	if s.rec.Phase() != checkout.PhaseIdle {
		return cart.Line{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is frozen while a checkout is in progress")
	}
	idx, ok := s.sel.Focused()
	if !ok || idx >= len(s.state.Lines) {
		return cart.Line{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no line focused")
	}
	return s.state.Lines[idx], nil
}
