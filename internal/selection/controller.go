package selection

// Controller tracks which cart line has keyboard focus. It knows nothing
// about prices or quantities; it only manages an index into the line list the
// caller renders.
type Controller struct {
	index    int
	hasFocus bool
}

func NewController() *Controller {
	return &Controller{}
}

// Focused returns the focused index, or false when focus is released.
func (c *Controller) Focused() (int, bool) {
	if !c.hasFocus {
		return 0, false
	}
	return c.index, true
}

// FocusNext moves focus down one line, wrapping past the last line to the
// first. With no prior focus it lands on the first line.
func (c *Controller) FocusNext(lineCount int) {
	if lineCount <= 0 {
		c.Release()
		return
	}
	if !c.hasFocus {
		c.index = 0
		c.hasFocus = true
		return
	}
	c.index = (c.index + 1) % lineCount
}

// FocusPrev moves focus up one line, wrapping from the first line to the last.
func (c *Controller) FocusPrev(lineCount int) {
	if lineCount <= 0 {
		c.Release()
		return
	}
	if !c.hasFocus {
		c.index = lineCount - 1
		c.hasFocus = true
		return
	}
	c.index = (c.index - 1 + lineCount) % lineCount
}

// Release drops focus, e.g. when input returns to the search field.
func (c *Controller) Release() {
	c.index = 0
	c.hasFocus = false
}

// Sync reconciles focus with a changed line list: focus clears when the list
// empties and clamps to the last line when the focused index fell off the end
// after a removal.
func (c *Controller) Sync(lineCount int) {
	if lineCount <= 0 {
		c.Release()
		return
	}
	if c.hasFocus && c.index >= lineCount {
		c.index = lineCount - 1
	}
}
