package filter

// Dropdown is the dropdown-with-chips selector. Rows of the open list toggle a
// label and close the list; chips remove their label.
type Dropdown struct {
	selection  *Selection
	open       bool
	cursor     int
	chipCursor int
}

func NewDropdown() *Dropdown {
	return &Dropdown{selection: NewSelection()}
}

func (d *Dropdown) Selection() *Selection {
	return d.selection
}

func (d *Dropdown) IsOpen() bool {
	return d.open
}

func (d *Dropdown) Open() {
	d.open = true
}

func (d *Dropdown) Close() {
	d.open = false
}

func (d *Dropdown) ToggleOpen() {
	d.open = !d.open
}

// Cursor is the highlighted row of the open list.
func (d *Dropdown) Cursor() int {
	return d.cursor
}

// MoveCursor moves the highlighted row, wrapping at both ends.
func (d *Dropdown) MoveCursor(delta int) {
	n := len(labels)
	d.cursor = ((d.cursor+delta)%n + n) % n
}

func (d *Dropdown) Highlighted() Label {
	return labels[d.cursor]
}

// Click toggles l and closes the list.
func (d *Dropdown) Click(l Label) {
	d.selection.Toggle(l)
	d.open = false
	d.clampChipCursor()
}

// ClickHighlighted clicks the highlighted row.
func (d *Dropdown) ClickHighlighted() {
	d.Click(d.Highlighted())
}

// ChipCursor is the index of the focused chip in the selection.
func (d *Dropdown) ChipCursor() int {
	return d.chipCursor
}

func (d *Dropdown) MoveChipCursor(delta int) {
	n := d.selection.Len()
	if n == 0 {
		d.chipCursor = 0
		return
	}
	d.chipCursor = ((d.chipCursor+delta)%n + n) % n
}

// RemoveChip deselects l. The open flag is left untouched.
func (d *Dropdown) RemoveChip(l Label) bool {
	removed := d.selection.Remove(l)
	d.clampChipCursor()
	return removed
}

// RemoveFocusedChip removes the chip under the chip cursor.
func (d *Dropdown) RemoveFocusedChip() (Label, bool) {
	selected := d.selection.Labels()
	if len(selected) == 0 {
		return "", false
	}
	l := selected[d.chipCursor]
	d.RemoveChip(l)
	return l, true
}

// Reset clears the selection and closes the list.
func (d *Dropdown) Reset() {
	d.selection.Clear()
	d.open = false
	d.cursor = 0
	d.chipCursor = 0
}

func (d *Dropdown) clampChipCursor() {
	n := d.selection.Len()
	if d.chipCursor >= n {
		d.chipCursor = n - 1
	}
	if d.chipCursor < 0 {
		d.chipCursor = 0
	}
}
