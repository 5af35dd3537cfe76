package components

// List is a scrolling cursor over a row count. Rows live with the caller.
type List struct {
	Len      int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// SetLen replaces the row count and clamps the cursor into range.
func (l *List) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	l.Len = n
	l.clamp()
}

// Reset moves the cursor back to the first row.
func (l *List) Reset() {
	l.Cursor = 0
	l.Offset = 0
}

// SetPageSize changes how many rows are visible at once.
func (l *List) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	l.PageSize = size
	l.clamp()
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < l.Len-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Window returns the half-open range of visible rows.
func (l *List) Window() (start, end int) {
	if l.Len == 0 {
		return 0, 0
	}
	end = l.Offset + l.PageSize
	if end > l.Len {
		end = l.Len
	}
	return l.Offset, end
}

// Selected returns the index of the cursor row.
func (l *List) Selected() int {
	return l.Cursor
}

// IsSelected returns true if the given absolute index is the cursor.
func (l *List) IsSelected(absIdx int) bool {
	return absIdx == l.Cursor
}

func (l *List) clamp() {
	if l.Len == 0 {
		l.Cursor, l.Offset = 0, 0
		return
	}
	if l.Cursor >= l.Len {
		l.Cursor = l.Len - 1
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}
