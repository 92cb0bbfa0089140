package terminal

// lineEdit is a single-line text buffer with a cursor, used for renaming
// nodes and edges in the property panel.
type lineEdit struct {
	buf    []rune
	cursor int
}

func newLineEdit(s string) *lineEdit {
	buf := []rune(s)
	return &lineEdit{buf: buf, cursor: len(buf)}
}

func (l *lineEdit) String() string { return string(l.buf) }

func (l *lineEdit) insert(r rune) {
	l.buf = append(l.buf, 0)
	copy(l.buf[l.cursor+1:], l.buf[l.cursor:])
	l.buf[l.cursor] = r
	l.cursor++
}

func (l *lineEdit) backspace() {
	if l.cursor == 0 {
		return
	}
	l.buf = append(l.buf[:l.cursor-1], l.buf[l.cursor:]...)
	l.cursor--
}

func (l *lineEdit) deleteForward() {
	if l.cursor >= len(l.buf) {
		return
	}
	l.buf = append(l.buf[:l.cursor], l.buf[l.cursor+1:]...)
}

func (l *lineEdit) left() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *lineEdit) right() {
	if l.cursor < len(l.buf) {
		l.cursor++
	}
}

func (l *lineEdit) home() { l.cursor = 0 }

func (l *lineEdit) end() { l.cursor = len(l.buf) }

// deleteWordBackward deletes the previous word (Ctrl+W)
func (l *lineEdit) deleteWordBackward() {
	if l.cursor == 0 {
		return
	}

	start := l.cursor - 1
	for start >= 0 && l.buf[start] == ' ' {
		start--
	}
	for start >= 0 && l.buf[start] != ' ' {
		start--
	}
	start++

	l.buf = append(l.buf[:start], l.buf[l.cursor:]...)
	l.cursor = start
}

// deleteToBeginning deletes from the cursor to the start of the line (Ctrl+U)
func (l *lineEdit) deleteToBeginning() {
	l.buf = append(l.buf[:0], l.buf[l.cursor:]...)
	l.cursor = 0
}

// deleteToEnd deletes from the cursor to the end of the line (Ctrl+K)
func (l *lineEdit) deleteToEnd() {
	l.buf = l.buf[:l.cursor]
}
