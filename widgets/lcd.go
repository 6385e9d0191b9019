package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"msc-monitor/control"
	"msc-monitor/msc"
)

// 20x4 character display
const (
	LCDCols = 20
	LCDRows = 4

	hexBytes   = 14 // 10 on row 2, 4 on row 3
	hexPerLine = 10
)

// Field positions
const (
	cueCol    = 5
	cueWidth  = 10
	typeCol   = 15
	listCol   = 5
	listWidth = 9
	idCol     = 18
	cmdCol    = 9
	cmdWidth  = 11
	statusCol = 8
	moreCol   = 6
)

const (
	statusPaused = "-MSC*PAUSED*"
	statusPass   = "-MSC-PASS >>"
)

// LCD emulates the character display: text stays where it was printed
// until something overwrites it.
type LCD struct {
	cells    [LCDRows][LCDCols]byte
	row, col int
}

// NewLCD returns a display showing the boot screen.
func NewLCD() *LCD {
	l := &LCD{}
	l.Boot()
	return l
}

func (l *LCD) Clear() {
	for r := range l.cells {
		for c := range l.cells[r] {
			l.cells[r][c] = ' '
		}
	}
	l.row, l.col = 0, 0
}

func (l *LCD) SetCursor(col, row int) {
	l.col, l.row = col, row
}

// Print writes at the cursor and advances it. Text past the end of the
// row is dropped.
func (l *LCD) Print(s string) {
	if l.row < 0 || l.row >= LCDRows {
		return
	}
	for i := 0; i < len(s); i++ {
		if l.col >= 0 && l.col < LCDCols {
			l.cells[l.row][l.col] = s[i]
		}
		l.col++
	}
}

// Boot draws the field labels and the waiting message.
func (l *LCD) Boot() {
	l.Clear()
	l.Print("CUE#:")
	l.SetCursor(0, 1)
	l.Print("LIST:          ID:  ")
	l.SetCursor(0, 2)
	l.Print("WAITING FOR DATA... ")
}

// ShowCommand draws every field of a decoded command.
func (l *LCD) ShowCommand(cmd msc.Command) {
	l.SetCursor(cueCol, 0)
	l.Print(pad(cmd.Cue(), cueWidth))

	l.SetCursor(listCol, 1)
	l.Print(pad(cmd.List(), listWidth))

	l.SetCursor(typeCol, 0)
	l.Print(TypeLabel(cmd.Type()))

	l.SetCursor(idCol, 1)
	l.Print(fmt.Sprintf("%02X", cmd.DeviceID()))

	l.SetCursor(cmdCol, 3)
	l.Print(strings.Repeat(" ", cmdWidth))
	l.SetCursor(cmdCol, 3)
	l.Print(cmd.Code().Name())

	l.showPacket(cmd.Payload())
}

func (l *LCD) showPacket(data []byte) {
	l.SetCursor(0, 2)
	for i := 0; i < hexBytes; i++ {
		if i == hexPerLine {
			l.SetCursor(0, 3)
		}
		if i < len(data) {
			l.Print(fmt.Sprintf("%02X", data[i]))
		} else {
			l.Print("  ")
		}
	}
	if len(data) > hexBytes {
		l.SetCursor(moreCol, 3)
		l.Print("..")
	}
}

// ShowStatus draws the pause/pass marker on the bottom row.
func (l *LCD) ShowStatus(status string) {
	l.SetCursor(statusCol, 3)
	if status == control.StatusPaused {
		l.Print(statusPaused)
	} else {
		l.Print(statusPass)
	}
}

// Rows returns the display contents, one string per row.
func (l *LCD) Rows() [LCDRows]string {
	var rows [LCDRows]string
	for r := range l.cells {
		rows[r] = string(l.cells[r][:])
	}
	return rows
}

func (l *LCD) String() string {
	rows := l.Rows()
	return strings.Join(rows[:], "\n")
}

// TypeLabel is the right-aligned 5 character type field.
func TypeLabel(t msc.Type) string {
	switch t {
	case msc.TypeLighting:
		return "LIGHT"
	case msc.TypeSound:
		return "SOUND"
	case msc.TypeFireworks:
		return " PYRO"
	case msc.TypeAll:
		return "  ALL"
	}
	return "  ???"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderLCD draws the display with its backlight style inside a border.
func RenderLCD(l *LCD, cell lipgloss.Style, border lipgloss.Color) string {
	rows := l.Rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = cell.Render(r)
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	return frame.Render(strings.Join(lines, "\n"))
}
