package term

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"mvdan.cc/xurls/v2"
)

const (
	listPaneWidth, detailPaneMinWidth    = 20, 10
	mainAreaMinHeight, commandPaneHeight = 5, 4
)

var errScreenTooSmall = errors.New("screen too small for layout")

// Thick box drawing runes
const (
	boxHorizontal  = '━'
	boxVertical    = '┃'
	boxTopLeft     = '┏'
	boxTopRight    = '┓'
	boxBottomLeft  = '┗'
	boxBottomRight = '┛'
)

var urlRx = xurls.Strict()

type rect struct {
	x, y, w, h int
}

func (r rect) inner() rect {
	in := rect{r.x + 1, r.y + 1, r.w - 2, r.h - 2}
	if in.w < 0 {
		in.w = 0
	}
	if in.h < 0 {
		in.h = 0
	}
	return in
}

type layout struct {
	list, detail, commands rect
}

// computeLayout splits the screen into the list and detail panes on top, and the
// command pane beneath. Fixed sizes give way when the screen can't fit the minimums.
func computeLayout(w, h int) (layout, error) {
	var err error

	cmdH := commandPaneHeight
	if h-cmdH < mainAreaMinHeight {
		cmdH = max(0, h-mainAreaMinHeight)
		err = errScreenTooSmall
	}
	mainH := h - cmdH

	listW := listPaneWidth
	if w-listW < detailPaneMinWidth {
		listW = max(0, w-detailPaneMinWidth)
		err = errScreenTooSmall
	}

	return layout{
		list:     rect{0, 0, listW, mainH},
		detail:   rect{listW, 0, w - listW, mainH},
		commands: rect{0, mainH, w, cmdH},
	}, err
}

// emitStr writes str from x, clipped to maxX. Zero width runes are combined onto a
// blank cell as tcell expects. Returns the x position after the last emitted cell.
func emitStr(s tcell.Screen, x, y, maxX int, style tcell.Style, str string) int {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, c, comb, style)
		x += w
	}
	return x
}

// emitLine is emitStr with any URLs in the line underlined
func emitLine(s tcell.Screen, x, y, maxX int, style tcell.Style, line string) {
	prev := 0
	for _, loc := range urlRx.FindAllStringIndex(line, -1) {
		x = emitStr(s, x, y, maxX, style, line[prev:loc[0]])
		x = emitStr(s, x, y, maxX, style.Underline(true), line[loc[0]:loc[1]])
		prev = loc[1]
	}
	emitStr(s, x, y, maxX, style, line[prev:])
}

func drawBox(s tcell.Screen, r rect, borderStyle, titleStyle tcell.Style, title string) {
	if r.w < 2 || r.h < 2 {
		return
	}
	x2, y2 := r.x+r.w-1, r.y+r.h-1
	for x := r.x + 1; x < x2; x++ {
		s.SetContent(x, r.y, boxHorizontal, nil, borderStyle)
		s.SetContent(x, y2, boxHorizontal, nil, borderStyle)
	}
	for y := r.y + 1; y < y2; y++ {
		s.SetContent(r.x, y, boxVertical, nil, borderStyle)
		s.SetContent(x2, y, boxVertical, nil, borderStyle)
	}
	s.SetContent(r.x, r.y, boxTopLeft, nil, borderStyle)
	s.SetContent(x2, r.y, boxTopRight, nil, borderStyle)
	s.SetContent(r.x, y2, boxBottomLeft, nil, borderStyle)
	s.SetContent(x2, y2, boxBottomRight, nil, borderStyle)

	if title == "" {
		return
	}
	title = runewidth.Truncate(title, r.w-2, "")
	tx := r.x + 1 + (r.w-2-runewidth.StringWidth(title))/2
	emitStr(s, tx, r.y, x2, titleStyle, title)
}

// drawList fills r with one line per entry. The highlighted entry is kept in view
// by scrolling, and highlight < 0 disables highlighting.
func drawList(s tcell.Screen, r rect, lines []string, highlight int, style, highlightStyle tcell.Style) {
	if r.h <= 0 || r.w <= 0 {
		return
	}
	offset := 0
	if highlight >= r.h {
		offset = highlight - r.h + 1
	}
	for i := offset; i < len(lines) && i-offset < r.h; i++ {
		st := style
		if i == highlight {
			st = highlightStyle
		}
		emitLine(s, r.x, r.y+i-offset, r.x+r.w, st, lines[i])
	}
}
