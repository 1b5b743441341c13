package term

import (
	"errors"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"

	"github.com/sambigeara/machi/pkg/service"
)

const (
	globalTitle       = " global "
	emptyTitle        = " machi "
	emptyListsMessage = "No lists found"
)

var errEventStreamClosed = errors.New("terminal event stream closed")

type themeStyles struct {
	border          tcell.Style
	listHighlight   tcell.Style
	detailHighlight tcell.Style
}

// Terminal draws a Selector onto a tcell screen and feeds key presses back into it
type Terminal struct {
	sel *service.Selector
	log *log.Logger

	S     tcell.Screen
	style tcell.Style
	theme themeStyles

	// EmptyMessage is shown in the detail pane when there are no lists
	EmptyMessage string

	writeClipboard func(string) error
}

// NewScreen returns an uninitialised screen for the controlling terminal
func NewScreen() (tcell.Screen, error) {
	encoding.Register()
	return tcell.NewScreen()
}

// NewTerm ...
func NewTerm(sel *service.Selector, s tcell.Screen, theme service.Theme, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defStyle := tcell.StyleDefault
	return &Terminal{
		sel:   sel,
		log:   logger,
		S:     s,
		style: defStyle,
		theme: themeStyles{
			border:          defStyle.Foreground(tcell.GetColor(theme.Border)),
			listHighlight:   defStyle.Foreground(tcell.GetColor(theme.ListHighlight)).Bold(true),
			detailHighlight: defStyle.Foreground(tcell.GetColor(theme.DetailHighlight)).Bold(true),
		},
		EmptyMessage:   emptyListsMessage,
		writeClipboard: clipboard.WriteAll,
	}
}

// Run takes over the terminal until the user quits or input fails. The screen is
// finalised on every return path, restoring the terminal to its prior state.
func (t *Terminal) Run() error {
	if err := t.S.Init(); err != nil {
		return err
	}
	defer t.S.Fini()

	t.S.SetStyle(t.style)
	t.S.EnableMouse()
	t.S.Clear()

	for {
		if err := t.paint(); err != nil {
			t.log.Debug("paint", "err", err)
		}
		cont, err := t.HandleEvent(t.S.PollEvent())
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// HandleEvent applies a single tcell event. It returns false once the user has quit.
func (t *Terminal) HandleEvent(ev tcell.Event) (bool, error) {
	interactionEvent := service.InteractionEvent{}
	switch ev := ev.(type) {
	case nil:
		return false, errEventStreamClosed
	case *tcell.EventError:
		return false, ev
	case *tcell.EventResize:
		t.S.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			interactionEvent.T = service.KeyEscape
		case tcell.KeyDown:
			interactionEvent.T = service.KeyCursorDown
		case tcell.KeyUp:
			interactionEvent.T = service.KeyCursorUp
		case tcell.KeyCtrlC:
			interactionEvent.T = service.KeyCopy
		}
	}

	prev := t.sel.Cur
	effect := t.sel.HandleInteraction(interactionEvent)
	if t.sel.Cur != prev {
		t.log.Debug("selection moved", "from", prev, "to", t.sel.Cur)
	}

	switch effect.T {
	case service.EffectCopy:
		if err := t.writeClipboard(effect.Text); err != nil {
			t.log.Warn("copy to clipboard", "err", err)
		}
	}

	return t.sel.Running, nil
}

func (t *Terminal) paint() error {
	t.S.Clear()
	w, h := t.S.Size()
	l, err := computeLayout(w, h)

	drawBox(t.S, l.list, t.theme.border, t.style, globalTitle)
	drawList(t.S, l.list.inner(), t.sel.ListNames(), t.sel.Cur, t.style, t.theme.listHighlight)

	if cur, ok := t.sel.CurList(); ok {
		drawBox(t.S, l.detail, t.theme.border, t.style, " "+cur.Name+" ")
		drawList(t.S, l.detail.inner(), t.sel.DetailLines(), 0, t.style, t.theme.detailHighlight)
	} else {
		drawBox(t.S, l.detail, t.theme.border, t.style, emptyTitle)
		drawList(t.S, l.detail.inner(), []string{t.EmptyMessage}, -1, t.style.Dim(true), t.style)
	}

	// Reserved for command display
	drawBox(t.S, l.commands, t.theme.border, t.style, "")

	t.S.Show()
	return err
}
