package main

import (
	"fmt"
	"strings"

	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/display"
)

// keyChars are the terminal keys of the keybox keys, lowest first.
const keyChars = "qwertyuiopasdfghjklzxcvb"

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	roleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d70"))
	heldStyle   = lipgloss.NewStyle().Reverse(true)
	issueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d33"))
)

// Tapper presses pins of the virtual keybox.
type Tapper interface {
	Tap(pin int)
	Press(pin int)
	Release(pin int)
}

type model struct {
	cfg    *config.Config
	keys   Tapper
	frames <-chan string

	frame    string
	issue    string         // user facing description of a startup problem
	pins     map[string]int // terminal key -> pin
	holdX    bool
	quitting bool
}

type frameMsg string

func newModel(cfg *config.Config, keys Tapper, frames <-chan string, frame string, warning error) model {
	kb := cfg.Keybox
	pins := map[string]int{
		"1":   kb.EXPins[0],
		"2":   kb.EXPins[1],
		"3":   kb.EXPins[2],
		"tab": kb.PausePin,
		" ":   kb.CrankPin,
	}
	for i, pin := range kb.Pins[1:] {
		if i < len(keyChars) {
			pins[string(keyChars[i])] = pin
		}
	}

	m := model{
		cfg:    cfg,
		keys:   keys,
		frames: frames,
		frame:  frame,
		pins:   pins,
	}
	if warning != nil {
		m.issue = fmsg.GetIssue(warning)
	}
	return m
}

func listenForFrame(frames <-chan string) tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-frames)
	}
}

func (m model) Init() tea.Cmd {
	return listenForFrame(m.frames)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "ctrl+c":
			m.quitting = true
			if m.holdX {
				m.keys.Release(m.xPin())
			}
			return m, tea.Quit

		case "`":
			m.holdX = !m.holdX
			if m.holdX {
				m.keys.Press(m.xPin())
			} else {
				m.keys.Release(m.xPin())
			}

		default:
			if pin, ok := m.pins[key]; ok {
				m.keys.Tap(pin)
			}
		}

	case frameMsg:
		m.frame = string(msg)
		return m, listenForFrame(m.frames)
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	kb := m.cfg.Keybox
	open := m.cfg.MIDI.High.OpenNote

	var cells []string
	for i := range kb.NumKeys() {
		if i >= len(keyChars) {
			break
		}
		label := fmt.Sprintf("%c:%-3s", keyChars[i], display.NoteName(open+i+1))
		style := dimStyle
		if role := keyRole(kb, i); role != "" {
			label = fmt.Sprintf("%c:%-3s", keyChars[i], role)
			style = roleStyle
		}
		if i == kb.X && m.holdX {
			style = heldStyle
		}
		cells = append(cells, style.Render(label))
	}

	rows := []string{
		strings.Join(cells[:min(12, len(cells))], " "),
	}
	if len(cells) > 12 {
		rows = append(rows, strings.Join(cells[12:], " "))
	}

	help := dimStyle.Render("1/2/3:EX  tab:pause  space:crank  `:hold X  esc:quit")
	status := activeStyle.Render("X up")
	if m.holdX {
		status = heldStyle.Render("X held")
	}

	view := fmt.Sprintf("\n%s\n\n%s\n\n%s  %s\n", m.frame, strings.Join(rows, "\n"), status, help)
	if m.issue != "" {
		view += issueStyle.Render(m.issue) + "\n"
	}
	return view
}

func (m model) xPin() int {
	return m.cfg.Keybox.Pins[m.cfg.Keybox.X+1]
}

// keyRole returns the role label of key i.
func keyRole(kb config.KeyboxConfig, i int) string {
	switch i {
	case kb.X:
		return "X"
	case kb.A:
		return "A"
	case kb.B:
		return "B"
	case kb.TposeUp:
		return "T+"
	case kb.TposeDown:
		return "T-"
	case kb.Button1:
		return "1"
	case kb.Button2:
		return "2"
	case kb.Button3:
		return "3"
	case kb.Button4:
		return "4"
	case kb.Button5:
		return "5"
	case kb.Button6:
		return "6"
	}
	return ""
}
