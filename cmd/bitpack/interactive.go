package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bitpack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	unusedBitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	// One style per field, cycled by field index when coloring bit spans.
	fieldPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")),
	}
)

type modelState int

const (
	stateEditSpec modelState = iota
	stateInputValues
	stateShowBuffer
)

type inspectModel struct {
	err error

	specInput textinput.Model
	offInput  textinput.Model
	inputs    []textinput.Model

	fields []field
	group  bitpack.GroupCodec
	offset int
	buf    []byte
	values []any

	state    modelState
	focusIdx int
}

func newInspectModel(spec string, offset int) *inspectModel {
	si := textinput.New()
	si.Placeholder = "flags:u8, ok:bool, id:u16"
	si.Prompt = "spec: "
	si.Width = 60
	si.SetValue(spec)
	si.Focus()

	oi := textinput.New()
	oi.Prompt = "bit offset: "
	oi.Width = 8
	oi.SetValue(strconv.Itoa(offset))

	return &inspectModel{
		specInput: si,
		offInput:  oi,
		state:     stateEditSpec,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowBuffer {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateEditSpec:
				m.compileSpec()
				if m.err == nil {
					m.state = stateInputValues
				}

			case stateInputValues:
				m.packValues()
				if m.err == nil {
					m.state = stateShowBuffer
				}

			case stateShowBuffer:
				m.state = stateEditSpec
				m.err = nil
				m.focusModelInput(true)
			}

		case "tab", "shift+tab":
			forward := msg.String() == "tab"
			switch m.state {
			case stateEditSpec:
				m.focusModelInput(!m.specInput.Focused())
			case stateInputValues:
				if len(m.inputs) > 1 {
					m.inputs[m.focusIdx].Blur()
					if forward {
						m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
					} else {
						m.focusIdx = (m.focusIdx + len(m.inputs) - 1) % len(m.inputs)
					}
					m.inputs[m.focusIdx].Focus()
				}
			}

		case "esc":
			switch m.state {
			case stateInputValues:
				m.state = stateEditSpec
				m.err = nil
				m.inputs = nil
				m.focusModelInput(true)
			case stateShowBuffer:
				m.state = stateInputValues
				m.err = nil
			}
		}
	}

	var cmds []tea.Cmd
	switch m.state {
	case stateEditSpec:
		var cmd tea.Cmd
		m.specInput, cmd = m.specInput.Update(msg)
		cmds = append(cmds, cmd)
		m.offInput, cmd = m.offInput.Update(msg)
		cmds = append(cmds, cmd)
	case stateInputValues:
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *inspectModel) focusModelInput(spec bool) {
	if spec {
		m.specInput.Focus()
		m.offInput.Blur()
	} else {
		m.specInput.Blur()
		m.offInput.Focus()
	}
}

func (m *inspectModel) compileSpec() {
	fields, err := parseSpec(m.specInput.Value())
	if err != nil {
		m.err = err
		return
	}

	offset := 0
	if v := strings.TrimSpace(m.offInput.Value()); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			m.err = fmt.Errorf("bad bit offset %q", v)
			return
		}
	}

	members := make([]bitpack.Any, len(fields))
	for i, f := range fields {
		members[i] = f.codec
	}

	m.fields = fields
	m.group = bitpack.Group(members...)
	m.offset = offset
	m.err = nil

	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.codec.String()
		ti.Prompt = f.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *inspectModel) packValues() {
	vs := make([]any, len(m.fields))
	for i, input := range m.inputs {
		v, err := parseValue(m.fields[i].codec, input.Value())
		if err != nil {
			m.err = fmt.Errorf("field %q: %w", m.fields[i].name, err)
			return
		}
		vs[i] = v
	}

	buf := make([]byte, (m.offset+m.group.Width()+7)/8)
	m.group.Pack(vs, buf, m.offset)
	m.buf = buf
	m.values = m.group.Unpack(buf, m.offset)
	m.err = nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bitpack inspector"))
	b.WriteString("\n\n")

	switch m.state {
	case stateEditSpec:
		b.WriteString(m.specInput.View())
		b.WriteString("\n")
		b.WriteString(m.offInput.View())
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("tab switch field • enter compile • ctrl+c quit"))

	case stateInputValues:
		b.WriteString(fmt.Sprintf("Layout %s, %d bits at bit offset %d\n\n",
			typeStyle.Render(m.group.String()), m.group.Width(), m.offset))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("tab next field • enter pack • esc back"))

	case stateShowBuffer:
		b.WriteString(fmt.Sprintf("Packed %d bytes:\n\n", len(m.buf)))
		b.WriteString(m.renderBits())
		b.WriteString("\n\n")
		for i, f := range m.fields {
			style := fieldPalette[i%len(fieldPalette)]
			b.WriteString(fmt.Sprintf("  %s %-12s %-14s bits [%d, %d)  = %s\n",
				style.Render("■"),
				f.name,
				f.codec.String(),
				m.offset+m.group.Offset(i),
				m.offset+m.group.Offset(i)+f.codec.Width(),
				resultStyle.Render(formatValue(m.values[i]))))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc edit values • enter new spec • q quit"))
	}

	return b.String()
}

// renderBits draws the buffer in binary with each field's bit span in its
// own color. Bits outside every field are dimmed.
func (m *inspectModel) renderBits() string {
	owner := make([]int, len(m.buf)*8)
	for i := range owner {
		owner[i] = -1
	}
	for i := range m.fields {
		start := m.offset + m.group.Offset(i)
		for bit := start; bit < start+m.fields[i].codec.Width(); bit++ {
			owner[bit] = i
		}
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, octet := range m.buf {
		if i > 0 {
			if i%8 == 0 {
				b.WriteString("\n  ")
			} else {
				b.WriteByte(' ')
			}
		}
		for j := 0; j < 8; j++ {
			bit := i*8 + j
			ch := "0"
			if octet&(1<<(7-j)) != 0 {
				ch = "1"
			}
			if owner[bit] >= 0 {
				b.WriteString(fieldPalette[owner[bit]%len(fieldPalette)].Render(ch))
			} else {
				b.WriteString(unusedBitStyle.Render(ch))
			}
		}
	}
	return b.String()
}

func runInteractive(spec string, offset int) error {
	p := tea.NewProgram(newInspectModel(spec, offset), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
