package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"msc-monitor/control"
	"msc-monitor/midi"
	"msc-monitor/monitor"
	"msc-monitor/panel"
	"msc-monitor/theme"
	"msc-monitor/widgets"
)

const maxEvents = 5

type Model struct {
	Runtime   *monitor.Runtime
	DeviceMgr *midi.DeviceManager // nil on the serial transport
	Sim       *panel.Sim          // nil with a real board
	Link      *panel.Link         // serial panel board, nil when simulated
	Theme     *theme.Theme
	Backlight theme.Backlight
	Source    string // transport description for the header

	keys     keyMap
	lcd      *widgets.LCD
	snap     monitor.Snapshot
	seen     uint64
	status   string
	events   []string
	showHelp bool
	quitting bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// devicesClosedMsg ends the device listener once the manager shuts down.
type devicesClosedMsg struct{}

func NewModel(rt *monitor.Runtime, deviceMgr *midi.DeviceManager, sim *panel.Sim, th *theme.Theme, bl theme.Backlight) Model {
	return Model{
		Runtime:   rt,
		DeviceMgr: deviceMgr,
		Sim:       sim,
		Theme:     th,
		Backlight: bl,
		keys:      defaultKeys(),
		lcd:       widgets.NewLCD(),
		showHelp:  true,
	}
}

func ListenForUpdates(rt *monitor.Runtime) tea.Cmd {
	return func() tea.Msg {
		<-rt.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return devicesClosedMsg{}
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Runtime)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		m.refresh()
		return m, ListenForUpdates(m.Runtime)

	case DeviceEventMsg:
		m.events = append(m.events, midi.DeviceEvent(msg).String())
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
		return m, ListenForDevices(m.DeviceMgr)

	case devicesClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.ClearLCD):
		m.lcd.Boot()
		m.lcd.ShowStatus(m.status)

	case key.Matches(msg, m.keys.ToggleHelp):
		m.showHelp = !m.showHelp
	}

	if m.Sim == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Press):
		m.Sim.Press()
	case key.Matches(msg, m.keys.Interrupt):
		m.Sim.Interrupt()
	case key.Matches(msg, m.keys.Enable):
		m.Sim.ToggleEnabled()
	case key.Matches(msg, m.keys.Dimmer):
		m.Sim.AdjustBrightness(-1)
	case key.Matches(msg, m.keys.Brighter):
		m.Sim.AdjustBrightness(1)
	}
	return m, nil
}

// refresh pulls a snapshot and replays new commands and status changes onto
// the display, in the order the hardware would see them.
func (m *Model) refresh() {
	m.snap = m.Runtime.Snapshot()

	if m.snap.HaveLast && m.snap.Received != m.seen {
		m.seen = m.snap.Received
		m.lcd.ShowCommand(m.snap.Last)
	}
	if status := m.snap.Control.Directive.Status; status != "" && status != m.status {
		m.status = status
		m.lcd.ShowStatus(status)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.snap
	ctl := snap.Control
	d := ctl.Directive

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	mode := "PASS"
	if ctl.Paused {
		mode = warnStyle.Render("PAUSED")
	}
	header := headerStyle.Render("msc-monitor") + "  " + mode
	if m.Source != "" {
		header += dimStyle.Render("  " + m.Source)
	}
	if m.Link != nil {
		if m.Link.Connected() {
			header += dimStyle.Render("  panel online")
		} else {
			header += warnStyle.Render("  panel offline")
		}
	}

	lamps := fmt.Sprintf("%s thru   %s relay   %s enabled   %s rx",
		m.Theme.Lamp(d.PassthroughEnabled),
		m.Theme.Lamp(d.RelayEnergized),
		m.Theme.Lamp(ctl.Enabled),
		m.Theme.Lamp(ctl.Flashing),
	)

	meter := fmt.Sprintf("button %s %2d/%d",
		widgets.RenderMeter(m.Theme.Symbols, ctl.Counter/2, control.DebounceMax/2,
			control.DebounceLow/2, control.DebounceHigh/2),
		ctl.Counter, control.DebounceMax)

	counts := dimStyle.Render(fmt.Sprintf("received %d  dropped %d  brightness %3.0f%%",
		snap.Received, snap.Dropped, snap.Brightness*100))

	lcd := widgets.RenderLCD(m.lcd, m.Theme.LCDStyle(d.Backlight, snap.Brightness), m.Theme.Surface())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(lcd)
	out.WriteString("\n")
	out.WriteString(lamps)
	out.WriteString("\n")
	out.WriteString(meter)
	out.WriteString("\n")
	out.WriteString(counts)
	out.WriteString("\n")

	if m.DeviceMgr != nil {
		out.WriteString("\n")
		out.WriteString(m.portsView(dimStyle))
	}

	if m.showHelp {
		out.WriteString("\n\n")
		out.WriteString(widgets.RenderBacklightLegend(m.Backlight))
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(m.keys.sections(m.Sim != nil))))
	}

	return out.String()
}

func (m Model) portsView(dim lipgloss.Style) string {
	inputs := m.DeviceMgr.Inputs()
	in := "none"
	if len(inputs) > 0 {
		in = strings.Join(inputs, ", ")
	}
	thru := m.DeviceMgr.Thru().Port()
	if thru == "" {
		thru = "none"
	}
	fwd, blocked := m.DeviceMgr.Thru().Stats()

	lines := []string{
		fmt.Sprintf("inputs: %s", in),
		fmt.Sprintf("thru:   %s  (forwarded %d, blocked %d)", thru, fwd, blocked),
	}
	for _, ev := range m.events {
		lines = append(lines, dim.Render("  "+ev))
	}
	return strings.Join(lines, "\n")
}
