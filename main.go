package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"

	"msc-monitor/config"
	"msc-monitor/control"
	"msc-monitor/debug"
	"msc-monitor/midi"
	"msc-monitor/monitor"
	"msc-monitor/msc"
	"msc-monitor/panel"
	"msc-monitor/theme"
	"msc-monitor/transport"
	"msc-monitor/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/msc-monitor/config.yaml)")
	debugLog := flag.Bool("debug", false, "write a debug log to ~/.config/msc-monitor/debug.log")
	writeConfig := flag.Bool("write-config", false, "write the effective config back and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	if *writeConfig {
		if err := cfg.Save(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "write config:", err)
			os.Exit(1)
		}
		return
	}

	if *debugLog {
		path := cfg.Log.Path
		if path == "" {
			path = debug.DefaultPath()
		}
		if err := debug.EnableAt(path); err != nil {
			fmt.Fprintln(os.Stderr, "debug log:", err)
		}
		debug.Only(cfg.Log.Categories...)
		defer debug.Disable()
	}
	debug.Log("config", "transport=%s panel=%s tick=%s guard=%s flash=%s",
		cfg.Transport, cfg.Panel.Mode, cfg.Tick(), cfg.ToggleGuard(), cfg.FlashWindow())

	backlight, err := theme.LoadBacklight(cfg.Backlight.Palette)
	if err != nil {
		fmt.Fprintln(os.Stderr, "backlight palette:", err)
		os.Exit(1)
	}
	th := theme.New(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Front panel
	var (
		board panel.Board
		sim   *panel.Sim
		link  *panel.Link
	)
	switch cfg.Panel.Mode {
	case config.PanelSerial:
		mode, err := panel.ParseButtonMode(cfg.Panel.ButtonMode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		link = panel.NewLink(cfg.Panel.Device, cfg.Panel.Baud, panel.LinkOptions{
			Mode:          mode,
			HasRelay:      cfg.Panel.RelayFitted(),
			HasBrightness: cfg.Panel.BrightnessFitted(),
		})
		go link.Run(ctx)
		board = link
	default:
		sim = panel.NewSim(panel.DefaultHold)
		board = sim
	}

	// Transport and runtime. The runtime is created before the transport
	// starts so no command arrives before Submit exists.
	var (
		rt        *monitor.Runtime
		deviceMgr *midi.DeviceManager
		source    string
	)
	submit := func(cmd msc.Command) { rt.Submit(cmd) }
	opts := monitor.Options{
		Tick: cfg.Tick(),
		Control: control.Options{
			ToggleGuard: cfg.ToggleGuard(),
			FlashWindow: cfg.FlashWindow(),
			Colors:      &backlight,
		},
	}

	switch cfg.Transport {
	case config.TransportSerial:
		rt = monitor.New(board, nil, opts)
		src := transport.NewSerialSource(cfg.Serial.Device, cfg.Serial.Baud, submit)
		go src.Run(ctx)
		source = fmt.Sprintf("serial %s @%d", cfg.Serial.Device, cfg.Serial.Baud)
	default:
		deviceMgr = midi.NewDeviceManager(midi.Options{
			InputPatterns:    cfg.MIDI.InputPatterns,
			ExcludedPatterns: cfg.MIDI.ExcludedPatterns,
			ThruPort:         cfg.MIDI.ThruPort,
			PollRate:         cfg.RescanInterval(),
		}, submit)
		rt = monitor.New(board, []control.Actuator{deviceMgr.Thru()}, opts)
		go deviceMgr.Run(ctx)
		defer gomidi.CloseDriver()
		source = "midi"
	}
	go rt.Run(ctx)

	m := tui.NewModel(rt, deviceMgr, sim, th, backlight)
	m.Source = source
	m.Link = link
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
