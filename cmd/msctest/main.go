package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"msc-monitor/msc"
	"msc-monitor/transport"
)

const serialPrefix = "serial:"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer midi.CloseDriver()

	var err error
	switch os.Args[1] {
	case "list":
		listPorts()
	case "send":
		err = send(os.Args[2:])
	case "decode":
		err = decode(os.Args[2:])
	case "watch":
		err = watch(os.Args[2:])
	case "commands":
		listCommands()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MSC Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                                   - List MIDI and serial ports")
	fmt.Println("  commands                               - List command names")
	fmt.Println("  send <port> <type> <cmd> [cue] [list]  - Send one MSC frame (device id via MSC_ID)")
	fmt.Println("  decode <hex bytes>                     - Decode a frame, e.g. F0 7F 01 02 10 01 31 F7")
	fmt.Println("  watch <port>                           - Print every MSC frame received")
	fmt.Println("")
	fmt.Println("Ports match by substring; use serial:/dev/ttyUSB0 for a raw serial line.")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: midi.GetInPorts(), outs: midi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}

	fmt.Println("\n=== Serial Ports ===")
	ports, err := transport.SerialPorts()
	if err != nil {
		fmt.Printf("  (error: %v)\n", err)
		return
	}
	for _, p := range ports {
		fmt.Printf("  %s%s\n", serialPrefix, p)
	}
}

func listCommands() {
	for _, c := range msc.Codes() {
		fields := ""
		if c.HasCue() {
			fields += " cue"
		}
		if c.HasList() {
			fields += " list"
		}
		fmt.Printf("  %02X %-10s%s\n", byte(c), c.Name(), fields)
	}
}

func send(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: send <port> <type> <cmd> [cue] [list]")
	}
	typ, ok := msc.TypeByName(args[1])
	if !ok {
		return fmt.Errorf("unknown type %q (lighting, sound, fireworks, all)", args[1])
	}
	code, ok := msc.CodeByName(args[2])
	if !ok {
		return fmt.Errorf("unknown command %q (see: msctest commands)", args[2])
	}
	var cue, list string
	if len(args) > 3 {
		cue = args[3]
	}
	if len(args) > 4 {
		list = args[4]
	}
	id, err := deviceID()
	if err != nil {
		return err
	}

	frame := msc.Encode(id, typ, code, cue, list)
	fmt.Printf("frame: % X\n", frame)

	if dev, ok := strings.CutPrefix(args[0], serialPrefix); ok {
		port, err := transport.OpenSerial(dev, 115200)
		if err != nil {
			return err
		}
		defer port.Close()
		_, err = port.Write(frame)
		return err
	}

	out, err := findOut(args[0])
	if err != nil {
		return err
	}
	sendFn, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open %s: %w", out.String(), err)
	}
	return sendFn(msc.Message(id, typ, code, cue, list))
}

func deviceID() (uint8, error) {
	s := os.Getenv("MSC_ID")
	if s == "" {
		return 0x7F, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 0x7F {
		return 0, fmt.Errorf("MSC_ID must be 0..127, got %q", s)
	}
	return uint8(v), nil
}

func decode(args []string) error {
	raw := strings.Join(args, "")
	raw = strings.NewReplacer(" ", "", ",", "", "0x", "").Replace(raw)
	frame, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("bad hex: %w", err)
	}
	printCommand(msc.Decode(frame))
	return nil
}

func watch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: watch <port>")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	if dev, ok := strings.CutPrefix(args[0], serialPrefix); ok {
		port, err := transport.OpenSerial(dev, 115200)
		if err != nil {
			return err
		}
		go func() {
			<-stop
			port.Close()
		}()
		fr := transport.NewFrameReader(port)
		for {
			cmd, err := fr.ReadCommand()
			if err != nil {
				return nil
			}
			printCommand(cmd)
		}
	}

	in, err := findIn(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", in.String())
	stopFn, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if cmd, ok := msc.FromMessage(msg); ok {
			printCommand(cmd)
		}
	}, midi.UseSysEx())
	if err != nil {
		return fmt.Errorf("listen %s: %w", in.String(), err)
	}
	defer stopFn()
	<-stop
	return nil
}

func printCommand(cmd msc.Command) {
	fmt.Printf("id=%02X type=%-9s cmd=%-9s cue=%-8q list=%-8q msc=%v bytes=% X\n",
		cmd.DeviceID(), cmd.Type(), cmd.Code(), cmd.Cue(), cmd.List(), cmd.IsMSC(), cmd.Payload())
}

func findIn(pattern string) (drivers.In, error) {
	for _, p := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(pattern)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input matching %q", pattern)
}

func findOut(pattern string) (drivers.Out, error) {
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(pattern)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output matching %q", pattern)
}
