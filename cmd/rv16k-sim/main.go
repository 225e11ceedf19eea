// Package main provides the entry point for rv16k-sim.
// rv16k-sim is a cycle-stepped simulator for the rv16k 16-bit register
// machine.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/virtualsecureplatform/rv16k-sim/config"
	"github.com/virtualsecureplatform/rv16k-sim/emu"
	"github.com/virtualsecureplatform/rv16k-sim/loader"
)

var (
	quiet      = flag.Bool("q", false, "suppress trace lines")
	memDump    = flag.Bool("m", false, "dump data RAM after each cycle")
	romHex     = flag.String("t", "", "seed instruction ROM from a space-separated hex-byte string")
	ramHex     = flag.String("d", "", "seed data RAM from a space-separated hex-byte string")
	configPath = flag.String("config", "", "path to a TOML config file overriding ROM/RAM size and run defaults")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: rv16k-sim [-q] [-m] [-t ROM_HEX] [-d RAM_HEX] [-config FILE] [FILENAME] NCYCLES\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFrom(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rv16k-sim: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	args := flag.Args()
	seeded := *romHex != "" || *ramHex != ""

	var filename string
	var cyclesArg string
	switch {
	case seeded && len(args) == 1:
		cyclesArg = args[0]
	case len(args) == 2:
		filename, cyclesArg = args[0], args[1]
	default:
		usage()
		return 1
	}

	ncycles, err := strconv.Atoi(cyclesArg)
	if err != nil || ncycles <= 0 {
		fmt.Fprintf(os.Stderr, "rv16k-sim: NCYCLES must be a positive integer\n")
		return 1
	}

	state := emu.NewState(
		emu.WithInstROMSize(cfg.Memory.InstROMSize),
		emu.WithDataRAMSize(cfg.Memory.DataRAMSize),
	)

	if *romHex != "" {
		bytes, err := parseHexBytes(*romHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rv16k-sim: -t: %v\n", err)
			return 1
		}
		copyBounded(state.InstROM, bytes)
	} else if !seeded && filename != "" {
		rom, err := loader.Load(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rv16k-sim: %v\n", err)
			return 1
		}
		copyBounded(state.InstROM, rom)
	}

	if *ramHex != "" {
		bytes, err := parseHexBytes(*ramHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rv16k-sim: -d: %v\n", err)
			return 1
		}
		copyBounded(state.DataRAM, bytes)
	}

	// Flags given on the command line replace the config file's values.
	quietMode, dump := cfg.Run.Quiet, cfg.Run.MemDump
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "q":
			quietMode = *quiet
		case "m":
			dump = *memDump
		}
	})

	var tracer emu.Tracer = emu.NopTracer{}
	if !quietMode {
		tracer = emu.NewWriterTracer(os.Stdout)
	}

	engine := emu.NewEngine(state, emu.WithTracer(tracer))

	for i := 0; i < ncycles; i++ {
		if !engine.Step() {
			break
		}
		if dump {
			dumpDataRAM(os.Stdout, state.DataRAM)
		}
	}

	printRegisters(os.Stdout, state)
	return 0
}

// parseHexBytes parses a space-separated string of two-digit hex bytes,
// as accepted by -t and -d.
func parseHexBytes(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q", f)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// copyBounded copies as much of src into dst as fits.
func copyBounded(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
}

// dumpDataRAM prints the full data RAM as 2-digit hex bytes, 16 per line.
func dumpDataRAM(w *os.File, ram []byte) {
	for i, b := range ram {
		fmt.Fprintf(w, "%02X ", b)
		if i%16 == 15 {
			fmt.Fprintln(w)
		}
	}
	if len(ram)%16 != 0 {
		fmt.Fprintln(w)
	}
}

// printRegisters prints the final register dump: 16 lines of the form
// "xN=DECIMAL" followed by a tab, regardless of -q.
func printRegisters(w *os.File, s *emu.State) {
	for i := 0; i < 16; i++ {
		fmt.Fprintf(w, "x%d=%d\t\n", i, s.ReadReg(uint8(i)))
	}
}
