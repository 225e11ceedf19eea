// Package loader reads an ELF32 program image and copies its loadable
// bytes into the simulator's instruction ROM.
package loader

import (
	"debug/elf"
	"fmt"
	"io"
)

// LoadOption configures Load at call time.
type LoadOption func(*loadConfig)

type loadConfig struct {
	loadExecutable bool
	verbose        io.Writer
}

// WithExecutableSections additionally copies sections flagged
// SHF_EXECINSTR, not just writable ones. Off by default: the original
// behavior treats the writable flag alone as the "load this" marker, and
// some toolchains instead emit code into a read-only, executable section
// that would otherwise be skipped.
func WithExecutableSections() LoadOption {
	return func(c *loadConfig) {
		c.loadExecutable = true
	}
}

// WithVerbose writes one line per copied section to w.
func WithVerbose(w io.Writer) LoadOption {
	return func(c *loadConfig) {
		c.verbose = w
	}
}

// Load parses the ELF32 image at path and returns the bytes that should
// be copied into instruction ROM starting at offset 0.
//
// Every section whose sh_flags includes the writable bit is copied
// byte-for-byte from its file offset into the image, starting at offset
// 0 each time — a later matching section overwrites bytes an earlier one
// placed there, exactly mirroring section order in the file.
func Load(path string, opts ...LoadOption) ([]byte, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file (ELF32 required)")
	}

	var rom []byte
	for _, sec := range f.Sections {
		load := sec.Flags&elf.SHF_WRITE != 0
		if cfg.loadExecutable && sec.Flags&elf.SHF_EXECINSTR != 0 {
			load = true
		}
		if !load {
			continue
		}

		data, err := sec.Data()
		if err != nil {
			return nil, fmt.Errorf("failed to read section %q: %w", sec.Name, err)
		}
		if len(data) > len(rom) {
			grown := make([]byte, len(data))
			copy(grown, rom)
			rom = grown
		}
		copy(rom, data)

		if cfg.verbose != nil {
			fmt.Fprintf(cfg.verbose, "loaded section %q (%d bytes) at ROM offset 0\n", sec.Name, len(data))
		}
	}

	return rom, nil
}
