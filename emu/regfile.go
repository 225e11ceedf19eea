// Package emu implements the rv16k machine state together with the
// decode-execute engine, the per-opcode ALU/load-store/branch handlers, and
// the trace sink that observes their mutations.
package emu

const (
	defaultInstROMSize = 512
	defaultDataRAMSize = 512
)

// Flags holds the four independent rv16k condition flags.
type Flags struct {
	Sign bool
	Zero bool

	// Carry follows rv16k's non-standard, inverted convention: set when an
	// add-like operation's 17-bit sum does NOT overflow (sum <= 0xFFFF).
	// JB/JBE test it exactly as computed here.
	Carry bool

	Overflow bool
}

// Clear resets all four flags to 0, as NOP and every conditional branch do
// after evaluating their condition.
func (f *Flags) Clear() {
	*f = Flags{}
}

// State is the complete architectural state of one rv16k machine: its
// sixteen registers, program counter, instruction ROM, data RAM, and
// condition flags.
type State struct {
	// Reg holds the sixteen 16-bit general-purpose registers. Reg[0] is the
	// link register (written by JAL/JALR). Reg[1] is the stack pointer, the
	// implicit base for SWSP/LWSP.
	Reg [16]uint16

	// PC is the 16-bit byte-addressed program counter.
	PC uint16

	// InstROM is the instruction store: byte-addressed, with 16-bit words
	// stored little-endian.
	// Populated once at startup and treated as read-only during execution.
	InstROM []byte

	// DataRAM is the data store mutated by store handlers and read by load
	// handlers.
	DataRAM []byte

	Flags Flags
}

// StateOption configures a State at construction time.
type StateOption func(*State)

// WithInstROMSize overrides the default 512-byte instruction ROM size.
func WithInstROMSize(size int) StateOption {
	return func(s *State) {
		s.InstROM = make([]byte, size)
	}
}

// WithDataRAMSize overrides the default 512-byte data RAM size.
func WithDataRAMSize(size int) StateOption {
	return func(s *State) {
		s.DataRAM = make([]byte, size)
	}
}

// NewState creates a zero-initialised machine state with 512-byte ROM and
// RAM unless overridden by opts.
func NewState(opts ...StateOption) *State {
	s := &State{
		InstROM: make([]byte, defaultInstROMSize),
		DataRAM: make([]byte, defaultDataRAMSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadReg reads register idx. idx is always in 0..15: it is derived from a
// 4-bit encoding field.
func (s *State) ReadReg(idx uint8) uint16 {
	return s.Reg[idx]
}

// WriteReg writes value to register idx and reports the mutation to t.
func (s *State) WriteReg(idx uint8, value uint16, t Tracer) {
	s.Reg[idx] = value
	t.Reg(idx, value)
}

// PCAdvance adds delta to PC (wrapping modulo 2^16, per rv16k's storage
// convention) and reports the new PC to t.
func (s *State) PCAdvance(delta uint16, t Tracer) {
	s.PC += delta
	t.PC(s.PC)
}

// PCWrite sets PC to addr directly — used by JALR/JR, which branch to an
// absolute register value rather than a relative displacement — and
// reports it to t.
func (s *State) PCWrite(addr uint16, t Tracer) {
	s.PC = addr
	t.PC(s.PC)
}
