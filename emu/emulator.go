package emu

import "github.com/virtualsecureplatform/rv16k-sim/insts"

// Engine drives the rv16k fetch-decode-execute cycle: each Step fetches
// the ROM word at PC, scans the instruction table for a match, dispatches
// to the matching opcode's handler, and emits one trace line.
type Engine struct {
	state   *State
	decoder *insts.Decoder
	tracer  Tracer

	alu    *ALU
	lsu    *LoadStoreUnit
	branch *BranchUnit
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithTracer overrides the default NopTracer with t.
func WithTracer(t Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// NewEngine creates an Engine over state. Pass WithTracer to observe
// per-step trace lines; without it, steps execute silently.
func NewEngine(state *State, opts ...EngineOption) *Engine {
	e := &Engine{
		state:   state,
		decoder: insts.NewDecoder(),
		tracer:  NopTracer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.alu = NewALU(state)
	e.lsu = NewLoadStoreUnit(state)
	e.branch = NewBranchUnit(state)
	return e
}

// State returns the engine's machine state.
func (e *Engine) State() *State {
	return e.state
}

// Step executes one fetch-decode-execute cycle. ok is false when the
// fetched word matched no instruction table entry — a decode failure,
// after which the caller should stop stepping.
func (e *Engine) Step() (ok bool) {
	word := e.state.ROMReadWord()

	tag, found := e.decoder.Decode(word)
	if !found {
		e.tracer.Invalid()
		return false
	}

	e.tracer.Inst(tag.String())
	e.dispatch(tag, word)
	f := e.state.Flags
	e.tracer.FlagsLine(f.Sign, f.Zero, f.Carry, f.Overflow)
	return true
}

// Run steps the engine exactly n times, stopping early only on a decode
// failure. It returns the number of cycles actually executed.
func (e *Engine) Run(n int) int {
	for i := 0; i < n; i++ {
		if !e.Step() {
			return i
		}
	}
	return n
}

func (e *Engine) dispatch(tag insts.Tag, word uint16) {
	rd := uint8(GetBits(word, 0, 3))
	rs := uint8(GetBits(word, 4, 7))
	t := e.tracer

	switch tag {
	case insts.TagNOP:
		e.state.PCAdvance(2, t)
		e.state.Flags.Clear()

	case insts.TagJ:
		e.branch.J(t)
	case insts.TagJAL:
		e.branch.JAL(t)
	case insts.TagJALR:
		e.branch.JALR(t, rs)
	case insts.TagJR:
		e.branch.JR(t, rs)

	case insts.TagJL, insts.TagJLE, insts.TagJE, insts.TagJNE, insts.TagJB, insts.TagJBE:
		e.branch.Conditional(t, tag, BranchImmediate(word))

	case insts.TagLI:
		e.state.PCAdvance(2, t)
		imm := e.state.ROMReadWord()
		e.alu.LI(t, rd, imm)
		e.state.PCAdvance(2, t)

	case insts.TagSWSP:
		e.lsu.SWSP(t, rd, rs, word)
	case insts.TagSW:
		e.lsu.SW(t, rd, rs)
	case insts.TagSB:
		e.lsu.SB(t, rd, rs)
	case insts.TagLWSP:
		e.lsu.LWSP(t, rd, word)
	case insts.TagLW:
		e.lsu.LW(t, rd, rs)
	case insts.TagLBU:
		e.lsu.LBU(t, rd, rs)
	case insts.TagLB:
		e.lsu.LB(t, rd, rs)

	case insts.TagMOV:
		e.alu.MOV(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagCMP:
		e.alu.CMP(rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagCMPI:
		e.alu.CMPI(rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagADD:
		e.alu.ADD(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagSUB:
		e.alu.SUB(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagAND:
		e.alu.AND(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagOR:
		e.alu.OR(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagXOR:
		e.alu.XOR(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagLSL:
		e.alu.LSL(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagLSR:
		e.alu.LSR(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagASR:
		e.alu.ASR(t, rd, rs)
		e.state.PCAdvance(2, t)
	case insts.TagADDI:
		e.alu.ADDI(t, rd, rs)
		e.state.PCAdvance(2, t)
	}
}
