package emu

import "github.com/virtualsecureplatform/rv16k-sim/insts"

// BranchUnit implements the rv16k jump and conditional-branch opcodes.
type BranchUnit struct {
	state *State
}

// NewBranchUnit creates a BranchUnit connected to state.
func NewBranchUnit(state *State) *BranchUnit {
	return &BranchUnit{state: state}
}

// J implements `PC+=2; PC += imm_w`: an unconditional jump whose 16-bit
// displacement is fetched as the ROM word immediately following the
// opcode.
func (b *BranchUnit) J(t Tracer) {
	b.state.PCAdvance(2, t)
	imm := b.state.ROMReadWord()
	b.state.PCAdvance(imm, t)
}

// JAL implements `PC+=2; R0 := PC+2; PC += imm_w`: J, additionally saving
// the return address (the address past the displacement word) in the link
// register.
func (b *BranchUnit) JAL(t Tracer) {
	b.state.PCAdvance(2, t)
	imm := b.state.ROMReadWord()
	b.state.WriteReg(0, b.state.PC+2, t)
	b.state.PCAdvance(imm, t)
}

// JALR implements `R0 := PC+2; PC := Rs`: a register-indirect call. The
// opcode is a single 2-byte word, so the return address is simply the
// current PC plus 2.
func (b *BranchUnit) JALR(t Tracer, rs uint8) {
	target := b.state.ReadReg(rs)
	b.state.WriteReg(0, b.state.PC+2, t)
	b.state.PCWrite(target, t)
}

// JR implements `PC := Rs`: a register-indirect jump with no link.
func (b *BranchUnit) JR(t Tracer, rs uint8) {
	b.state.PCWrite(b.state.ReadReg(rs), t)
}

// BranchImmediate decodes the 7-bit displacement field shared by
// JL/JLE/JE/JNE/JB/JBE: word[0..6] sign-extended from bit 6, applied
// directly as a byte offset to PC.
func BranchImmediate(word uint16) uint16 {
	return SignExt(GetBits(word, 0, 6), 6)
}

// Conditional implements the shared control flow of JL/JLE/JE/JNE/JB/JBE:
// branch by imm if the opcode's condition holds, otherwise advance PC by
// 2, then clear all four flags regardless of which way the branch went.
func (b *BranchUnit) Conditional(t Tracer, tag insts.Tag, imm uint16) {
	if b.taken(tag) {
		b.state.PCAdvance(imm, t)
	} else {
		b.state.PCAdvance(2, t)
	}
	b.state.Flags.Clear()
}

func (b *BranchUnit) taken(tag insts.Tag) bool {
	f := b.state.Flags
	switch tag {
	case insts.TagJL:
		return f.Sign != f.Overflow
	case insts.TagJLE:
		return f.Sign != f.Overflow || f.Zero
	case insts.TagJE:
		return f.Zero
	case insts.TagJNE:
		return !f.Zero
	case insts.TagJB:
		return f.Carry
	case insts.TagJBE:
		return f.Carry || f.Zero
	default:
		return false
	}
}
