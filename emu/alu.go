package emu

// ALU implements the rv16k arithmetic, compare, logic, and shift opcodes.
// Every method reads its operands from State and updates the four condition
// flags; all but CMP and CMPI also write their result back through State
// (reporting the mutation to the supplied Tracer).
type ALU struct {
	state *State
}

// NewALU creates an ALU connected to state.
func NewALU(state *State) *ALU {
	return &ALU{state: state}
}

func (a *ALU) setFlags(r addResult) {
	a.state.Flags.Sign = r.Sign
	a.state.Flags.Zero = r.Zero
	a.state.Flags.Carry = r.Carry
	a.state.Flags.Overflow = r.Overflow
}

// ADD implements `Rd := Rs+Rd` with full flags.
func (a *ALU) ADD(t Tracer, rd, rs uint8) {
	r := addWithFlags(a.state.ReadReg(rs), a.state.ReadReg(rd))
	a.setFlags(r)
	a.state.WriteReg(rd, r.Sum, t)
}

// ADDI implements `s := sign_ext(rs,3); Rd := s+Rd` with full flags. rs is
// the raw 4-bit encoded field, sign-extended from its top bit.
func (a *ALU) ADDI(t Tracer, rd, rs uint8) {
	s := SignExt(uint16(rs), 3)
	r := addWithFlags(s, a.state.ReadReg(rd))
	a.setFlags(r)
	a.state.WriteReg(rd, r.Sum, t)
}

// SUB implements `a := (~Rs)+1; Rd := a+Rd`, with CMP's flag derivation
// (including the forced-zero-carry rule for equal operands).
func (a *ALU) SUB(t Tracer, rd, rs uint8) {
	neg := negate(a.state.ReadReg(rs))
	r := subWithFlags(neg, a.state.ReadReg(rd))
	a.setFlags(r)
	a.state.WriteReg(rd, r.Sum, t)
}

// CMP implements `a := (~Rs)+1; b := Rd; r := a+b`, updating flags only —
// Rd is left unchanged.
func (a *ALU) CMP(rd, rs uint8) {
	neg := negate(a.state.ReadReg(rs))
	r := subWithFlags(neg, a.state.ReadReg(rd))
	a.setFlags(r)
}

// CMPI implements `a := (~sign_ext(rs,3))+1; b := Rd`, as CMP, with rs the
// raw 4-bit encoded field.
func (a *ALU) CMPI(rd, rs uint8) {
	neg := negate(SignExt(uint16(rs), 3))
	r := subWithFlags(neg, a.state.ReadReg(rd))
	a.setFlags(r)
}

// logicResult computes S/Z from result and the vestigial overflow formula
// against the two logic operands, with carry always cleared.
func (a *ALU) logicResult(t Tracer, rd uint8, lhs, rhs, result uint16) {
	a.state.Flags.Sign = FlagSign(result)
	a.state.Flags.Zero = FlagZero(result)
	a.state.Flags.Carry = false
	a.state.Flags.Overflow = FlagOverflow(lhs, rhs, result)
	a.state.WriteReg(rd, result, t)
}

// AND implements `Rd := Rs & Rd`.
func (a *ALU) AND(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	a.logicResult(t, rd, lhs, rhs, lhs&rhs)
}

// OR implements `Rd := Rs | Rd`.
func (a *ALU) OR(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	a.logicResult(t, rd, lhs, rhs, lhs|rhs)
}

// XOR implements `Rd := Rs ^ Rd`: a true bitwise exclusive-or, distinct
// from OR above despite the two opcodes' near-identical field layout.
func (a *ALU) XOR(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	a.logicResult(t, rd, lhs, rhs, lhs^rhs)
}

// LSL implements `Rd := Rd << Rs`.
func (a *ALU) LSL(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	a.logicResult(t, rd, lhs, rhs, rhs<<lhs)
}

// LSR implements `Rd := Rd >> Rs` (logical).
func (a *ALU) LSR(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	a.logicResult(t, rd, lhs, rhs, rhs>>lhs)
}

// ASR implements `Rd := Rd >> Rs` (arithmetic, Rd treated as signed).
func (a *ALU) ASR(t Tracer, rd, rs uint8) {
	lhs, rhs := a.state.ReadReg(rs), a.state.ReadReg(rd)
	result := uint16(int16(rhs) >> lhs)
	a.logicResult(t, rd, lhs, rhs, result)
}

// MOV implements `Rd := Rs`, with flags taken from Rs and carry/overflow
// cleared.
func (a *ALU) MOV(t Tracer, rd, rs uint8) {
	v := a.state.ReadReg(rs)
	a.state.Flags.Sign = FlagSign(v)
	a.state.Flags.Zero = FlagZero(v)
	a.state.Flags.Carry = false
	a.state.Flags.Overflow = false
	a.state.WriteReg(rd, v, t)
}

// LI implements `Rd := imm`, with flags taken from imm and carry/overflow
// cleared, matching MOV's treatment of a pure data move.
func (a *ALU) LI(t Tracer, rd uint8, imm uint16) {
	a.state.Flags.Sign = FlagSign(imm)
	a.state.Flags.Zero = FlagZero(imm)
	a.state.Flags.Carry = false
	a.state.Flags.Overflow = false
	a.state.WriteReg(rd, imm, t)
}
