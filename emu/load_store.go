package emu

// LoadStoreUnit implements the rv16k memory opcodes: the SP-relative short
// forms (SWSP/LWSP) and the full, immediate-word forms (SW/SB/LW/LBU/LB).
type LoadStoreUnit struct {
	state *State
}

// NewLoadStoreUnit creates a LoadStoreUnit connected to state.
func NewLoadStoreUnit(state *State) *LoadStoreUnit {
	return &LoadStoreUnit{state: state}
}

func (l *LoadStoreUnit) setAddrFlags(r addResult) {
	l.state.Flags.Sign = r.Sign
	l.state.Flags.Zero = r.Zero
	l.state.Flags.Carry = r.Carry
	l.state.Flags.Overflow = r.Overflow
}

// SW implements `PC+=2; imm:=imm_w; addr:=imm+Rd; flags; mem_w[addr]:=Rs;
// PC+=2`: a full-address word store. Rd supplies the address base; Rs
// supplies the stored value.
func (l *LoadStoreUnit) SW(t Tracer, rd, rs uint8) {
	l.state.PCAdvance(2, t)
	imm := l.state.ROMReadWord()
	addr := l.address(imm, l.state.ReadReg(rd))
	l.state.WriteDataWord(addr, l.state.ReadReg(rs), t)
	l.state.PCAdvance(2, t)
}

// SB implements the byte-store counterpart of SW: `mem_b[addr] := Rs &
// 0xFF`.
func (l *LoadStoreUnit) SB(t Tracer, rd, rs uint8) {
	l.state.PCAdvance(2, t)
	imm := l.state.ROMReadWord()
	addr := l.address(imm, l.state.ReadReg(rd))
	l.state.WriteDataByte(addr, uint8(l.state.ReadReg(rs)), t)
	l.state.PCAdvance(2, t)
}

// LW implements `PC+=2; imm:=imm_w; addr:=imm+Rs; flags; Rd:=mem_w[addr];
// PC+=2`. Unlike SW, the address base here is Rs.
func (l *LoadStoreUnit) LW(t Tracer, rd, rs uint8) {
	l.state.PCAdvance(2, t)
	imm := l.state.ROMReadWord()
	addr := l.address(imm, l.state.ReadReg(rs))
	l.state.WriteReg(rd, l.state.ReadDataWord(addr), t)
	l.state.PCAdvance(2, t)
}

// LBU implements LW's zero-extending byte counterpart.
func (l *LoadStoreUnit) LBU(t Tracer, rd, rs uint8) {
	l.state.PCAdvance(2, t)
	imm := l.state.ROMReadWord()
	addr := l.address(imm, l.state.ReadReg(rs))
	l.state.WriteReg(rd, uint16(l.state.ReadDataByte(addr)), t)
	l.state.PCAdvance(2, t)
}

// LB implements LW's sign-extending byte counterpart.
func (l *LoadStoreUnit) LB(t Tracer, rd, rs uint8) {
	l.state.PCAdvance(2, t)
	imm := l.state.ROMReadWord()
	addr := l.address(imm, l.state.ReadReg(rs))
	v := SignExt(uint16(l.state.ReadDataByte(addr)), 7)
	l.state.WriteReg(rd, v, t)
	l.state.PCAdvance(2, t)
}

// SWSP implements `imm := (word[8..11]<<5) + (word[4..7]<<1); addr :=
// R1+imm; flags from add; mem_w[addr] := Rs; PC+=2`: the SP-relative short
// store. The Rs field does double duty, selecting the stored register and
// contributing the immediate's low bits, mirroring how LWSP spreads its
// immediate across word[4..11].
func (l *LoadStoreUnit) SWSP(t Tracer, rd, rs uint8, word uint16) {
	imm := GetBits(word, 8, 11)<<5 + uint16(rs)<<1
	addr := l.address(l.state.ReadReg(1), imm)
	l.state.WriteDataWord(addr, l.state.ReadReg(rs), t)
	l.state.PCAdvance(2, t)
}

// LWSP implements `imm := word[4..11]<<1; addr := R1+imm; flags; Rd :=
// mem_w[addr]; PC+=2`: the SP-relative short load.
func (l *LoadStoreUnit) LWSP(t Tracer, rd uint8, word uint16) {
	imm := GetBits(word, 4, 11) << 1
	addr := l.address(l.state.ReadReg(1), imm)
	l.state.WriteReg(rd, l.state.ReadDataWord(addr), t)
	l.state.PCAdvance(2, t)
}

// address computes base+offset with full add-flag derivation (shared by
// every load/store opcode's address calculation) and returns the sum.
func (l *LoadStoreUnit) address(base, offset uint16) uint16 {
	r := addWithFlags(base, offset)
	l.setAddrFlags(r)
	return r.Sum
}
