package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/virtualsecureplatform/rv16k-sim/emu"
)

// romWords lays out a sequence of 16-bit words into a little-endian byte
// slice, one opcode or immediate word per entry.
func romWords(words ...uint16) []byte {
	rom := make([]byte, len(words)*2)
	for i, w := range words {
		rom[2*i] = byte(w)
		rom[2*i+1] = byte(w >> 8)
	}
	return rom
}

func newEngineWithROM(rom []byte) *emu.Engine {
	s := emu.NewState(emu.WithInstROMSize(len(rom)), emu.WithDataRAMSize(64))
	copy(s.InstROM, rom)
	return emu.NewEngine(s)
}

var _ = Describe("Engine.Step scenarios", func() {
	It("LI loads an immediate and sets sign/zero from it", func() {
		// LI R0, #0xFFFF: top byte 0x78, rd field (word[0..3]) = 0.
		e := newEngineWithROM(romWords(0x7800, 0xFFFF))
		Expect(e.Run(1)).To(Equal(1))

		s := e.State()
		Expect(s.ReadReg(0)).To(Equal(uint16(0xFFFF)))
		Expect(s.PC).To(Equal(uint16(4)))
		Expect(s.Flags.Sign).To(BeTrue())
		Expect(s.Flags.Zero).To(BeFalse())
	})

	It("NOP advances PC by 2 and clears every flag", func() {
		e := newEngineWithROM(romWords(0x0000))
		e.State().Flags = emu.Flags{Sign: true, Zero: true, Carry: true, Overflow: true}
		Expect(e.Run(1)).To(Equal(1))

		s := e.State()
		Expect(s.PC).To(Equal(uint16(2)))
		Expect(s.Flags).To(Equal(emu.Flags{}))
	})

	It("ADD sets the inverted carry when the 17-bit sum does not overflow", func() {
		// ADD R1,R2 (Rd:=Rs+Rd): rd=2, rs=1, top byte 0b1110_0010.
		e := newEngineWithROM(romWords(0b1110_0010_0001_0010))
		s := e.State()
		s.WriteReg(1, 1, emu.NopTracer{})
		s.WriteReg(2, 2, emu.NopTracer{})

		Expect(e.Run(1)).To(Equal(1))
		Expect(s.ReadReg(2)).To(Equal(uint16(3)))
		Expect(s.Flags.Carry).To(BeTrue())
	})

	It("round-trips a value through SW then LW", func() {
		// SW R2,R1,imm=0: rd=1 (base), rs=2 (value), top byte 0b1001_0010.
		// LW R3,R1,imm=0: rd=3 (dest), rs=1 (base), top byte 0b1011_0010.
		sw := uint16(0b1001_0010_0000_0000) | uint16(2)<<4 | uint16(1)
		lw := uint16(0b1011_0010_0000_0000) | uint16(1)<<4 | uint16(3)
		e := newEngineWithROM(romWords(sw, 0x0000, lw, 0x0000))

		s := e.State()
		s.WriteReg(1, 0x10, emu.NopTracer{})
		s.WriteReg(2, 0xABCD, emu.NopTracer{})

		Expect(e.Run(2)).To(Equal(2))
		Expect(s.ReadReg(3)).To(Equal(uint16(0xABCD)))
		Expect(s.DataRAM[0x10]).To(Equal(byte(0xCD)))
		Expect(s.DataRAM[0x11]).To(Equal(byte(0xAB)))
	})

	It("does not take a conditional branch whose condition is false, and clears flags anyway", func() {
		// JE, displacement field = 4, condition false since Zero is clear.
		word := uint16(0b0100_0101_0000_0100)
		e := newEngineWithROM(romWords(word))
		s := e.State()
		s.Flags = emu.Flags{}

		Expect(e.Run(1)).To(Equal(1))
		Expect(s.PC).To(Equal(uint16(2)))
		Expect(s.Flags).To(Equal(emu.Flags{}))
	})

	It("reports a decode failure and stops early on an unrecognized word", func() {
		e := newEngineWithROM(romWords(0b0000_0000_0000_0001))
		Expect(e.Run(3)).To(Equal(0))
	})
})
