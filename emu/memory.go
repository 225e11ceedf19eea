package emu

import "fmt"

// ROMReadWord returns the 16-bit little-endian word at the current PC. A
// fetch past the end of InstROM is a fatal assertion: the simulator is a
// debug tool and aborts loudly rather than masking a runaway program
// counter.
func (s *State) ROMReadWord() uint16 {
	return s.romReadWordAt(s.PC)
}

func (s *State) romReadWordAt(addr uint16) uint16 {
	if int(addr)+1 >= len(s.InstROM) {
		panic(fmt.Sprintf("emu: instruction fetch out of range: pc=0x%04X, rom size=%d", addr, len(s.InstROM)))
	}
	return uint16(s.InstROM[addr]) | uint16(s.InstROM[addr+1])<<8
}

// ReadDataWord reads the 16-bit little-endian word at addr in DataRAM.
func (s *State) ReadDataWord(addr uint16) uint16 {
	if int(addr)+1 >= len(s.DataRAM) {
		panic(fmt.Sprintf("emu: data word read out of range: addr=0x%04X, ram size=%d", addr, len(s.DataRAM)))
	}
	return uint16(s.DataRAM[addr]) | uint16(s.DataRAM[addr+1])<<8
}

// WriteDataWord writes value as a little-endian 16-bit word at addr in
// DataRAM and reports both byte mutations to t, low byte first.
func (s *State) WriteDataWord(addr uint16, value uint16, t Tracer) {
	if int(addr)+1 >= len(s.DataRAM) {
		panic(fmt.Sprintf("emu: data word write out of range: addr=0x%04X, ram size=%d", addr, len(s.DataRAM)))
	}
	lo := byte(value)
	hi := byte(value >> 8)
	s.DataRAM[addr] = lo
	t.DataByte(addr, lo)
	s.DataRAM[addr+1] = hi
	t.DataByte(addr+1, hi)
}

// ReadDataByte reads a single byte at addr in DataRAM.
func (s *State) ReadDataByte(addr uint16) uint8 {
	if int(addr) >= len(s.DataRAM) {
		panic(fmt.Sprintf("emu: data byte read out of range: addr=0x%04X, ram size=%d", addr, len(s.DataRAM)))
	}
	return s.DataRAM[addr]
}

// WriteDataByte writes value at addr in DataRAM and reports the mutation
// to t.
func (s *State) WriteDataByte(addr uint16, value uint8, t Tracer) {
	if int(addr) >= len(s.DataRAM) {
		panic(fmt.Sprintf("emu: data byte write out of range: addr=0x%04X, ram size=%d", addr, len(s.DataRAM)))
	}
	s.DataRAM[addr] = value
	t.DataByte(addr, value)
}
