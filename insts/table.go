package insts

// Entry pairs an opcode tag with its compiled bit pattern. Decoding tries
// entries in Table's declared order and the first match wins; no two
// templates in the current table match the same word.
type Entry struct {
	Tag      Tag
	Pattern  Pattern
	Template string
}

// Table is the 31-entry instruction dispatch table. The order follows the
// original rv16k-sim's dispatch sequence (its main loop's if/else-if
// chain), not the unordered enum in its inst.h: NOP tested first so a
// zeroed ROM tail short-circuits immediately, then the unconditional and
// register-indirect jumps, then the conditional-branch family, then LI,
// then load/store specifics grouped by family (SWSP/SW/SB before
// LWSP/LW/LB/LBU), then MOV and the ALU family. CMPI — present in the
// per-opcode semantics but absent from that particular dispatch chain — is
// placed beside its CMP sibling.
var Table []Entry

func init() {
	templates := []struct {
		tag Tag
		pat string
	}{
		{TagNOP, "0b0000_0000_0000_0000"},
		{TagJ, "0b0101_0010_0000_0000"},
		{TagJAL, "0b0111_0011_0000_0000"},
		{TagJALR, "0b0110_0001_xxxx_0000"},
		{TagJR, "0b0100_0000_xxxx_0000"},
		{TagJL, "0b0100_0100_0xxx_xxxx"},
		{TagJLE, "0b0100_0100_1xxx_xxxx"},
		{TagJE, "0b0100_0101_0xxx_xxxx"},
		{TagJNE, "0b0100_0101_1xxx_xxxx"},
		{TagJB, "0b0100_0110_0xxx_xxxx"},
		{TagJBE, "0b0100_0110_1xxx_xxxx"},
		{TagLI, "0b0111_1000_xxxx_xxxx"},
		{TagSWSP, "0b1000_xxxx_xxxx_xxxx"},
		{TagSW, "0b1001_0010_xxxx_xxxx"},
		{TagSB, "0b1001_1010_xxxx_xxxx"},
		{TagLWSP, "0b1010_xxxx_xxxx_xxxx"},
		{TagLW, "0b1011_0010_xxxx_xxxx"},
		{TagLB, "0b1011_1110_xxxx_xxxx"},
		{TagLBU, "0b1011_1010_xxxx_xxxx"},
		{TagMOV, "0b1100_0000_xxxx_xxxx"},
		{TagCMP, "0b1100_0011_xxxx_xxxx"},
		{TagCMPI, "0b1101_0011_xxxx_xxxx"},
		{TagADD, "0b1110_0010_xxxx_xxxx"},
		{TagSUB, "0b1110_0011_xxxx_xxxx"},
		{TagAND, "0b1110_0100_xxxx_xxxx"},
		{TagOR, "0b1110_0101_xxxx_xxxx"},
		{TagXOR, "0b1110_0110_xxxx_xxxx"},
		{TagLSL, "0b1110_1001_xxxx_xxxx"},
		{TagLSR, "0b1110_1010_xxxx_xxxx"},
		{TagASR, "0b1110_1101_xxxx_xxxx"},
		{TagADDI, "0b1111_0010_xxxx_xxxx"},
	}

	Table = make([]Entry, len(templates))
	for i, t := range templates {
		pattern, err := Compile(t.pat)
		if err != nil {
			// Templates above are constants owned by this package; a
			// compile failure here means the table itself is broken.
			panic(err)
		}
		Table[i] = Entry{Tag: t.tag, Pattern: pattern, Template: t.pat}
	}
}
