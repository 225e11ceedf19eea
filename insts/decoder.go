package insts

// Decoder scans the instruction table to identify the opcode a 16-bit word
// encodes.
type Decoder struct{}

// NewDecoder creates an rv16k instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode scans Table in declared order and returns the tag of the first
// matching entry. ok is false if no entry matches — a decode failure.
func (d *Decoder) Decode(word uint16) (tag Tag, ok bool) {
	for _, e := range Table {
		if e.Pattern.Matches(word) {
			return e.Tag, true
		}
	}
	return 0, false
}
