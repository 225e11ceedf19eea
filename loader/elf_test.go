package loader_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/virtualsecureplatform/rv16k-sim/loader"
)

const (
	shfWrite     = 0x1
	shfExecInstr = 0x4
)

// elf32Section describes one section to embed in a synthetic ELF32 image.
type elf32Section struct {
	name  string
	flags uint32
	data  []byte
}

// writeELF32 assembles a minimal little-endian ELF32 file: header, a
// string table, the given sections (in order), and a matching section
// header table. It is intentionally narrow — just enough structure for
// debug/elf to parse section names, flags, and data.
func writeELF32(path string, sections []elf32Section) {
	const ehdrSize = 52
	const shdrSize = 40

	var shstrtab bytes.Buffer
	shstrtab.WriteByte(0) // index 0: empty name
	nameOffsets := make([]uint32, len(sections))
	for i, s := range sections {
		nameOffsets[i] = uint32(shstrtab.Len())
		shstrtab.WriteString(s.name)
		shstrtab.WriteByte(0)
	}
	shstrtabNameOff := uint32(shstrtab.Len())
	shstrtab.WriteString(".shstrtab")
	shstrtab.WriteByte(0)

	// Layout: header, then each section's raw bytes back to back, then
	// the string table, then the section header table.
	offset := uint32(ehdrSize)
	dataOffsets := make([]uint32, len(sections))
	for i, s := range sections {
		dataOffsets[i] = offset
		offset += uint32(len(s.data))
	}
	shstrtabOffset := offset
	offset += uint32(shstrtab.Len())
	shoff := offset

	totalSections := len(sections) + 2 // null entry + shstrtab entry
	ehdr := make([]byte, ehdrSize)
	copy(ehdr[0:4], []byte{0x7f, 'E', 'L', 'F'})
	ehdr[4] = 1 // ELFCLASS32
	ehdr[5] = 1 // little endian
	ehdr[6] = 1 // version
	binary.LittleEndian.PutUint16(ehdr[16:18], 2)  // e_type: EXEC
	binary.LittleEndian.PutUint16(ehdr[18:20], 40) // e_machine: ARM (arbitrary)
	binary.LittleEndian.PutUint32(ehdr[20:24], 1)  // e_version
	binary.LittleEndian.PutUint32(ehdr[24:28], 0)  // e_entry
	binary.LittleEndian.PutUint32(ehdr[28:32], 0)  // e_phoff
	binary.LittleEndian.PutUint32(ehdr[32:36], shoff)
	binary.LittleEndian.PutUint32(ehdr[36:40], 0)             // e_flags
	binary.LittleEndian.PutUint16(ehdr[40:42], ehdrSize)      // e_ehsize
	binary.LittleEndian.PutUint16(ehdr[42:44], 0)             // e_phentsize
	binary.LittleEndian.PutUint16(ehdr[44:46], 0)             // e_phnum
	binary.LittleEndian.PutUint16(ehdr[46:48], shdrSize)      // e_shentsize
	binary.LittleEndian.PutUint16(ehdr[48:50], uint16(totalSections))
	binary.LittleEndian.PutUint16(ehdr[50:52], uint16(totalSections-1)) // e_shstrndx

	var out bytes.Buffer
	out.Write(ehdr)
	for _, s := range sections {
		out.Write(s.data)
	}
	out.Write(shstrtab.Bytes())

	writeShdr := func(nameOff, shType, flags, addr, off, size uint32) {
		buf := make([]byte, shdrSize)
		binary.LittleEndian.PutUint32(buf[0:4], nameOff)
		binary.LittleEndian.PutUint32(buf[4:8], shType)
		binary.LittleEndian.PutUint32(buf[8:12], flags)
		binary.LittleEndian.PutUint32(buf[12:16], addr)
		binary.LittleEndian.PutUint32(buf[16:20], off)
		binary.LittleEndian.PutUint32(buf[20:24], size)
		out.Write(buf)
	}
	writeShdr(0, 0, 0, 0, 0, 0) // null section
	for i, s := range sections {
		writeShdr(nameOffsets[i], 1 /* SHT_PROGBITS */, s.flags, 0, dataOffsets[i], uint32(len(s.data)))
	}
	writeShdr(shstrtabNameOff, 3 /* SHT_STRTAB */, 0, 0, shstrtabOffset, uint32(shstrtab.Len()))

	_ = os.WriteFile(path, out.Bytes(), 0o644)
}

var _ = Describe("Load", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rv16k-elf-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	It("copies a writable section's bytes starting at offset 0", func() {
		path := filepath.Join(tempDir, "prog.elf")
		code := []byte{0x00, 0x78, 0x01, 0x00}
		writeELF32(path, []elf32Section{{name: ".data", flags: shfWrite, data: code}})

		rom, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(rom).To(Equal(code))
	})

	It("skips non-writable sections by default", func() {
		path := filepath.Join(tempDir, "text-only.elf")
		writeELF32(path, []elf32Section{
			{name: ".text", flags: shfExecInstr, data: []byte{0x01, 0x02}},
		})

		rom, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(rom).To(BeEmpty())
	})

	It("copies executable sections too when WithExecutableSections is set", func() {
		path := filepath.Join(tempDir, "text-only.elf")
		code := []byte{0x01, 0x02, 0x03, 0x04}
		writeELF32(path, []elf32Section{
			{name: ".text", flags: shfExecInstr, data: code},
		})

		rom, err := loader.Load(path, loader.WithExecutableSections())
		Expect(err).NotTo(HaveOccurred())
		Expect(rom).To(Equal(code))
	})

	It("lets a later writable section overwrite an earlier one at offset 0", func() {
		path := filepath.Join(tempDir, "two-sections.elf")
		first := []byte{0xAA, 0xAA, 0xAA, 0xAA}
		second := []byte{0xBB, 0xBB}
		writeELF32(path, []elf32Section{
			{name: ".sec1", flags: shfWrite, data: first},
			{name: ".sec2", flags: shfWrite, data: second},
		})

		rom, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(rom).To(Equal([]byte{0xBB, 0xBB, 0xAA, 0xAA}))
	})

	It("rejects a 64-bit ELF", func() {
		path := filepath.Join(tempDir, "elf64.elf")
		ehdr := make([]byte, 64)
		copy(ehdr[0:4], []byte{0x7f, 'E', 'L', 'F'})
		ehdr[4] = 2 // ELFCLASS64
		ehdr[5] = 1
		ehdr[6] = 1
		binary.LittleEndian.PutUint16(ehdr[16:18], 2)
		binary.LittleEndian.PutUint32(ehdr[20:24], 1) // e_version
		binary.LittleEndian.PutUint16(ehdr[52:54], 64)
		_ = os.WriteFile(path, ehdr, 0o644)

		_, err := loader.Load(path)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("not a 32-bit"))
	})

	It("returns an error for a non-ELF file", func() {
		path := filepath.Join(tempDir, "not-elf.bin")
		Expect(os.WriteFile(path, []byte("not an elf file"), 0o644)).To(Succeed())

		_, err := loader.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("returns an error for a nonexistent file", func() {
		_, err := loader.Load(filepath.Join(tempDir, "missing.elf"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to open"))
	})
})
