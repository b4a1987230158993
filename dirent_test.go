package fat12

import "testing"

func shortNameBytes(name string) [11]byte {
	var b [11]byte
	for i := range b {
		b[i] = ' '
	}
	copy(b[:], name)
	return b
}

func TestShortNameString(t *testing.T) {
	tests := []struct {
		name string
		attr byte
		want string
	}{
		{"README  TXT", AttrArchive, "README.TXT"},
		{"SUBDIR     ", AttrDirectory, "SUBDIR"},
		// A file whose extension field is all spaces still gets the
		// "." and the raw (untrimmed) extension bytes appended - the
		// short-name rendering does not special-case an empty
		// extension (preserved source behavior, spec-flagged as buggy).
		{"NOEXT      ", AttrArchive, "NOEXT.   "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var slot entrySlot
			copy(slot[0:11], tt.name)
			slot[11] = tt.attr
			if got := shortNameString(&slot); got != tt.want {
				t.Fatalf("shortNameString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortNameChecksum_MatchesReferenceVector(t *testing.T) {
	// "FOOBAR     " (FOOBAR padded to 11 bytes with spaces) is not a
	// realistic 8.3 name but exercises the checksum algorithm against a
	// value computed by hand from the VFAT checksum formula.
	name := shortNameBytes("FOOBAR")
	got := shortNameChecksum(name)
	want := byte(0xE2)
	if got != want {
		t.Fatalf("shortNameChecksum() = %d, want %d", got, want)
	}
}

func TestLFNAssembler_AssemblesInOrdinalOrder(t *testing.T) {
	short := shortNameBytes("LONGNA~1TXT")
	checksum := shortNameChecksum(short)

	var asm lfnAssembler

	// A 16-character name needs two slots: ordinal 1 holds the first
	// (full, unterminated) 13 characters, ordinal 2 - marked isLast -
	// holds the remaining 3 plus the null terminator. Slots are stored
	// on disk in descending ordinal order, so the iterator's forward
	// scan feeds ordinal 2 before ordinal 1; feed must not require a
	// reverse walk to assemble them correctly.
	full := "ABCDEFGHIJKLMNOP"
	slot1 := makeLFNSlot(1, false, checksum, full[:13])
	slot2 := makeLFNSlot(2, true, checksum, full[13:])

	asm.feed(slot2)
	asm.feed(slot1)

	got, ok := asm.assemble(short)
	if !ok {
		t.Fatal("assemble() returned ok=false for a valid chain")
	}
	if got != full {
		t.Fatalf("assemble() = %q, want %q", got, full)
	}
}

func TestLFNAssembler_ChecksumMismatchDiscardsChain(t *testing.T) {
	short := shortNameBytes("LONGNA~1TXT")
	var asm lfnAssembler

	asm.feed(makeLFNSlot(1, true, 0xAB, "Mismatch"))

	if _, ok := asm.assemble(short); ok {
		t.Fatal("assemble() should reject a chain whose checksum does not match the short name")
	}
}

func TestLFNAssembler_NonASCIITruncatesToLowByte(t *testing.T) {
	short := shortNameBytes("UMLAUT~1TXT")
	checksum := shortNameChecksum(short)

	var asm lfnAssembler
	slot := makeLFNSlot(1, true, checksum, "")
	// 0x00E4 is 'ä'; the assembler must truncate to its low byte 0xE4
	// rather than UTF-8 encode it, matching the original source's
	// `(char) *utfs++`. Put the null terminator right after it so
	// assemble stops before the filler units makeLFNSlot wrote.
	setLFNChar(&slot, 0, 0x00E4)
	setLFNChar(&slot, 1, 0x0000)

	asm.feed(slot)
	got, ok := asm.assemble(short)
	if !ok {
		t.Fatal("assemble() returned ok=false")
	}
	if len(got) != 1 || got[0] != 0xE4 {
		t.Fatalf("assemble() = %q (bytes %v), want single byte 0xE4", got, []byte(got))
	}
}

// makeLFNSlot builds an lfnSlot with the given ordinal, last-flag,
// checksum, and up to 13 ASCII characters of text.
func makeLFNSlot(ordinal byte, last bool, checksum byte, text string) lfnSlot {
	var l lfnSlot
	seq := ordinal
	if last {
		seq |= 0x40
	}
	l[0] = seq
	l[13] = checksum

	positions := [13]int{1, 3, 5, 7, 9, 14, 16, 18, 20, 22, 24, 28, 30}
	for i := 0; i < 13; i++ {
		var unit uint16
		if i < len(text) {
			unit = uint16(text[i])
		} else if i == len(text) {
			unit = 0
		} else {
			unit = 0xFFFF
		}
		l[positions[i]] = byte(unit)
		l[positions[i]+1] = byte(unit >> 8)
	}
	return l
}

func setLFNChar(l *lfnSlot, index int, unit uint16) {
	positions := [13]int{1, 3, 5, 7, 9, 14, 16, 18, 20, 22, 24, 28, 30}
	l[positions[index]] = byte(unit)
	l[positions[index]+1] = byte(unit >> 8)
}
