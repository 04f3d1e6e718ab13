package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
)

func TestTTFToWOFF(t *testing.T) {
	ttf := buildTestTTF(t)
	woff, err := TTFToWOFF(ttf)
	if err != nil {
		t.Fatalf("TTFToWOFF: %v", err)
	}

	be := binary.BigEndian
	if string(woff[:4]) != "wOFF" {
		t.Fatalf("signature = %q, want wOFF", woff[:4])
	}
	if got := be.Uint32(woff[8:]); got != uint32(len(woff)) {
		t.Errorf("length field = %d, want %d", got, len(woff))
	}
	if got := be.Uint32(woff[16:]); got != uint32(len(ttf)) {
		t.Errorf("totalSfntSize = %d, want %d", got, len(ttf))
	}

	_, tables, err := parseSFNT(ttf)
	if err != nil {
		t.Fatalf("parseSFNT: %v", err)
	}
	numTables := int(be.Uint16(woff[12:]))
	if numTables != len(tables) {
		t.Fatalf("numTables = %d, want %d", numTables, len(tables))
	}

	// Every table must decompress back to the original bytes.
	for i, want := range tables {
		rec := woff[44+20*i:]
		if string(rec[:4]) != want.tag {
			t.Fatalf("table %d tag = %q, want %q", i, rec[:4], want.tag)
		}
		offset := be.Uint32(rec[4:])
		compLength := be.Uint32(rec[8:])
		origLength := be.Uint32(rec[12:])
		if origLength != uint32(len(want.data)) {
			t.Errorf("table %q origLength = %d, want %d", want.tag, origLength, len(want.data))
		}
		stored := woff[offset : offset+compLength]
		got := stored
		if compLength < origLength {
			r, err := zlib.NewReader(bytes.NewReader(stored))
			if err != nil {
				t.Fatalf("table %q: zlib: %v", want.tag, err)
			}
			got, err = io.ReadAll(r)
			if err != nil {
				t.Fatalf("table %q: inflate: %v", want.tag, err)
			}
		}
		if !bytes.Equal(got, want.data) {
			t.Errorf("table %q roundtrip mismatch", want.tag)
		}
	}
}

func TestTTFToWOFF2(t *testing.T) {
	ttf := buildTestTTF(t)
	woff2, err := TTFToWOFF2(ttf)
	if err != nil {
		t.Fatalf("TTFToWOFF2: %v", err)
	}

	be := binary.BigEndian
	if string(woff2[:4]) != "wOF2" {
		t.Fatalf("signature = %q, want wOF2", woff2[:4])
	}
	if got := be.Uint32(woff2[8:]); got != uint32(len(woff2)) {
		t.Errorf("length field = %d, want %d", got, len(woff2))
	}
	if got := be.Uint32(woff2[16:]); got != uint32(len(ttf)) {
		t.Errorf("totalSfntSize = %d, want %d", got, len(ttf))
	}

	_, tables, err := parseSFNT(ttf)
	if err != nil {
		t.Fatalf("parseSFNT: %v", err)
	}
	if got := int(be.Uint16(woff2[12:])); got != len(tables) {
		t.Fatalf("numTables = %d, want %d", got, len(tables))
	}

	// Walk the directory and verify tags and original lengths.
	pos := 48
	var wantStream []byte
	for _, want := range tables {
		flags := woff2[pos]
		pos++
		if flags&0x3F != 0x3F {
			t.Fatalf("table %q: known-table flags %#x, want arbitrary tag", want.tag, flags)
		}
		wantXform := byte(0)
		if want.tag == "glyf" || want.tag == "loca" {
			wantXform = 3
		}
		if got := flags >> 6; got != wantXform {
			t.Errorf("table %q transform = %d, want %d", want.tag, got, wantXform)
		}
		if tag := string(woff2[pos : pos+4]); tag != want.tag {
			t.Fatalf("tag = %q, want %q", tag, want.tag)
		}
		pos += 4
		length, n := readUIntBase128(woff2[pos:])
		pos += n
		if length != uint32(len(want.data)) {
			t.Errorf("table %q origLength = %d, want %d", want.tag, length, len(want.data))
		}
		wantStream = append(wantStream, want.data...)
	}

	compressedSize := int(be.Uint32(woff2[20:]))
	stream := woff2[pos : pos+compressedSize]
	got, err := io.ReadAll(brotli.NewReader(bytes.NewReader(stream)))
	if err != nil {
		t.Fatalf("brotli: %v", err)
	}
	if !bytes.Equal(got, wantStream) {
		t.Errorf("decompressed stream mismatch: %d bytes, want %d", len(got), len(wantStream))
	}
}

func readUIntBase128(data []byte) (uint32, int) {
	var v uint32
	for i := 0; i < len(data) && i < 5; i++ {
		v = v<<7 | uint32(data[i]&0x7F)
		if data[i]&0x80 == 0 {
			return v, i + 1
		}
	}
	return 0, 0
}

func TestTTFToEOT(t *testing.T) {
	ttf := buildTestTTF(t)
	eot, err := TTFToEOT(ttf)
	if err != nil {
		t.Fatalf("TTFToEOT: %v", err)
	}

	le := binary.LittleEndian
	if got := le.Uint32(eot[0:]); got != uint32(len(eot)) {
		t.Errorf("EOTSize = %d, want %d", got, len(eot))
	}
	if got := le.Uint32(eot[4:]); got != uint32(len(ttf)) {
		t.Errorf("FontDataSize = %d, want %d", got, len(ttf))
	}
	if got := le.Uint32(eot[8:]); got != eotVersion {
		t.Errorf("Version = %#x, want %#x", got, uint32(eotVersion))
	}
	if got := le.Uint16(eot[34:]); got != eotMagic {
		t.Errorf("MagicNumber = %#x, want %#x", got, uint16(eotMagic))
	}

	// The raw font follows the header untouched.
	if !bytes.Equal(eot[len(eot)-len(ttf):], ttf) {
		t.Error("embedded font data differs from input")
	}

	// Family name: padding, size, UTF-16LE string at the fixed header end.
	familySize := int(le.Uint16(eot[82:]))
	family := eot[84 : 84+familySize]
	want := utf16LE("Test Icons")
	if !bytes.Equal(family, want) {
		t.Errorf("family name bytes = %v, want %v", family, want)
	}
}

func TestTTFToEOTRejectsGarbage(t *testing.T) {
	if _, err := TTFToEOT([]byte("not a font")); err == nil {
		t.Fatal("expected an error for non-sfnt input")
	}
}

func utf16LE(s string) []byte {
	var b []byte
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}
