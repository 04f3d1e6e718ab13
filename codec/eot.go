package codec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// eotVersion is the Embedded OpenType header version carrying the four name
// strings but no root string data.
const eotVersion = 0x00020001

// eotMagic sits at a fixed offset and identifies the header.
const eotMagic = 0x504C

// TTFToEOT prepends the Embedded OpenType header to a TrueType font. The
// header fields are lifted from the font's OS/2, head and name tables.
func TTFToEOT(ttf []byte) ([]byte, error) {
	_, tables, err := parseSFNT(ttf)
	if err != nil {
		return nil, err
	}

	os2, ok := findTable(tables, "OS/2")
	if !ok || len(os2) < 96 {
		return nil, fmt.Errorf("codec: eot: missing or short OS/2 table")
	}
	head, ok := findTable(tables, "head")
	if !ok || len(head) < 54 {
		return nil, fmt.Errorf("codec: eot: missing or short head table")
	}

	names, err := decodeNameStrings(tables)
	if err != nil {
		return nil, err
	}
	family, err := encodeUTF16LE(names[1])
	if err != nil {
		return nil, err
	}
	style, err := encodeUTF16LE(names[2])
	if err != nil {
		return nil, err
	}
	version, err := encodeUTF16LE(names[5])
	if err != nil {
		return nil, err
	}
	full, err := encodeUTF16LE(names[4])
	if err != nil {
		return nil, err
	}

	be := binary.BigEndian
	le := binary.LittleEndian

	// Fixed-size header, four length-prefixed strings, an empty root
	// string, then the raw font.
	headerSize := 80 +
		2 + 2 + len(family) +
		2 + 2 + len(style) +
		2 + 2 + len(version) +
		2 + 2 + len(full) +
		2
	total := headerSize + len(ttf)

	out := make([]byte, 0, total)
	out = le.AppendUint32(out, uint32(total))
	out = le.AppendUint32(out, uint32(len(ttf)))
	out = le.AppendUint32(out, eotVersion)
	out = le.AppendUint32(out, 0) // flags
	out = append(out, os2[32:42]...)
	out = append(out, 1) // charset: DEFAULT_CHARSET
	italic := byte(0)
	if be.Uint16(os2[62:])&0x0001 != 0 {
		italic = 1
	}
	out = append(out, italic)
	out = le.AppendUint32(out, uint32(be.Uint16(os2[4:]))) // weight
	out = le.AppendUint16(out, be.Uint16(os2[8:]))         // fsType
	out = le.AppendUint16(out, eotMagic)
	for i := 0; i < 4; i++ { // UnicodeRange1..4
		out = le.AppendUint32(out, be.Uint32(os2[42+4*i:]))
	}
	for i := 0; i < 2; i++ { // CodePageRange1..2
		out = le.AppendUint32(out, be.Uint32(os2[78+4*i:]))
	}
	out = le.AppendUint32(out, be.Uint32(head[8:])) // checkSumAdjustment
	for i := 0; i < 4; i++ {                        // reserved
		out = le.AppendUint32(out, 0)
	}
	for _, s := range [][]byte{family, style, version, full} {
		out = le.AppendUint16(out, 0) // padding
		out = le.AppendUint16(out, uint16(len(s)))
		out = append(out, s...)
	}
	out = le.AppendUint16(out, 0) // rootStringSize
	return append(out, ttf...), nil
}

// decodeNameStrings reads the Windows Unicode name records the header
// requires: family (1), subfamily (2), full name (4) and version (5).
func decodeNameStrings(tables []parsedTable) (map[uint16]string, error) {
	name, ok := findTable(tables, "name")
	if !ok || len(name) < 6 {
		return nil, fmt.Errorf("codec: eot: missing or short name table")
	}
	be := binary.BigEndian
	count := int(be.Uint16(name[2:]))
	stringOffset := int(be.Uint16(name[4:]))
	if len(name) < 6+12*count {
		return nil, fmt.Errorf("codec: eot: truncated name records")
	}

	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	out := map[uint16]string{1: "", 2: "", 4: "", 5: ""}
	for i := 0; i < count; i++ {
		rec := name[6+12*i:]
		if be.Uint16(rec[0:]) != namePlatformWindows {
			continue
		}
		id := be.Uint16(rec[6:])
		if _, wanted := out[id]; !wanted {
			continue
		}
		length := int(be.Uint16(rec[8:]))
		offset := stringOffset + int(be.Uint16(rec[10:]))
		if offset+length > len(name) {
			return nil, fmt.Errorf("codec: eot: name record %d out of bounds", id)
		}
		decoded, err := dec.Bytes(name[offset : offset+length])
		if err != nil {
			return nil, fmt.Errorf("codec: eot: name record %d: %w", id, err)
		}
		out[id] = string(decoded)
	}
	return out, nil
}

func encodeUTF16LE(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("codec: eot: %w", err)
	}
	return b, nil
}
