package codec

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// table is one sfnt table awaiting assembly.
type table struct {
	tag  string
	data []byte
}

// sfntVersionTrueType is the offset-table version of fonts with TrueType
// outlines.
const sfntVersionTrueType = 0x00010000

// pad4 returns n rounded up to a multiple of four.
func pad4(n int) int {
	return (n + 3) &^ 3
}

// tableChecksum sums the table as big-endian uint32 words, zero-padding the
// tail, per the sfnt specification.
func tableChecksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word uint32
		for j := 0; j < 4; j++ {
			word <<= 8
			if i+j < len(data) {
				word |= uint32(data[i+j])
			}
		}
		sum += word
	}
	return sum
}

// assembleSFNT lays out the tables into a font file: offset table, directory
// sorted by tag, then table data padded to four bytes. The head table's
// checkSumAdjustment is patched so the whole file sums to the magic
// constant.
func assembleSFNT(tables []table) []byte {
	sorted := append([]table(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].tag < sorted[j].tag })

	n := len(sorted)
	// searchRange/entrySelector/rangeShift are the binary-search hints
	// required by the offset table.
	entrySelector := 0
	for 1<<(entrySelector+1) <= n {
		entrySelector++
	}
	searchRange := 16 << entrySelector

	headerSize := 12 + 16*n
	total := headerSize
	for _, t := range sorted {
		total += pad4(len(t.data))
	}

	font := make([]byte, total)
	be := binary.BigEndian
	be.PutUint32(font[0:], sfntVersionTrueType)
	be.PutUint16(font[4:], uint16(n))
	be.PutUint16(font[6:], uint16(searchRange))
	be.PutUint16(font[8:], uint16(entrySelector))
	be.PutUint16(font[10:], uint16(16*n-searchRange))

	offset := headerSize
	headOffset := -1
	for i, t := range sorted {
		rec := 12 + 16*i
		copy(font[rec:], t.tag)
		be.PutUint32(font[rec+4:], tableChecksum(t.data))
		be.PutUint32(font[rec+8:], uint32(offset))
		be.PutUint32(font[rec+12:], uint32(len(t.data)))
		copy(font[offset:], t.data)
		if t.tag == "head" {
			headOffset = offset
		}
		offset += pad4(len(t.data))
	}

	if headOffset >= 0 {
		// checkSumAdjustment lives at head+8 and is excluded from the
		// file checksum by being zero at this point.
		adjustment := 0xB1B0AFBA - tableChecksum(font)
		be.PutUint32(font[headOffset+8:], adjustment)
	}
	return font
}

// parsedTable is one table located inside an existing font file.
type parsedTable struct {
	tag      string
	checksum uint32
	data     []byte
}

// parseSFNT splits a font file into its tables, preserving directory order.
func parseSFNT(font []byte) (flavor uint32, tables []parsedTable, err error) {
	if len(font) < 12 {
		return 0, nil, ErrNotSFNT
	}
	be := binary.BigEndian
	flavor = be.Uint32(font[0:])
	if flavor != sfntVersionTrueType && flavor != 0x4F54544F { // 'OTTO'
		return 0, nil, ErrNotSFNT
	}
	n := int(be.Uint16(font[4:]))
	if len(font) < 12+16*n {
		return 0, nil, fmt.Errorf("codec: truncated table directory: %w", ErrNotSFNT)
	}
	tables = make([]parsedTable, 0, n)
	for i := 0; i < n; i++ {
		rec := 12 + 16*i
		offset := int(be.Uint32(font[rec+8:]))
		length := int(be.Uint32(font[rec+12:]))
		if offset < 0 || length < 0 || offset+length > len(font) {
			return 0, nil, fmt.Errorf("codec: table %q out of bounds: %w", font[rec:rec+4], ErrNotSFNT)
		}
		tables = append(tables, parsedTable{
			tag:      string(font[rec : rec+4]),
			checksum: be.Uint32(font[rec+4:]),
			data:     font[offset : offset+length],
		})
	}
	return flavor, tables, nil
}

// findTable returns the named table's data.
func findTable(tables []parsedTable, tag string) ([]byte, bool) {
	for _, t := range tables {
		if t.tag == tag {
			return t.data, true
		}
	}
	return nil, false
}
