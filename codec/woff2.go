package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/andybalholm/brotli"
)

// TTFToWOFF2 repackages a TrueType font as WOFF2: a table directory followed
// by one Brotli stream holding every table's data. The glyf and loca tables
// are stored with the null transform, so the stream carries the original
// table bytes throughout.
func TTFToWOFF2(ttf []byte) ([]byte, error) {
	flavor, tables, err := parseSFNT(ttf)
	if err != nil {
		return nil, err
	}

	var dir bytes.Buffer
	var raw bytes.Buffer
	totalSfntSize := 12 + 16*len(tables)
	for _, t := range tables {
		// Arbitrary-tag flag byte. glyf and loca carry transform version 3,
		// the null transform; everything else uses version 0, also null.
		flags := byte(0x3F)
		if t.tag == "glyf" || t.tag == "loca" {
			flags |= 3 << 6
		}
		dir.WriteByte(flags)
		dir.WriteString(t.tag)
		writeUIntBase128(&dir, uint32(len(t.data)))
		raw.Write(t.data)
		totalSfntSize += pad4(len(t.data))
	}

	var compressed bytes.Buffer
	w := brotli.NewWriterLevel(&compressed, brotli.BestCompression)
	if _, err := w.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("codec: woff2: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: woff2: %w", err)
	}

	headerSize := 48
	total := headerSize + dir.Len() + compressed.Len()
	padded := pad4(total)

	be := binary.BigEndian
	out := make([]byte, headerSize, padded)
	copy(out[0:], "wOF2")
	be.PutUint32(out[4:], flavor)
	be.PutUint32(out[8:], uint32(padded))
	be.PutUint16(out[12:], uint16(len(tables)))
	be.PutUint32(out[16:], uint32(totalSfntSize))
	be.PutUint32(out[20:], uint32(compressed.Len()))
	be.PutUint16(out[24:], 1) // majorVersion
	// minorVersion and the metadata/private blocks stay zero.

	out = append(out, dir.Bytes()...)
	out = append(out, compressed.Bytes()...)
	for len(out) < padded {
		out = append(out, 0)
	}
	return out, nil
}

// writeUIntBase128 encodes a length in the variable-width scheme the WOFF2
// directory uses: big-endian 7-bit groups, high bit set on all but the last.
func writeUIntBase128(buf *bytes.Buffer, v uint32) {
	var groups [5]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7F)
		v >>= 7
		n++
		if v == 0 {
			break
		}
	}
	for i := n - 1; i > 0; i-- {
		buf.WriteByte(groups[i] | 0x80)
	}
	buf.WriteByte(groups[0])
}
