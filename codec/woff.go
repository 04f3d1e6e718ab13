package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
)

// TTFToWOFF repackages a TrueType font as WOFF: the same tables, each
// individually zlib-compressed when that saves space.
func TTFToWOFF(ttf []byte) ([]byte, error) {
	flavor, tables, err := parseSFNT(ttf)
	if err != nil {
		return nil, err
	}

	type entry struct {
		parsedTable
		compressed []byte
	}
	entries := make([]entry, 0, len(tables))
	totalSfntSize := 12 + 16*len(tables)
	dataSize := 0
	for _, t := range tables {
		e := entry{parsedTable: t}
		compressed, err := zlibCompress(t.data)
		if err != nil {
			return nil, fmt.Errorf("codec: woff: table %q: %w", t.tag, err)
		}
		// Stored uncompressed unless compression wins.
		if len(compressed) < len(t.data) {
			e.compressed = compressed
		} else {
			e.compressed = t.data
		}
		entries = append(entries, e)
		totalSfntSize += pad4(len(t.data))
		dataSize += pad4(len(e.compressed))
	}

	headerSize := 44
	dirSize := 20 * len(entries)
	total := headerSize + dirSize + dataSize

	be := binary.BigEndian
	out := make([]byte, headerSize+dirSize, total)
	copy(out[0:], "wOFF")
	be.PutUint32(out[4:], flavor)
	be.PutUint32(out[8:], uint32(total))
	be.PutUint16(out[12:], uint16(len(entries)))
	be.PutUint32(out[16:], uint32(totalSfntSize))
	be.PutUint16(out[20:], 1) // majorVersion
	// minorVersion and the metadata/private blocks stay zero.

	offset := headerSize + dirSize
	for i, e := range entries {
		rec := out[headerSize+20*i:]
		copy(rec[0:], e.tag)
		be.PutUint32(rec[4:], uint32(offset))
		be.PutUint32(rec[8:], uint32(len(e.compressed)))
		be.PutUint32(rec[12:], uint32(len(e.data)))
		be.PutUint32(rec[16:], e.checksum)
		offset += pad4(len(e.compressed))
	}
	for _, e := range entries {
		out = append(out, e.compressed...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out, nil
}

func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
