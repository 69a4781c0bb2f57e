package lnk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Decode parses shell link data and returns the target, arguments, icon
// location and working directory it carries. Targets stored only as an item
// ID list are not resolved; the relative path is used when no LinkInfo is
// present.
func Decode(data []byte) (Spec, error) {
	var spec Spec

	if len(data) < headerSize {
		return spec, ErrTruncated
	}

	var h header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		return spec, err
	}
	if h.HeaderSize != headerSize || h.CLSID != linkCLSID {
		return spec, ErrInvalidHeader
	}

	pos := headerSize

	if h.LinkFlags&flagHasLinkTargetIDList != 0 {
		if pos+2 > len(data) {
			return spec, fmt.Errorf("id list size: %w", ErrTruncated)
		}
		pos += 2 + int(binary.LittleEndian.Uint16(data[pos:]))
	}

	if h.LinkFlags&flagHasLinkInfo != 0 {
		if pos+4 > len(data) {
			return spec, fmt.Errorf("link info size: %w", ErrTruncated)
		}
		size := int(binary.LittleEndian.Uint32(data[pos:]))
		if size < 4 || pos+size > len(data) {
			return spec, fmt.Errorf("link info: %w", ErrTruncated)
		}
		target, err := parseLinkInfo(data[pos : pos+size])
		if err != nil {
			return spec, fmt.Errorf("link info: %w", err)
		}
		spec.Target = target
		pos += size
	}

	var name, relativePath string
	fields := []struct {
		flag uint32
		dst  *string
	}{
		{flagHasName, &name},
		{flagHasRelativePath, &relativePath},
		{flagHasWorkingDir, &spec.WorkingDir},
		{flagHasArguments, &spec.Arguments},
		{flagHasIconLocation, &spec.IconLocation},
	}

	unicode := h.LinkFlags&flagIsUnicode != 0
	for _, f := range fields {
		if h.LinkFlags&f.flag == 0 {
			continue
		}
		s, next, err := readCountedString(data, pos, unicode)
		if err != nil {
			return spec, err
		}
		*f.dst = s
		pos = next
	}

	if spec.Target == "" {
		spec.Target = relativePath
	}

	return spec, nil
}

// parseLinkInfo returns the local path a LinkInfo block points at. Network
// locations yield an empty string.
func parseLinkInfo(info []byte) (string, error) {
	if len(info) < 0x1C {
		return "", ErrTruncated
	}

	hdrSize := binary.LittleEndian.Uint32(info[4:])
	flags := binary.LittleEndian.Uint32(info[8:])
	basePathOffset := binary.LittleEndian.Uint32(info[16:])
	suffixOffset := binary.LittleEndian.Uint32(info[24:])

	if flags&linkInfoVolumeIDAndLocalBasePath == 0 {
		return "", nil
	}

	if hdrSize >= linkInfoHeaderSize && len(info) >= linkInfoHeaderSize {
		basePathUnicodeOffset := binary.LittleEndian.Uint32(info[28:])
		suffixUnicodeOffset := binary.LittleEndian.Uint32(info[32:])
		if basePathUnicodeOffset != 0 {
			base, err := readUTF16Z(info, int(basePathUnicodeOffset))
			if err != nil {
				return "", err
			}
			var suffix string
			if suffixUnicodeOffset != 0 {
				if suffix, err = readUTF16Z(info, int(suffixUnicodeOffset)); err != nil {
					return "", err
				}
			}
			return base + suffix, nil
		}
	}

	base, err := readANSIZ(info, int(basePathOffset))
	if err != nil {
		return "", err
	}
	suffix, err := readANSIZ(info, int(suffixOffset))
	if err != nil {
		return "", err
	}
	return base + suffix, nil
}

// readCountedString reads a StringData entry starting at pos and returns the
// text and the position after it.
func readCountedString(data []byte, pos int, unicode bool) (string, int, error) {
	if pos+2 > len(data) {
		return "", pos, fmt.Errorf("string count at %d: %w", pos, ErrTruncated)
	}
	count := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2

	if !unicode {
		if pos+count > len(data) {
			return "", pos, fmt.Errorf("string at %d: %w", pos, ErrTruncated)
		}
		s, err := decodeANSI(data[pos : pos+count])
		return s, pos + count, err
	}

	if pos+count*2 > len(data) {
		return "", pos, fmt.Errorf("string at %d: %w", pos, ErrTruncated)
	}
	units := make([]uint16, count)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[pos+i*2:])
	}
	return string(utf16.Decode(units)), pos + count*2, nil
}

func readUTF16Z(data []byte, pos int) (string, error) {
	var units []uint16
	for {
		if pos < 0 || pos+2 > len(data) {
			return "", fmt.Errorf("unterminated unicode string: %w", ErrTruncated)
		}
		u := binary.LittleEndian.Uint16(data[pos:])
		if u == 0 {
			return string(utf16.Decode(units)), nil
		}
		units = append(units, u)
		pos += 2
	}
}

func readANSIZ(data []byte, pos int) (string, error) {
	if pos < 0 || pos >= len(data) {
		return "", fmt.Errorf("ansi string offset %d: %w", pos, ErrTruncated)
	}
	end := bytes.IndexByte(data[pos:], 0)
	if end < 0 {
		return "", fmt.Errorf("unterminated ansi string: %w", ErrTruncated)
	}
	return decodeANSI(data[pos : pos+end])
}

func decodeANSI(b []byte) (string, error) {
	out, err := ansi.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
