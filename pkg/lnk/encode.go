package lnk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Shell link layout constants (MS-SHLLINK).
const (
	headerSize         = 0x4C
	linkInfoHeaderSize = 0x24
	volumeIDHeaderSize = 0x10
	maxStringChars     = 0xFFFF
)

// CLSID 00021401-0000-0000-C000-000000000046 in on-disk byte order.
var linkCLSID = [16]byte{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

// LinkFlags bits.
const (
	flagHasLinkTargetIDList uint32 = 1 << iota
	flagHasLinkInfo
	flagHasName
	flagHasRelativePath
	flagHasWorkingDir
	flagHasArguments
	flagHasIconLocation
	flagIsUnicode
)

const (
	linkInfoVolumeIDAndLocalBasePath uint32 = 0x1
	driveFixed                       uint32 = 3
	showNormal                       uint32 = 1
)

// header is the fixed ShellLinkHeader block.
type header struct {
	HeaderSize     uint32
	CLSID          [16]byte
	LinkFlags      uint32
	FileAttributes uint32
	CreationTime   uint64
	AccessTime     uint64
	WriteTime      uint64
	FileSize       uint32
	IconIndex      int32
	ShowCommand    uint32
	HotKey         uint16
	Reserved1      uint16
	Reserved2      uint32
	Reserved3      uint32
}

// ansi encodes the legacy code page copies of paths. Characters outside
// Windows-1252 are replaced; readers prefer the Unicode copy.
var ansi = charmap.Windows1252

// Marshal returns the shell link encoding of spec. Spec.Path is not part of
// the encoding.
func Marshal(spec Spec) ([]byte, error) {
	if spec.Target == "" {
		return nil, ErrNoTarget
	}

	type stringField struct {
		flag  uint32
		name  string
		value string
	}
	fields := []stringField{
		{flagHasWorkingDir, "working directory", spec.WorkingDir},
		{flagHasArguments, "arguments", spec.Arguments},
		{flagHasIconLocation, "icon location", spec.IconLocation},
	}

	flags := flagHasLinkInfo | flagIsUnicode
	for _, f := range fields {
		if f.value != "" {
			flags |= f.flag
		}
	}

	linkInfo, err := encodeLinkInfo(spec.Target)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	h := header{
		HeaderSize:  headerSize,
		CLSID:       linkCLSID,
		LinkFlags:   flags,
		ShowCommand: showNormal,
	}
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	buf.Write(linkInfo)

	// StringData entries appear in flag order
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := writeCountedString(&buf, f.value); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	// TerminalBlock
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	return buf.Bytes(), nil
}

// Encode writes the shell link encoding of spec to w.
func Encode(w io.Writer, spec Spec) error {
	data, err := Marshal(spec)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// encodeLinkInfo builds a LinkInfo block that locates target through a local
// base path on a fixed volume, with both ANSI and Unicode copies.
func encodeLinkInfo(target string) ([]byte, error) {
	ansiPath, err := encoding.ReplaceUnsupported(ansi.NewEncoder()).String(target)
	if err != nil {
		return nil, fmt.Errorf("encode target: %w", err)
	}
	unicodePath := utf16.Encode([]rune(target))

	volumeID := make([]byte, volumeIDHeaderSize+1) // empty label
	binary.LittleEndian.PutUint32(volumeID[0:], uint32(len(volumeID)))
	binary.LittleEndian.PutUint32(volumeID[4:], driveFixed)
	binary.LittleEndian.PutUint32(volumeID[12:], volumeIDHeaderSize)

	volumeOffset := uint32(linkInfoHeaderSize)
	basePathOffset := volumeOffset + uint32(len(volumeID))
	suffixOffset := basePathOffset + uint32(len(ansiPath)) + 1
	basePathUnicodeOffset := suffixOffset + 1
	suffixUnicodeOffset := basePathUnicodeOffset + uint32(len(unicodePath)+1)*2
	size := suffixUnicodeOffset + 2

	var buf bytes.Buffer
	for _, v := range []uint32{
		size,
		linkInfoHeaderSize,
		linkInfoVolumeIDAndLocalBasePath,
		volumeOffset,
		basePathOffset,
		0, // CommonNetworkRelativeLinkOffset
		suffixOffset,
		basePathUnicodeOffset,
		suffixUnicodeOffset,
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.Write(volumeID)
	buf.WriteString(ansiPath)
	buf.WriteByte(0)
	buf.WriteByte(0) // empty CommonPathSuffix
	binary.Write(&buf, binary.LittleEndian, unicodePath)
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // empty CommonPathSuffixUnicode

	return buf.Bytes(), nil
}

// writeCountedString writes a StringData entry: a UTF-16 unit count followed
// by the unterminated UTF-16LE text.
func writeCountedString(buf *bytes.Buffer, s string) error {
	units := utf16.Encode([]rune(s))
	if len(units) > maxStringChars {
		return fmt.Errorf("%w: %d characters", ErrStringTooLong, len(units))
	}
	binary.Write(buf, binary.LittleEndian, uint16(len(units)))
	binary.Write(buf, binary.LittleEndian, units)
	return nil
}
