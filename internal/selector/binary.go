package selector

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// sniffLen is how many leading bytes are inspected per file.
const sniffLen = 512

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF32BE = []byte{0x00, 0x00, 0xfe, 0xff}
	bomUTF32LE = []byte{0xff, 0xfe, 0x00, 0x00}
	bomGB18030 = []byte{0x84, 0x31, 0x95, 0x33}
	bomUTF16BE = []byte{0xfe, 0xff}
	bomUTF16LE = []byte{0xff, 0xfe}
	pdfMagic   = []byte("%PDF-")
)

// IsBinary classifies a content sample. A NUL byte, a PDF header, or more than
// 10% bytes that are neither printable ASCII, common control characters, nor
// part of a valid UTF-8 sequence mark the sample as binary.
func IsBinary(sample []byte) bool {
	n := len(sample)
	if n == 0 {
		return false
	}

	switch {
	case bytes.HasPrefix(sample, bomUTF8),
		bytes.HasPrefix(sample, bomUTF32BE),
		bytes.HasPrefix(sample, bomUTF32LE),
		bytes.HasPrefix(sample, bomGB18030):
		return false
	case bytes.HasPrefix(sample, pdfMagic):
		return true
	case bytes.HasPrefix(sample, bomUTF16BE),
		bytes.HasPrefix(sample, bomUTF16LE):
		return false
	}

	suspicious := 0
	for i := 0; i < n; {
		b := sample[i]
		if b == 0 {
			return true
		}
		if (b >= 7 && b <= 14) || (b >= 32 && b <= 127) {
			i++
			continue
		}
		if b >= 0x80 {
			r, size := utf8.DecodeRune(sample[i:])
			if r != utf8.RuneError || size > 1 {
				i += size
				continue
			}
			// A multi-byte sequence cut off by the sample window.
			if !utf8.FullRune(sample[i:]) {
				break
			}
		}
		suspicious++
		if i >= 32 && suspicious*100/n > 10 {
			return true
		}
		i++
	}
	return suspicious*100/n > 10
}

// IsBinaryFile sniffs the first bytes of the file at path.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return IsBinary(buf[:n]), nil
}
