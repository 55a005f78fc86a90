package parser

import (
	"fmt"
	"strings"

	"payloadgen/internal/model"
)

// DecodePayloads derives the payload bytes of every definition line. The
// payload is the second field for ICMP lines and the third otherwise.
func DecodePayloads(lines []model.DefinitionLine, report Reporter) map[model.LineID][]byte {
	payloads := make(map[model.LineID][]byte, len(lines))
	for _, line := range lines {
		parts := splitFields(line.Text)
		if len(parts) < 2 {
			report.Warn(Warning{Line: line.ID, Kind: KindMalformedEntry, Text: line.Text, Err: ErrMalformedEntry})
			continue
		}

		var text string
		if isICMP(parts) {
			text = parts[1]
		} else if len(parts) == 3 {
			text = parts[2]
		} else {
			// No payload field; DecodePortSets already reported the line.
			continue
		}

		payload, errs := DecodeBytes(text)
		for _, err := range errs {
			report.Warn(Warning{Line: line.ID, Kind: KindHexParse, Text: text, Err: err})
		}
		payloads[line.ID] = payload
	}
	return payloads
}

// EscapeError is returned by DecodeBytes for an escape whose two digits are
// not a hex pair. Pos is the rune index of the backslash.
type EscapeError struct {
	Pos    int
	Digits string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s at index %d: %q", ErrHexParse, e.Pos, e.Digits)
}

func (e *EscapeError) Unwrap() error {
	return ErrHexParse
}

type scanMode int

const (
	modeLiteral scanMode = iota
	modeEscape
)

// DecodeBytes decodes literal characters and \xHH escapes. A backslash is an
// escape only when followed by 'x' and at least two more characters; an
// escape always consumes four characters, even when its digits are invalid.
// Characters outside ASCII are truncated to their low byte.
func DecodeBytes(text string) ([]byte, []error) {
	src := []rune(text)
	out := make([]byte, 0, len(src))
	var errs []error

	mode := modeLiteral
	for pos := 0; pos < len(src); {
		switch mode {
		case modeLiteral:
			if src[pos] == '\\' && pos+3 < len(src) && src[pos+1] == 'x' {
				mode = modeEscape
				continue
			}
			out = append(out, byte(src[pos]))
			pos++
		case modeEscape:
			hi, okHi := unhex(src[pos+2])
			lo, okLo := unhex(src[pos+3])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
			} else {
				errs = append(errs, &EscapeError{Pos: pos, Digits: string(src[pos+2 : pos+4])})
			}
			pos += 4
			mode = modeLiteral
		}
	}
	return out, errs
}

func unhex(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r - 'a' + 10), true
	case r >= 'A' && r <= 'F':
		return byte(r - 'A' + 10), true
	}
	return 0, false
}

const hexDigits = "0123456789abcdef"

// EncodeBytes is the inverse of DecodeBytes: printable ASCII other than the
// backslash and space is written literally, everything else as \xHH.
func EncodeBytes(payload []byte) string {
	var b strings.Builder
	b.Grow(len(payload))
	for _, c := range payload {
		if c > ' ' && c < 0x7f && c != '\\' {
			b.WriteByte(c)
			continue
		}
		b.WriteString(`\x`)
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}
