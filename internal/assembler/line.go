package assembler

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/emmachip8/ec8/internal/opcode"
)

// Kind distinguishes the three shapes an assembler source line can take.
type Kind int

const (
	KindCode Kind = iota
	KindComment
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "Code"
	case KindComment:
		return "Comment"
	case KindData:
		return "Data"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Line is one assembled line: an encoded instruction, a raw data run, or a
// comment-only line. Idx is the 0-based source line number, kept only for
// diagnostics.
type Line struct {
	Idx     int
	Kind    Kind
	Opcode  opcode.Code // meaningful only when Kind == KindCode
	Bytes   []byte      // 2 bytes for Code, even length for Data, nil for Comment
	Comment string      // trailing ";..." comment on a Code or Data line
	Text    string      // the full text of a Comment-kind line
}

func newCode(idx int, op opcode.Code, bytes [2]byte) Line {
	return Line{Idx: idx, Kind: KindCode, Opcode: op, Bytes: bytes[:]}
}

func newComment(idx int, text string) Line {
	return Line{Idx: idx, Kind: KindComment, Text: text}
}

func newData(idx int, bytes []byte) Line {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	return Line{Idx: idx, Kind: KindData, Bytes: cp}
}

// appendComment attaches a trailing comment to a Code or Data line; it is a
// no-op on Comment lines.
func (l Line) appendComment(text string) Line {
	if l.Kind == KindComment {
		return l
	}
	l.Comment = text
	return l
}

func lineData(i int, params string) (Line, error) {
	params = strings.TrimSpace(params)
	if !strings.HasPrefix(params, "[") || !strings.HasSuffix(params, "]") {
		return Line{}, fmt.Errorf("Line %d) data must be wrapped in [ ]", i)
	}
	hexStr := strings.TrimSpace(params[1 : len(params)-1])
	if len(hexStr)%2 != 0 {
		return Line{}, fmt.Errorf("Line %d) data must have an even number of hex digits", i)
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) unable to parse data: %v", i, err)
	}
	return newData(i, raw), nil
}

// String renders a line the way Program.Describe does: hex bytes, a
// human-readable description, then any trailing comment.
func (l Line) String() string {
	switch l.Kind {
	case KindCode:
		desc := l.Opcode.SimpleDescribe(l.Bytes[0], l.Bytes[1])
		return fmt.Sprintf("%02X%02X %s %s", l.Bytes[0], l.Bytes[1], desc, l.commentSuffix())
	case KindData:
		hexBytes := strings.ToUpper(hex.EncodeToString(l.Bytes))
		return fmt.Sprintf("%s dat [%s] %s", hexBytes, hexBytes, l.commentSuffix())
	case KindComment:
		return ";" + l.Text
	default:
		return ""
	}
}

// commentSuffix renders the trailing comment with its leading ';', or the
// empty string when there is none.
func (l Line) commentSuffix() string {
	if l.Comment == "" {
		return ""
	}
	return ";" + l.Comment
}
