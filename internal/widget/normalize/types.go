package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
)

// RankCeiling is the deepest rank reported as a number.
const RankCeiling = 50

// Rank is a search position. It renders "50+" when unranked (0) or deeper than RankCeiling.
type Rank int64

// RankOf parses a raw rank column.
func RankOf(v null.String) Rank {
	return Rank(Int(v))
}

// Bucketed reports whether the rank is displayed as "50+".
func (r Rank) Bucketed() bool {
	return r == 0 || r > RankCeiling
}

func (r Rank) String() string {
	if r.Bucketed() {
		return strconv.Itoa(RankCeiling) + "+"
	}
	return strconv.FormatInt(int64(r), 10)
}

func (r Rank) MarshalJSON() ([]byte, error) {
	if r.Bucketed() {
		return json.Marshal(r.String())
	}
	return json.Marshal(int64(r))
}

// Volume is a search volume. Zero renders as the placeholder.
type Volume int64

// VolumeOf parses a raw volume column.
func VolumeOf(v null.String) Volume {
	return Volume(Int(v))
}

func (v Volume) MarshalJSON() ([]byte, error) {
	if v == 0 {
		return json.Marshal(Placeholder)
	}
	return json.Marshal(int64(v))
}

// Volumes converts raw integers into display volumes.
func Volumes(values []int64) []Volume {
	out := make([]Volume, len(values))
	for i, v := range values {
		out[i] = Volume(v)
	}
	return out
}

// Lines is a list rendered as newline separated text, or the placeholder when empty.
type Lines []string

// List parses a Postgres text array literal such as {a,"b, c"}.
func List(v null.String) Lines {
	if !v.Valid {
		return nil
	}
	s := strings.TrimSpace(v.String)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return nil
	}

	var (
		out     Lines
		cur     strings.Builder
		quoted  bool
		escaped bool
	)
	flush := func() {
		item := cur.String()
		cur.Reset()
		if item != "" && item != "NULL" {
			out = append(out, item)
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

func (l Lines) String() string {
	if len(l) == 0 {
		return Placeholder
	}
	return strings.Join(l, "\n")
}

func (l Lines) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
