package action

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aerissecure/chatedit"
)

// text is a string field that also accepts JSON numbers and booleans, since
// generated payloads are loose about quoting ("column": 3).
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = text(chatedit.Display(v))
	return nil
}

func (t text) String() string { return strings.TrimSpace(string(t)) }

// texts is a list field that also accepts a single comma-separated string.
type texts []string

func (t *texts) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.String())
		}
		*t = out
		return nil
	}
	var one text
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*t = nil
	for _, part := range strings.Split(string(one), ",") {
		if p := strings.TrimSpace(part); p != "" {
			*t = append(*t, p)
		}
	}
	return nil
}

// number is an int field that also accepts numeric strings.
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	var t text
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	if t.String() == "" {
		*n = 0
		return nil
	}
	f, ok := chatedit.ParseNumber(t.String())
	if !ok {
		return fmt.Errorf("%q is not a number", t.String())
	}
	*n = number(f)
	return nil
}

// flag is a bool field that also accepts "true"/"yes" strings.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var t text
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	switch strings.ToLower(t.String()) {
	case "true", "yes", "1", "y", "on":
		*f = true
	default:
		*f = false
	}
	return nil
}

// style decodes a CellStyle and normalises colours to bare upper-case hex.
type style chatedit.CellStyle

func (s *style) UnmarshalJSON(data []byte) error {
	var cs chatedit.CellStyle
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}
	cs.Background = normalizeColor(cs.Background)
	cs.FontColor = normalizeColor(cs.FontColor)
	cs.BorderColor = normalizeColor(cs.BorderColor)
	cs.HorizontalAlign = strings.ToLower(strings.TrimSpace(cs.HorizontalAlign))
	cs.VerticalAlign = strings.ToLower(strings.TrimSpace(cs.VerticalAlign))
	*s = style(cs)
	return nil
}

var namedColors = map[string]string{
	"red":    "FF0000",
	"green":  "00FF00",
	"blue":   "0000FF",
	"yellow": "FFFF00",
	"orange": "FFA500",
	"purple": "800080",
	"gray":   "808080",
	"grey":   "808080",
	"black":  "000000",
	"white":  "FFFFFF",
}

func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if hex, ok := namedColors[strings.ToLower(c)]; ok {
		return hex
	}
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	return c
}
