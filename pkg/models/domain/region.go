package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// RegionNode is one node of the GetIndexTreeData response. Besides id, text
// and leaf the upstream sends sparse per-period values keyed as y<code>.
// id, text and leaf are kept as sent.
type RegionNode struct {
	ID     json.RawMessage
	Text   json.RawMessage
	Leaf   json.RawMessage
	Fields map[string]json.RawMessage
}

func (n *RegionNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw["id"]
	n.Text = raw["text"]
	n.Leaf = raw["leaf"]

	delete(raw, "id")
	delete(raw, "text")
	delete(raw, "leaf")
	n.Fields = raw
	return nil
}

// Value returns the value stored for the given period code. Upstream encodes
// "no data" as a missing, null, zero or empty field; all of those report false.
func (n RegionNode) Value(code PeriodCode) (json.RawMessage, bool) {
	v, ok := n.Fields["y"+string(code)]
	if !ok || !HasValue(v) {
		return nil, false
	}
	return v, true
}

// HasValue reports whether a raw JSON value carries data.
func HasValue(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}

	switch v[0] {
	case 'n', 'f':
		return false
	case 't':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return s != ""
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return false
		}
		return len(items) > 0
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err != nil {
			return false
		}
		return len(obj) > 0
	default:
		f, err := strconv.ParseFloat(string(v), 64)
		if errors.Is(err, strconv.ErrRange) {
			// Magnitude overflowed float64; the value is not zero.
			return true
		}
		if err != nil {
			return false
		}
		return f != 0
	}
}

// PeriodCode is a date code from dateList. Upstream sends these either as
// numbers or as strings.
type PeriodCode string

func (c *PeriodCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = PeriodCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("period code: %w", err)
	}
	*c = PeriodCode(n.String())
	return nil
}

// PeriodIndex is the GetIndexPeriods response: DateList[i] is labelled
// PeriodNameList[i].
type PeriodIndex struct {
	DateList       []PeriodCode `json:"dateList"`
	PeriodNameList []string     `json:"periodNameList"`
}

func (p PeriodIndex) Validate() error {
	if len(p.DateList) != len(p.PeriodNameList) {
		return fmt.Errorf("dateList has %d entries, periodNameList has %d",
			len(p.DateList), len(p.PeriodNameList))
	}
	return nil
}

type PeriodValue struct {
	Period string
	Value  json.RawMessage
}

// FlatRegionRecord is a region with its period values keyed by period name.
// It serialises as a single JSON object: id, text, leaf, then one key per
// period in the order the periods were added.
type FlatRegionRecord struct {
	ID     json.RawMessage
	Text   json.RawMessage
	Leaf   json.RawMessage
	Values []PeriodValue
}

// Set stores a value for a period, replacing an earlier value for the same
// period name in place.
func (r *FlatRegionRecord) Set(period string, value json.RawMessage) {
	for i := range r.Values {
		if r.Values[i].Period == period {
			r.Values[i].Value = value
			return
		}
	}
	r.Values = append(r.Values, PeriodValue{Period: period, Value: value})
}

func (r FlatRegionRecord) Get(period string) (json.RawMessage, bool) {
	for _, v := range r.Values {
		if v.Period == period {
			return v.Value, true
		}
	}
	return nil, false
}

func (r FlatRegionRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	writeRaw(&buf, r.ID)
	buf.WriteString(`,"text":`)
	writeRaw(&buf, r.Text)
	buf.WriteString(`,"leaf":`)
	writeRaw(&buf, r.Leaf)

	for _, v := range r.Values {
		key, err := json.Marshal(v.Period)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		writeRaw(&buf, v.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeRaw writes an upstream value verbatim, or null when it was absent.
func writeRaw(buf *bytes.Buffer, v json.RawMessage) {
	if len(v) == 0 {
		buf.WriteString("null")
		return
	}
	buf.Write(v)
}
