package level

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/milk9111/pixelplatformer/common"
	"github.com/milk9111/pixelplatformer/grid"
)

// document is the JSON shape of a level. Grid may be an array of rows or a
// string holding that array; Data is an older name for Grid.
type document struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	Order         int             `json:"order"`
	Grid          json.RawMessage `json:"grid,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	StartPosition *common.Point   `json:"startPosition,omitempty"`
	PlayerStart   *common.Point   `json:"playerStart,omitempty"`
}

// Decode parses one level document.
func Decode(b []byte) (Level, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Level{}, fmt.Errorf("level: decode: %w", err)
	}
	raw := doc.Grid
	if len(raw) == 0 {
		raw = doc.Data
	}
	if len(raw) == 0 {
		return Level{}, fmt.Errorf("level: decode %q: missing grid", doc.Name)
	}
	rows, err := decodeRows(raw)
	if err != nil {
		return Level{}, fmt.Errorf("level: decode %q: %w", doc.Name, err)
	}
	g, err := grid.FromRows(rows)
	if err != nil {
		return Level{}, fmt.Errorf("level: decode %q: %w", doc.Name, err)
	}

	l := Level{
		ID:    doc.ID,
		Name:  doc.Name,
		Order: doc.Order,
		Grid:  g,
		Start: DefaultStart,
	}
	switch {
	case doc.PlayerStart != nil:
		l.Start = *doc.PlayerStart
	case doc.StartPosition != nil:
		l.Start = *doc.StartPosition
	}
	for y, row := range rows {
		if len(row) != g.Width() {
			l.Warnings = append(l.Warnings, fmt.Sprintf("row %d has %d cells, padded to %d", y, len(row), g.Width()))
		}
	}
	return l, nil
}

func decodeRows(raw json.RawMessage) ([][]int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = []byte(s)
	}
	var rows [][]int
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	return rows, nil
}

// Encode writes a level document. The grid is written as an array of rows.
func Encode(l Level) ([]byte, error) {
	if l.Grid == nil {
		return nil, fmt.Errorf("level: encode %q: missing grid", l.Name)
	}
	rows, err := json.Marshal(l.Grid.Rows())
	if err != nil {
		return nil, fmt.Errorf("level: encode %q: %w", l.Name, err)
	}
	start := l.Start
	doc := document{
		ID:            l.ID,
		Name:          l.Name,
		Order:         l.Order,
		Grid:          rows,
		StartPosition: &start,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("level: encode %q: %w", l.Name, err)
	}
	return append(b, '\n'), nil
}

// DecodeList parses a JSON array of level documents.
func DecodeList(b []byte) ([]Level, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("level: decode list: %w", err)
	}
	out := make([]Level, 0, len(raws))
	for i, raw := range raws {
		l, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("level: decode list item %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// EncodeList writes levels as a JSON array.
func EncodeList(levels []Level) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(levels))
	for _, l := range levels {
		b, err := Encode(l)
		if err != nil {
			return nil, err
		}
		raws = append(raws, json.RawMessage(bytes.TrimSpace(b)))
	}
	return json.Marshal(raws)
}
