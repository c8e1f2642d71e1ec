package output

import (
	"encoding/json"

	"github.com/dl/linegrep/internal/scan"
)

// JSONFormatter emits JSON Lines: one object per match or context line.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonRecord struct {
	Type    string    `json:"type"`
	Source  string    `json:"source,omitempty"`
	LineNum int       `json:"line_number"`
	Text    string    `json:"text"`
	Spans   []jsonPos `json:"spans,omitempty"`
}

type jsonPos struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (f *JSONFormatter) Format(buf []byte, result Result, multiFile bool) []byte {
	for _, rec := range result.Records {
		jr := jsonRecord{
			Source:  result.Source,
			LineNum: rec.Line.Num,
			Text:    string(rec.Line.Text),
		}
		if rec.Role == scan.RoleMatch {
			jr.Type = "match"
		} else {
			jr.Type = "context"
		}
		if len(rec.Spans) > 0 {
			jr.Spans = make([]jsonPos, len(rec.Spans))
			for i, span := range rec.Spans {
				jr.Spans[i] = jsonPos{Start: span[0], End: span[1]}
			}
		}
		data, _ := json.Marshal(jr)
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}
	return buf
}

var _ Formatter = (*JSONFormatter)(nil)
