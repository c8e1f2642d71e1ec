package output

import (
	"strconv"

	"github.com/dl/linegrep/internal/scan"
)

// TextFormatter renders results as grep-style text: optional source and
// line-number prefixes, ":" separators for matches and "-" for context,
// "--" group separators between non-contiguous blocks, and optional
// match highlighting.
type TextFormatter struct {
	styles      Styles
	lineNumbers bool
	countOnly   bool
	filesOnly   bool
	useColor    bool
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles, lineNumbers, countOnly, filesOnly, useColor bool) *TextFormatter {
	return &TextFormatter{
		styles:      styles,
		lineNumbers: lineNumbers,
		countOnly:   countOnly,
		filesOnly:   filesOnly,
		useColor:    useColor,
	}
}

func (f *TextFormatter) Format(buf []byte, result Result, multiFile bool) []byte {
	if f.filesOnly {
		if result.HasMatch() {
			buf = append(buf, result.Source...)
			buf = append(buf, '\n')
		}
		return buf
	}

	if f.countOnly {
		if multiFile {
			buf = append(buf, result.Source...)
			buf = append(buf, ':')
		}
		buf = strconv.AppendInt(buf, int64(result.MatchCount()), 10)
		buf = append(buf, '\n')
		return buf
	}

	lastNum := 0
	for _, rec := range result.Records {
		if lastNum > 0 && rec.Line.Num > lastNum+1 {
			buf = append(buf, "--\n"...)
		}
		buf = f.formatLine(buf, result.Source, rec, multiFile)
		lastNum = rec.Line.Num
	}
	return buf
}

func (f *TextFormatter) formatLine(buf []byte, source string, rec scan.Record, multiFile bool) []byte {
	sep := ":"
	if rec.Role != scan.RoleMatch {
		sep = "-"
	}

	if multiFile {
		if f.useColor {
			buf = append(buf, f.styles.Source.Render(source)...)
			buf = append(buf, f.styles.Separator.Render(sep)...)
		} else {
			buf = append(buf, source...)
			buf = append(buf, sep...)
		}
	}

	if f.lineNumbers {
		num := strconv.Itoa(rec.Line.Num)
		if f.useColor {
			buf = append(buf, f.styles.LineNum.Render(num)...)
			buf = append(buf, f.styles.Separator.Render(sep)...)
		} else {
			buf = append(buf, num...)
			buf = append(buf, sep...)
		}
	}

	if f.useColor && len(rec.Spans) > 0 {
		buf = f.highlight(buf, rec.Line.Text, rec.Spans)
	} else {
		buf = append(buf, rec.Line.Text...)
	}

	buf = append(buf, '\n')
	return buf
}

func (f *TextFormatter) highlight(buf []byte, line []byte, spans [][2]int) []byte {
	prev := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		if start > len(line) {
			break
		}
		if end > len(line) {
			end = len(line)
		}
		if start > prev {
			buf = append(buf, line[prev:start]...)
		}
		buf = append(buf, f.styles.Match.Render(string(line[start:end]))...)
		prev = end
	}
	if prev < len(line) {
		buf = append(buf, line[prev:]...)
	}
	return buf
}
