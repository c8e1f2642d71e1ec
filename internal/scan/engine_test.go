package scan

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dl/linegrep/internal/matcher"
)

func mustMatcher(t *testing.T, pattern string) matcher.Matcher {
	t.Helper()
	m, err := matcher.New([]string{pattern}, matcher.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func collect(t *testing.T, input string, cfg Config) []Record {
	t.Helper()
	recs, err := New("test", strings.NewReader(input), cfg).Collect()
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	return recs
}

func TestEngine_MatchesOnly(t *testing.T) {
	input := "apple\nbanana\ncherry\ndate\n"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "an")})

	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Line.Num != 2 || string(r.Line.Text) != "banana" || r.Role != RoleMatch {
		t.Errorf("record = line %d %q role %v", r.Line.Num, r.Line.Text, r.Role)
	}
	if len(r.Spans) != 2 {
		t.Errorf("got %d spans, want 2", len(r.Spans))
	}
}

func TestEngine_ContextBefore(t *testing.T) {
	// From lines [apple banana cherry date], pattern "an", before=1:
	// apple as context, banana as match, nothing else.
	input := "apple\nbanana\ncherry\ndate\n"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "an"), Before: 1})

	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Line.Num != 1 || recs[0].Role != RoleContextBefore {
		t.Errorf("recs[0] = line %d role %v, want line 1 context-before", recs[0].Line.Num, recs[0].Role)
	}
	if recs[1].Line.Num != 2 || recs[1].Role != RoleMatch {
		t.Errorf("recs[1] = line %d role %v, want line 2 match", recs[1].Line.Num, recs[1].Role)
	}
}

func TestEngine_ContextAfter(t *testing.T) {
	input := "match here\nafter1\nafter2\nfar away\n"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "match"), After: 2})

	wantRoles := []Role{RoleMatch, RoleContextAfter, RoleContextAfter}
	if len(recs) != len(wantRoles) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantRoles))
	}
	for i, want := range wantRoles {
		if recs[i].Role != want {
			t.Errorf("recs[%d].Role = %v, want %v", i, recs[i].Role, want)
		}
		if recs[i].Line.Num != i+1 {
			t.Errorf("recs[%d].Line.Num = %d, want %d", i, recs[i].Line.Num, i+1)
		}
	}
}

func TestEngine_Invert(t *testing.T) {
	input := "apple\nbanana\ncherry\ndate\n"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "a"), Invert: true})

	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if string(r.Line.Text) != "cherry" || r.Role != RoleMatch {
		t.Errorf("record = %q role %v, want cherry match", r.Line.Text, r.Role)
	}
	if r.Spans != nil {
		t.Errorf("inverted match has spans %v, want none", r.Spans)
	}
}

func TestEngine_OverlappingWindowsMerge(t *testing.T) {
	// Matches on lines 4 and 5 with context 2: one block from line 2
	// through line 7, each line exactly once.
	var lines []string
	for i := 1; i <= 9; i++ {
		lines = append(lines, "filler")
	}
	lines[3] = "match one"
	lines[4] = "match two"
	input := strings.Join(lines, "\n") + "\n"

	recs := collect(t, input, Config{Matcher: mustMatcher(t, "match"), Before: 2, After: 2})

	wantNums := []int{2, 3, 4, 5, 6, 7}
	if len(recs) != len(wantNums) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantNums))
	}
	for i, want := range wantNums {
		if recs[i].Line.Num != want {
			t.Errorf("recs[%d].Line.Num = %d, want %d", i, recs[i].Line.Num, want)
		}
	}
	wantRoles := []Role{RoleContextBefore, RoleContextBefore, RoleMatch, RoleMatch, RoleContextAfter, RoleContextAfter}
	for i, want := range wantRoles {
		if recs[i].Role != want {
			t.Errorf("recs[%d].Role = %v, want %v", i, recs[i].Role, want)
		}
	}
}

func TestEngine_AfterContextCanPrecedeNextWindow(t *testing.T) {
	// Matches on lines 1 and 5, before=2 after=1: lines 1,2 from the
	// first window, then 3,4 as before-context of the second.
	input := "hit\nb\nc\nd\nhit\nf\n"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "hit"), Before: 2, After: 1})

	wantNums := []int{1, 2, 3, 4, 5, 6}
	if len(recs) != len(wantNums) {
		t.Fatalf("got %d records, want %d: %+v", len(recs), len(wantNums), recs)
	}
	for i, want := range wantNums {
		if recs[i].Line.Num != want {
			t.Errorf("recs[%d].Line.Num = %d, want %d", i, recs[i].Line.Num, want)
		}
	}
}

func TestEngine_StrictlyIncreasingNoDuplicates(t *testing.T) {
	input := strings.Repeat("yes\nno\n", 50)
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "yes"), Before: 3, After: 3})

	prev := 0
	for i, r := range recs {
		if r.Line.Num <= prev {
			t.Fatalf("recs[%d].Line.Num = %d not greater than previous %d", i, r.Line.Num, prev)
		}
		prev = r.Line.Num
	}
}

func TestEngine_Idempotent(t *testing.T) {
	input := "aa\nbb\ncc aa\ndd\nee\naa\n"
	cfg := Config{Matcher: mustMatcher(t, "aa"), Before: 1, After: 1}

	first := collect(t, input, cfg)
	second := collect(t, input, cfg)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Line.Num != second[i].Line.Num ||
			string(first[i].Line.Text) != string(second[i].Line.Text) ||
			first[i].Role != second[i].Role {
			t.Errorf("record %d differs between runs", i)
		}
	}
}

func TestEngine_MatchEveryLineRoundTrip(t *testing.T) {
	input := "one\ntwo\nthree"
	recs := collect(t, input, Config{Matcher: mustMatcher(t, "")})

	var out []string
	for _, r := range recs {
		if r.Role != RoleMatch {
			t.Fatalf("unexpected role %v", r.Role)
		}
		out = append(out, string(r.Line.Text))
	}
	if got := strings.Join(out, "\n"); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	e := New("empty", strings.NewReader(""), Config{Matcher: mustMatcher(t, "x")})
	recs, err := e.Collect()
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
	if e.HadMatch() {
		t.Error("HadMatch() = true for empty input")
	}
}

func TestEngine_HadMatch(t *testing.T) {
	e := New("t", strings.NewReader("hay\nneedle\n"), Config{Matcher: mustMatcher(t, "needle")})
	if _, err := e.Collect(); err != nil {
		t.Fatal(err)
	}
	if !e.HadMatch() {
		t.Error("HadMatch() = false, want true")
	}
}

func TestEngine_IOError(t *testing.T) {
	wantErr := errors.New("broken pipe")
	r := &failingReader{data: []byte("needle\nmore"), err: wantErr}
	e := New("src", r, Config{Matcher: mustMatcher(t, "needle")})

	recs, err := e.Collect()
	if len(recs) != 1 {
		t.Fatalf("got %d records before failure, want 1", len(recs))
	}

	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("error = %T (%v), want *IOError", err, err)
	}
	if ioe.Source != "src" {
		t.Errorf("Source = %q, want %q", ioe.Source, "src")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error does not wrap the cause: %v", err)
	}
}

func TestEngine_AbandonEarly(t *testing.T) {
	// The caller may stop pulling at any time; already-produced records
	// stay consistent.
	input := strings.Repeat("match\n", 1000)
	e := New("t", strings.NewReader(input), Config{Matcher: mustMatcher(t, "match")})

	rec, err := e.Next()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Line.Num != 1 {
		t.Errorf("first record line = %d, want 1", rec.Line.Num)
	}
	// Abandon: no further Next calls. Nothing to assert beyond no panic,
	// the engine owns no resources.
	_ = e
}

func TestEngine_NoContextBleedBetweenEngines(t *testing.T) {
	cfg := Config{Matcher: mustMatcher(t, "zz"), Before: 2}

	// First source ends with unconsumed ring content.
	if _, err := New("a", strings.NewReader("one\ntwo\n"), cfg).Collect(); err != nil {
		t.Fatal(err)
	}

	// A fresh engine must not see the previous source's lines.
	recs, err := New("b", strings.NewReader("zz\n"), cfg).Collect()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Line.Num != 1 {
		t.Fatalf("got %+v, want single match at line 1", recs)
	}
}

func TestEngine_EOFIsSticky(t *testing.T) {
	e := New("t", strings.NewReader("x\n"), Config{Matcher: mustMatcher(t, "x")})
	if _, err := e.Next(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := e.Next(); err != io.EOF {
			t.Fatalf("Next() = %v, want io.EOF", err)
		}
	}
}
