package source

import (
	"testing"
)

type lineColResult struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]lineColResult{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-1, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"usage: prog\n  prog run NAME\n": {
			{0, 1, 1},
			{7, 1, 8},
			{11, 1, 12},
			{12, 2, 1},
			{14, 2, 3},
			{25, 2, 14},
			{27, 2, 16},
			{28, 3, 1},
		},
	}

	for text, results := range samples {
		src := New("usage", []byte(text))
		for _, res := range results {
			l, c := src.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q, pos %d: expected %d:%d, got %d:%d", text, res.pos, res.line, res.col, l, c)
			}
		}
	}
}

func TestPos(t *testing.T) {
	src := New("usage", []byte("prog -a\nprog -b\n"))
	p := NewPos(src, 13)
	if p.SourceName() != "usage" {
		t.Errorf("expected source name %q, got %q", "usage", p.SourceName())
	}
	if p.Pos() != 13 || p.Line() != 2 || p.Col() != 6 {
		t.Errorf("expected 13 at 2:6, got %d at %d:%d", p.Pos(), p.Line(), p.Col())
	}
	if p.Source() != src {
		t.Error("expected position to keep its source")
	}
}
