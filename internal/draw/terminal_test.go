package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffsetAndFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[2;3Hhi" {
		t.Errorf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after Flush")
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	payload := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(payload)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != payload {
		t.Error("chunked flush corrupted payload")
	}
}

func TestFit(t *testing.T) {
	w, h, col, row := Fit(300, 50, 240, 80)
	if w != 240 || h != 50 || col != 30 || row != 0 {
		t.Errorf("Fit = %d,%d,%d,%d", w, h, col, row)
	}
}

func TestTextHelpers(t *testing.T) {
	if got := Width("Selçuk"); got != 6 {
		t.Errorf("Width = %d, want 6", got)
	}
	if got := Truncate("milestone", 5); Width(got) > 5 {
		t.Errorf("Truncate too wide: %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	lines := Wrap("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("Wrap = %q, want %q", lines, want)
	}
	for in, want := range map[float64]rune{-1: BlockEmpty, 0.3: BlockLight, 0.5: BlockMedium, 0.9: BlockDark, 2: BlockFull} {
		if got := ShadeLevel(in); got != want {
			t.Errorf("ShadeLevel(%v) = %q, want %q", in, got, want)
		}
	}
}
