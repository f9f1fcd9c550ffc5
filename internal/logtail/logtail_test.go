package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dex.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"info","ts":"2026-10-19T10:00:0%d.000Z","msg":"line %d"}`, i%10, i))
	}
	path := writeLog(t, lines)

	tests := []struct {
		name     string
		max      int
		wantLen  int
		wantHead string
	}{
		{"read all (0)", 0, 10, "line 1"},
		{"read all (negative)", -1, 10, "line 1"},
		{"read partial (5)", 5, 5, "line 6"},
		{"read exactly all (10)", 10, 10, "line 1"},
		{"read more than exists (20)", 20, 10, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.max)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("Read() len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0].Message != tt.wantHead {
				t.Fatalf("first message = %q, want %q", got[0].Message, tt.wantHead)
			}
			if got[len(got)-1].Message != "line 10" {
				t.Fatalf("last message = %q, want line 10", got[len(got)-1].Message)
			}
		})
	}
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read missing = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLine_ZapJSON(t *testing.T) {
	e := ParseLine(`{"level":"warn","ts":"2026-10-19T10:11:12.345+0200","caller":"state/controller.go:240","msg":"fetch failed","screen":"list","failures":2,"error":"execute request: timeout"}`)
	if e.Level != "warn" || e.Message != "fetch failed" {
		t.Fatalf("entry = %#v", e)
	}
	if e.Time.IsZero() || e.Time.Second() != 12 {
		t.Fatalf("Time = %v, want parsed timestamp", e.Time)
	}
	if _, ok := e.Fields["caller"]; ok {
		t.Fatalf("caller should not be kept as a field")
	}
	got := e.String()
	want := "WARN fetch failed error=execute request: timeout failures=2 screen=list"
	if !strings.HasSuffix(got, want) {
		t.Fatalf("String() = %q, want suffix %q", got, want)
	}
}

func TestParseLine_PlainText(t *testing.T) {
	e := ParseLine("panic: something odd")
	if e.Raw != "panic: something odd" || e.Message != e.Raw {
		t.Fatalf("entry = %#v, want raw line", e)
	}
	if e.String() != e.Raw {
		t.Fatalf("String() = %q, want raw", e.String())
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	path := writeLog(t, []string{`{"level":"info","msg":"a"}`, "", "   ", `{"level":"info","msg":"b"}`})
	got, err := Read(path, 0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "b" {
		t.Fatalf("Read() = %#v, want a and b", got)
	}
}

func TestRead_BlankLinesDoNotCountTowardLimit(t *testing.T) {
	path := writeLog(t, []string{
		`{"level":"info","msg":"a"}`,
		`{"level":"info","msg":"b"}`,
		`{"level":"info","msg":"c"}`,
		"", "", "",
	})
	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[0].Message != "b" || got[1].Message != "c" {
		t.Fatalf("Read() = %#v, want b and c", got)
	}
}

func TestRead_EmptyFileIsNil(t *testing.T) {
	path := writeLog(t, []string{"", "  "})
	got, err := Read(path, 5)
	if err != nil || got != nil {
		t.Fatalf("Read empty = %v, %v; want nil, nil", got, err)
	}
}
