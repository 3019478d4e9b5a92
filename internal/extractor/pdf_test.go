package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadable(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name:  "plain statement text",
			pages: []string{"Mar 02 POS Grocery Mart 45.67 1000.00\nMar 03 Payroll Deposit 2000.00 2954.33"},
			want:  true,
		},
		{
			name:  "too short",
			pages: []string{"Mar 02"},
			want:  false,
		},
		{
			name:  "empty pages",
			pages: []string{"", ""},
			want:  false,
		},
		{
			name:  "identity encoded garbage",
			pages: []string{strings.Repeat("þàñãüå", 20)},
			want:  false,
		},
		{
			name: "mostly garbage with a little text",
			pages: []string{
				"Mar 02 " + strings.Repeat("þàñ", 30),
			},
			want: false,
		},
		{
			name:  "currency and punctuation count as text",
			pages: []string{strings.Repeat("$1,234.56 (USD) @ 4.5% -- ok! ", 5)},
			want:  true,
		},
		{
			name:  "spread across pages",
			pages: []string{"Mar 02 Grocery 45.67", "Mar 03 Coffee 5.25", "Mar 04 Transit 3.10"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Readable(tt.pages); got != tt.want {
				t.Errorf("Readable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractPages_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New().ExtractPages(path)
	if err == nil {
		t.Fatal("expected an error for a non-PDF file")
	}
}

func TestExtractPages_MissingFile(t *testing.T) {
	_, err := New().ExtractPages(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestExtractPages_TruncatedPDFDoesNotPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<"), 0o644); err != nil {
		t.Fatal(err)
	}

	// must come back as an error, not a panic from the pdf library
	_, err := New().ExtractPages(path)
	if err == nil {
		t.Fatal("expected an error for a truncated file")
	}
}
