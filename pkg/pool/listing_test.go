package pool

import (
	"reflect"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"16.5M", 17301504}, // 16.5 * 1024^2
		{"500K", 512000},
		{"2G", 2147483648},
		{"0M", 0},
		{"", 0},
		{"garbage", 0},
		{"12", 0},    // bare number, no unit token
		{"M12", 0},   // unit before number
		{"3.5K", 3584},
	}

	for _, tt := range tests {
		if got := ParseSize(tt.in); got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDirectories(t *testing.T) {
	page := `<html><body>
<a href="../">Parent Directory</a>
<a href="mint-backgrounds-sarah/">mint-backgrounds-sarah/</a> 12-Jun-2016
<a href="mint-backgrounds-nadia/">mint-backgrounds-nadia/</a> 20-Nov-2012
<a href="mint-backgrounds-nadia/">mint-backgrounds-nadia/</a> duplicate row
<a href="mint-artwork/">mint-artwork/</a> not a backgrounds package
</body></html>`

	got := ParseDirectories(page)
	want := []string{"mint-backgrounds-nadia", "mint-backgrounds-sarah"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseDirectories() = %v, want %v", got, want)
	}
}

func TestParseDirectoriesMalformedContent(t *testing.T) {
	if got := ParseDirectories("<<< not html at all"); len(got) != 0 {
		t.Errorf("ParseDirectories(garbage) = %v, want empty", got)
	}
	if got := ParseDirectories(""); len(got) != 0 {
		t.Errorf("ParseDirectories(\"\") = %v, want empty", got)
	}
}

func TestParseTarballs(t *testing.T) {
	page := `<a href="mint-backgrounds-nadia_1.4.tar.gz">mint-backgrounds-nadia_1.4.tar.gz</a>
20-Nov-2012 16:40  16.5M
<a href="mint-backgrounds-nadia_1.5.tar.gz">mint-backgrounds-nadia_1.5.tar.gz</a>
03-Dec-2012 09:12  17.2M`

	got := ParseTarballs(page, "http://pool.test/m", "mint-backgrounds-nadia")
	if len(got) != 2 {
		t.Fatalf("ParseTarballs() returned %d entries, want 2", len(got))
	}

	first := got[0]
	if first.Name != "mint-backgrounds-nadia_1.4.tar.gz" {
		t.Errorf("first entry name = %q", first.Name)
	}
	if first.URL != "http://pool.test/m/mint-backgrounds-nadia/mint-backgrounds-nadia_1.4.tar.gz" {
		t.Errorf("first entry url = %q", first.URL)
	}
	if first.SizeStr != "16.5M" || first.SizeBytes != 17301504 {
		t.Errorf("first entry size = %q/%d, want 16.5M/17301504", first.SizeStr, first.SizeBytes)
	}
	if got[1].SizeStr != "17.2M" {
		t.Errorf("second entry size = %q, want 17.2M", got[1].SizeStr)
	}
}

func TestParseTarballsMissingSizeDefaultsToZero(t *testing.T) {
	page := `<a href="mint-backgrounds-sarah_1.0.tar.gz">link</a> no size here`

	got := ParseTarballs(page, "http://pool.test/m", "mint-backgrounds-sarah")
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].SizeStr != "0M" || got[0].SizeBytes != 0 {
		t.Errorf("size = %q/%d, want 0M/0", got[0].SizeStr, got[0].SizeBytes)
	}
}

func TestParseTarballsDeduplicates(t *testing.T) {
	page := `<a href="mint-backgrounds-sarah_1.0.tar.gz">a</a> 15.0M
<a href="mint-backgrounds-sarah_1.0.tar.gz">same file again</a>`

	if got := ParseTarballs(page, "http://pool.test/m", "d"); len(got) != 1 {
		t.Errorf("got %d entries, want 1", len(got))
	}
}

// The size search scans all text after the filename with no boundary at the
// next link, so adjacent size-less entries pick up a later entry's token.
// This pins the known fragility rather than fixing it.
func TestParseTarballsSizeTokenCrossMatch(t *testing.T) {
	page := `<a href="mint-backgrounds-nadia_1.4.tar.gz">first, listed without size</a>
<a href="mint-backgrounds-nadia_1.5.tar.gz">second</a> 17.2M`

	got := ParseTarballs(page, "http://pool.test/m", "d")
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for _, tb := range got {
		if tb.SizeStr != "17.2M" {
			t.Errorf("%s size = %q, want the cross-matched 17.2M", tb.Name, tb.SizeStr)
		}
	}
}
