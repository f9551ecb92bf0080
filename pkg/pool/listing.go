package pool

import (
	"regexp"
	"sort"
	"strconv"
)

// The pool serves plain directory-index HTML whose format is not
// contractually stable, so entries are extracted with lenient pattern
// matching rather than a strict HTML parser.
var (
	directoryRE = regexp.MustCompile(`href="(mint-backgrounds-[^"]+)/"`)
	tarballRE   = regexp.MustCompile(`href="([^"]+\.tar\.gz)"`)
	sizeRE      = regexp.MustCompile(`^([0-9.]+)([KMG])`)
)

// Tarball describes one release archive discovered in a directory listing.
type Tarball struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
	SizeStr   string `json:"size_str"`
}

// ParseDirectories extracts the mint-backgrounds-* directory names linked
// from a pool index page. The result is deduplicated and sorted; malformed
// content yields an empty slice, never an error.
func ParseDirectories(page string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, m := range directoryRE.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			dirs = append(dirs, m[1])
		}
	}
	sort.Strings(dirs)
	return dirs
}

// ParseTarballs extracts the .tar.gz entries from one directory's listing
// page. For each unique filename the surrounding text is searched for a
// trailing size token like "16.5M"; entries without one default to "0M".
//
// The size search scans all page text after the first filename occurrence
// with no anchor to the next link boundary, so a token belonging to a later
// entry can be picked up when entries sit close together. Known fragility,
// kept deliberately.
func ParseTarballs(page, baseURL, dir string) []Tarball {
	seen := make(map[string]bool)
	var names []string
	for _, m := range tarballRE.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)

	tarballs := make([]Tarball, 0, len(names))
	for _, name := range names {
		sizeStr := "0M"
		re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(name) + `.*?([0-9.]+[KMG])`)
		if m := re.FindStringSubmatch(page); m != nil {
			sizeStr = m[1]
		}
		tarballs = append(tarballs, Tarball{
			Name:      name,
			URL:       baseURL + "/" + dir + "/" + name,
			SizeBytes: ParseSize(sizeStr),
			SizeStr:   sizeStr,
		})
	}
	return tarballs
}

// ParseSize converts a size token like "16.5M" or "500K" to bytes using
// K=1024, M=1024^2 and G=1024^3. Unrecognized units fall back to a
// multiplier of 1; unparseable input yields 0.
func ParseSize(s string) int64 {
	m := sizeRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	multipliers := map[string]int64{"K": 1024, "M": 1024 * 1024, "G": 1024 * 1024 * 1024}
	mult, ok := multipliers[m[2]]
	if !ok {
		mult = 1
	}
	return int64(value * float64(mult))
}
