package pool

import "strings"

const (
	tarSuffix     = ".tar.gz"
	packagePrefix = "mint-backgrounds-"
)

// ExtractVersionInfo derives the package name and version from a tarball
// filename:
//
//	mint-backgrounds-nadia_1.4.tar.gz       -> ("nadia", "1.4")
//	mint-backgrounds-xfce_2012.06.21.tar.gz -> ("xfce", "2012.06.21")
//
// Filenames without an underscore after prefix stripping yield the version
// "unknown". The same filename always yields the same result.
func ExtractVersionInfo(filename string) (name, version string) {
	base := strings.TrimSuffix(filename, tarSuffix)
	base = strings.TrimPrefix(base, packagePrefix)

	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i], base[i+1:]
	}
	return base, "unknown"
}

// NormalizePackageName merges "-extra" companion packages with their base
// package so their assets land in one output directory:
//
//	xfce-extra -> xfce
//	xfce       -> xfce
//
// Dedupe keys always use the raw, un-normalized name; normalization is for
// the output directory only.
func NormalizePackageName(name string) string {
	return strings.ReplaceAll(name, "-extra", "")
}

// VersionKey builds the composite inventory key for a package release.
func VersionKey(name, version string) string {
	return name + "_" + version
}

// KeyPackageName returns the package-name part of a version key, the text
// before the first underscore.
func KeyPackageName(key string) string {
	name, _ := ExtractVersionInfo(key)
	return name
}
