// Package pool scrapes a package pool's directory-index pages.
//
// The pool (packages.linuxmint.com/pool/main/m) serves one directory per
// package family, each listing release tarballs with human-readable sizes.
// This package provides:
//
//   - [Client]: rate-limited, retried HTTP fetching with a uniform
//     empty-string failure sentinel
//   - [ParseDirectories] / [ParseTarballs] / [ParseSize]: lenient regex
//     extraction over the listing HTML
//   - [ExtractVersionInfo] / [NormalizePackageName] / [VersionKey]: stable
//     (package, version) keys derived from tarball filenames
//
// The scraping side is deliberately isolated here so the matching strategy
// can change without touching the update pipeline.
package pool
