// Package archive downloads release tarballs and extracts their image
// assets into the output directory tree.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"

	"github.com/392781/mint-backgrounds/pkg/inventory"
	"github.com/392781/mint-backgrounds/pkg/pool"
)

// Downloader streams one tarball. Satisfied by [pool.Client].
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// Processor turns one remote tarball into copied image assets under the
// output directory. All work happens in a self-cleaning temp workspace;
// any failure is reported as an error for that package only and never
// leaves partial temp state behind.
type Processor struct {
	dl       Downloader
	logger   *log.Logger
	progress bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithProgress toggles the terminal download progress bar.
func WithProgress(enabled bool) Option {
	return func(p *Processor) { p.progress = enabled }
}

// NewProcessor creates a processor using dl for tarball downloads.
// A nil logger falls back to log.Default().
func NewProcessor(dl Downloader, logger *log.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = log.Default()
	}
	p := &Processor{dl: dl, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process downloads tb, extracts it and copies its assets into
// outputBase/<normalized package name>:
//
//   - image files (jpg/jpeg/png/svg) are copied under their own name,
//     overwriting earlier extractions, unless the lowercased name contains
//     "screenshot"
//   - files whose lowercased name contains "credits" are copied as
//     Credits_<raw package name>, last one wins
//   - symlinks are never followed or copied
//   - everything else is ignored
func (p *Processor) Process(ctx context.Context, tb pool.Tarball, outputBase string) (err error) {
	packageName, _ := pool.ExtractVersionInfo(tb.Name)
	destDir := filepath.Join(outputBase, pool.NormalizePackageName(packageName))

	tmpDir, err := os.MkdirTemp("", "mint-backgrounds-")
	if err != nil {
		return fmt.Errorf("temp workspace: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	p.logger.Info("downloading tarball", "name", tb.Name, "size", tb.SizeStr)

	tarballPath := filepath.Join(tmpDir, tb.Name)
	if err := p.download(ctx, tb, tarballPath); err != nil {
		return fmt.Errorf("download %s: %w", tb.Name, err)
	}

	extractDir := filepath.Join(tmpDir, "extracted")
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return err
	}
	if err := extractTarGz(tarballPath, extractDir); err != nil {
		return fmt.Errorf("extract %s: %w", tb.Name, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	if err := copyAssets(extractDir, destDir, packageName); err != nil {
		return fmt.Errorf("copy assets from %s: %w", tb.Name, err)
	}

	p.logger.Info("extracted assets", "name", tb.Name, "dest", destDir)
	return nil
}

func (p *Processor) download(ctx context.Context, tb pool.Tarball, dest string) error {
	body, size, err := p.dl.Download(ctx, tb.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if p.progress && size > 0 {
		bar := progressbar.DefaultBytes(size, tb.Name)
		defer bar.Finish()
		w = io.MultiWriter(f, bar)
	}
	_, err = io.Copy(w, body)
	return err
}

// extractTarGz unpacks a gzip-compressed tarball into destDir. Entry names
// are never used as destination paths directly: each one is re-rooted under
// destDir and entries resolving outside it are dropped. Symlink entries are
// recreated but never followed; the later classification walk skips them.
func extractTarGz(src, destDir string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}

		target := filepath.Join(destDir, filepath.Clean("/"+hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(filepath.Separator)) &&
			target != filepath.Clean(destDir) {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
				return err
			}
		}
	}
	return nil
}

// copyAssets walks the extracted tree and copies image and credits files
// into destDir, flattening any directory structure.
func copyAssets(extractDir, destDir, packageName string) error {
	return filepath.WalkDir(extractDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		lower := strings.ToLower(d.Name())
		switch {
		case inventory.IsImage(lower) && !strings.Contains(lower, "screenshot"):
			return copyFile(path, filepath.Join(destDir, d.Name()))
		case strings.Contains(lower, "credits"):
			return copyFile(path, filepath.Join(destDir, "Credits_"+packageName))
		}
		return nil
	})
}

// copyFile copies src to dst, preserving mode and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
