// pkg/pipeline/publish.go
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

// publish replaces dest with src. The old artifact is removed first; a crash
// in between leaves no artifact rather than a stale one.
func (p *Pipeline) publish(src, dest string) error {
	p.logger.Printf("Step 6: Publishing %s", dest)

	if fi, err := os.Lstat(dest); err == nil {
		if fi.IsDir() {
			return core.Errorf("publish", core.ErrConfiguration, "%s is a directory", dest)
		}
		if p.cfg.DryRun {
			p.dry.Printf("unlinking %s", dest)
		} else if err := os.Remove(dest); err != nil {
			return fmt.Errorf("removing %s: %w", dest, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", dest, err)
	}

	if p.cfg.DryRun {
		p.dry.Printf("Copying %s to %s", src, dest)
		return nil
	}
	return copyFile(src, dest)
}

// copyFile copies src to dst keeping its mode and modification time
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return fmt.Errorf("chtimes %s: %w", dst, err)
	}
	return nil
}
