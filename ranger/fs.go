package ranger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/router"
)

// virtualFS implements fs.FS
type virtualFS struct {
	// The current working directory
	osDir fs.FS

	// Filesystem bundled with the binary; may be nil.
	pkgDir fs.FS
}

// Open opens the file matching the name using the following strategy:
// - check the OS filesystem
// - check the package-level virtual filesystem
func (vfs virtualFS) Open(name string) (fs.File, error) {
	file, err := vfs.osDir.Open(name)
	if err == nil {
		return file, nil
	}

	var pe *fs.PathError
	if !errors.As(err, &pe) || !(errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid)) {
		return nil, fmt.Errorf("%w: unable to open %s: %w", switchback.ErrUnexpected, name, err)
	}

	if vfs.pkgDir == nil {
		return nil, fmt.Errorf("%w: %s", switchback.ErrNotExist, name)
	}

	file, err = vfs.pkgDir.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", switchback.ErrNotExist, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open %s: %w", switchback.ErrUnexpected, name, err)
	}

	return file, nil
}

// OpenRouteTable loads and validates the route table name.
// A file of that name in the working directory overrides the one in fallback,
// which may be nil.
func OpenRouteTable(name string, fallback fs.FS) (*router.Table, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: route table path %q", switchback.ErrNotValid, name)
	}

	f, err := virtualFS{osDir: os.DirFS("."), pkgDir: fallback}.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := router.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("route table %s: %w", name, err)
	}

	return t, nil
}
