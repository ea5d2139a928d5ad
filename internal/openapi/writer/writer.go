package writer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// Writer implements pkgopenapi.Writer with temp-file-and-rename writes so a
// destination is either fully replaced or left untouched.
type Writer struct {
	overwrite bool
	confirm   pkgopenapi.ConfirmFunc
	mode      fs.FileMode
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Writer = (*Writer)(nil)

// New constructs a Writer from pre-resolved options.
func New(options pkgopenapi.WriterOptions) pkgopenapi.Writer {
	mode := options.FileMode
	if mode == 0 {
		mode = 0o644
	}
	return &Writer{
		overwrite: options.Overwrite,
		confirm:   options.Confirm,
		mode:      mode,
	}
}

// Write persists doc at path.
func (w *Writer) Write(ctx context.Context, path string, doc pkgopenapi.Document) error {
	if path == "" {
		return errors.New("openapi writer: destination path is required")
	}
	if doc.Len() == 0 {
		return errors.New("openapi writer: document is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("openapi writer: %s is a directory", path)
		}
		if err := w.allowReplace(ctx, path); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("openapi writer: stat %s: %w", path, err)
	}

	if err := writeFile(path, doc.Raw(), w.mode); err != nil {
		return fmt.Errorf("openapi writer: %s: %w", path, err)
	}
	return nil
}

func (w *Writer) allowReplace(ctx context.Context, path string) error {
	if w.confirm != nil {
		ok, err := w.confirm(ctx, path)
		if err != nil {
			return fmt.Errorf("openapi writer: confirm %s: %w", path, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", pkgopenapi.ErrWriteDeclined, path)
		}
		return nil
	}
	if !w.overwrite {
		return fmt.Errorf("%w: %s", pkgopenapi.ErrOutputExists, path)
	}
	return nil
}

func writeFile(path string, data []byte, mode fs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(name)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}
