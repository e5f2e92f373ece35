package declaration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Result is the outcome of loading a declarations directory. Documents holds
// every file that parsed; Failures holds the files that did not.
type Result struct {
	Documents []*Document
	Failures  []*ParseError
}

// Err joins all parse failures, or returns nil when every file parsed.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure)
	}
	return errors.Join(errs...)
}

// LoadDir loads every declaration file found directly inside dir.
func LoadDir(dir string) (Result, error) {
	result, err := Load(os.DirFS(dir))
	if err != nil {
		return Result{}, fmt.Errorf("routes directory %q: %w", dir, err)
	}
	return result, nil
}

// Load reads the declaration files at the root of fsys. Entries are visited
// in lexical file-name order (fs.ReadDir sorts them), so the resulting
// document order is the same on every platform. A malformed document is
// recorded in Result.Failures and does not stop the remaining files from
// loading; an unreadable directory or file is returned as an error wrapping
// ErrIO.
func Load(fsys fs.FS) (Result, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var result Result
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != Extension {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
		}

		doc, err := Parse(entry.Name(), data)
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				result.Failures = append(result.Failures, parseErr)
				continue
			}
			return Result{}, err
		}
		result.Documents = append(result.Documents, doc)
	}

	return result, nil
}
