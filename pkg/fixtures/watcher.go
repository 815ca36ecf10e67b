package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/taxid/pkg/taxid"
)

// LineResult pairs one line of a watched identifier file with its validation
// outcome. Line numbers are 1-based and count every line, including skipped
// blanks and comments.
type LineResult struct {
	Line   int                    `json:"line"`
	Value  string                 `json:"value"`
	Result taxid.ValidationResult `json:"result"`
}

// Watcher revalidates a file of identifiers (one per line, # comments and
// blank lines ignored) every time it is written, reporting results through a
// callback. It backs the CLI's watch command for iterating on seed files.
type Watcher struct {
	kind      taxid.Kind
	path      string
	onResults func([]LineResult)

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the given identifier kind and file.
func NewWatcher(kind taxid.Kind, path string, onResults func([]LineResult)) (*Watcher, error) {
	if _, ok := taxid.DefaultRegistry().Get(kind); !ok {
		return nil, fmt.Errorf("unknown identifier kind %q", kind)
	}
	if onResults == nil {
		return nil, fmt.Errorf("results callback cannot be nil")
	}
	return &Watcher{kind: kind, path: path, onResults: onResults}, nil
}

// CheckFile validates the watched file once and returns the per-line results.
func (w *Watcher) CheckFile() ([]LineResult, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	var results []LineResult
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		result, err := taxid.Validate(w.kind, trimmed)
		if err != nil {
			return nil, err
		}
		results = append(results, LineResult{Line: i + 1, Value: trimmed, Result: result})
	}
	return results, nil
}

// Start validates the file once, reports the results, and begins watching
// for writes. The parent directory is watched so that editors replacing the
// file by rename keep triggering revalidation.
func (w *Watcher) Start() error {
	results, err := w.CheckFile()
	if err != nil {
		return err
	}
	w.onResults(results)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.watcher = watcher
	w.stopChan = make(chan struct{})

	go w.watchLoop(watcher, w.stopChan)

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", filepath.Dir(w.path), err)
	}
	return nil
}

// Stop ends watching. Safe to call when Start was never called.
func (w *Watcher) Stop() {
	if w.stopChan != nil {
		close(w.stopChan)
		w.stopChan = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
}

func (w *Watcher) watchLoop(watcher *fsnotify.Watcher, stopChan chan struct{}) {
	for {
		select {
		case <-stopChan:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			results, err := w.CheckFile()
			if err != nil {
				continue
			}
			w.onResults(results)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
