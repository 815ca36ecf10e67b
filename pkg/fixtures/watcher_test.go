package fixtures

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolbeans/taxid/pkg/taxid"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

func TestNewWatcher(t *testing.T) {
	callback := func([]LineResult) {}

	if _, err := NewWatcher(taxid.KindGSTIN, "ids.txt", callback); err != nil {
		t.Errorf("NewWatcher failed: %v", err)
	}
	if _, err := NewWatcher("ssn", "ids.txt", callback); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := NewWatcher(taxid.KindGSTIN, "ids.txt", nil); err == nil {
		t.Error("expected error for nil callback")
	}
}

func TestCheckFile(t *testing.T) {
	path := writeSeedFile(t, `# seed registrations
27AAPFU0939F1ZV

27AAPFU0939F1ZX
  29AAPFU0939F1ZR
`)

	watcher, err := NewWatcher(taxid.KindGSTIN, path, func([]LineResult) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	results, err := watcher.CheckFile()
	if err != nil {
		t.Fatalf("CheckFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (comments and blanks skipped)", len(results))
	}
	if results[0].Line != 2 || !results[0].Result.Valid {
		t.Errorf("results[0] = line %d valid %v, want line 2 valid", results[0].Line, results[0].Result.Valid)
	}
	if results[1].Line != 4 || results[1].Result.Valid {
		t.Errorf("results[1] = line %d valid %v, want line 4 invalid", results[1].Line, results[1].Result.Valid)
	}
	if results[1].Result.Err.Kind != taxid.ErrInvalidCheck {
		t.Errorf("results[1] error kind = %s, want %s", results[1].Result.Err.Kind, taxid.ErrInvalidCheck)
	}
	if results[2].Line != 5 || results[2].Value != "29AAPFU0939F1ZR" {
		t.Errorf("results[2] = %+v, want trimmed line 5 value", results[2])
	}
}

func TestCheckFileMissing(t *testing.T) {
	watcher, err := NewWatcher(taxid.KindGSTIN, filepath.Join(t.TempDir(), "absent.txt"), func([]LineResult) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if _, err := watcher.CheckFile(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcherStartReportsInitialResults(t *testing.T) {
	path := writeSeedFile(t, "27AAPFU0939F1ZV\n")

	resultsChan := make(chan []LineResult, 4)
	watcher, err := NewWatcher(taxid.KindGSTIN, path, func(results []LineResult) {
		resultsChan <- results
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	select {
	case results := <-resultsChan:
		if len(results) != 1 || !results[0].Result.Valid {
			t.Errorf("initial results = %+v, want one valid line", results)
		}
	default:
		t.Fatal("Start did not report initial results synchronously")
	}
}

func TestWatcherReactsToWrites(t *testing.T) {
	path := writeSeedFile(t, "27AAPFU0939F1ZV\n")

	resultsChan := make(chan []LineResult, 4)
	watcher, err := NewWatcher(taxid.KindGSTIN, path, func(results []LineResult) {
		resultsChan <- results
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	<-resultsChan // initial report

	if err := os.WriteFile(path, []byte("27AAPFU0939F1ZV\n27AAPFU0939F1ZX\n"), 0644); err != nil {
		t.Fatalf("rewriting seed file: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case results := <-resultsChan:
			// Editors may produce several events per save; wait for the
			// report that reflects the new content.
			if len(results) == 2 {
				if results[0].Result.Valid && !results[1].Result.Valid {
					return
				}
				t.Fatalf("unexpected results after rewrite: %+v", results)
			}
		case <-deadline:
			t.Fatal("no revalidation within 5s of rewriting the file")
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	watcher, err := NewWatcher(taxid.KindGSTIN, "ids.txt", func([]LineResult) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	watcher.Stop()
	watcher.Stop()
}
