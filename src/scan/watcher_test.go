package scan_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ironsmile/aoede/src/scan"
)

const testQuietPeriod = 100 * time.Millisecond

// receiveSignal waits for a rescan signal for up to timeout.
func receiveSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// TestWatcherSignalsOnNewFile makes sure that creating a media file inside a
// watched library eventually causes exactly one rescan signal.
func TestWatcherSignalsOnNewFile(t *testing.T) {
	root := t.TempDir()
	appfs := afero.NewOsFs()

	w, err := scan.NewWatcher(appfs, []string{root}, testQuietPeriod)
	if err != nil {
		t.Fatalf("creating watcher: %s", err)
	}
	defer w.Close()

	mediaFile := filepath.Join(root, "01 new song.mp3")
	if err := os.WriteFile(mediaFile, []byte("media"), 0644); err != nil {
		t.Fatalf("writing media file: %s", err)
	}

	if !receiveSignal(t, w.Rescan(), 5*time.Second) {
		t.Fatalf("no rescan signal after a media file was created")
	}

	if receiveSignal(t, w.Rescan(), 3*testQuietPeriod) {
		t.Errorf("a single file creation produced more than one rescan signal")
	}
}

// TestWatcherDebouncesBursts writes a burst of media files and expects the
// quiet period to fold all their events into one signal.
func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	appfs := afero.NewOsFs()

	w, err := scan.NewWatcher(appfs, []string{root}, testQuietPeriod)
	if err != nil {
		t.Fatalf("creating watcher: %s", err)
	}
	defer w.Close()

	for _, name := range []string{"01.mp3", "02.mp3", "03.flac"} {
		err := os.WriteFile(filepath.Join(root, name), []byte("media"), 0644)
		if err != nil {
			t.Fatalf("writing %s: %s", name, err)
		}
	}

	if !receiveSignal(t, w.Rescan(), 5*time.Second) {
		t.Fatalf("no rescan signal after media files were created")
	}

	if receiveSignal(t, w.Rescan(), 3*testQuietPeriod) {
		t.Errorf("a burst of events was not folded into a single signal")
	}
}

// TestWatcherIgnoresNonMediaFiles makes sure that non-media files do not
// cause rescans.
func TestWatcherIgnoresNonMediaFiles(t *testing.T) {
	root := t.TempDir()
	appfs := afero.NewOsFs()

	w, err := scan.NewWatcher(appfs, []string{root}, testQuietPeriod)
	if err != nil {
		t.Fatalf("creating watcher: %s", err)
	}
	defer w.Close()

	err = os.WriteFile(filepath.Join(root, "notes.txt"), []byte("text"), 0644)
	if err != nil {
		t.Fatalf("writing text file: %s", err)
	}

	if receiveSignal(t, w.Rescan(), 5*testQuietPeriod) {
		t.Errorf("a non-media file caused a rescan signal")
	}
}

// TestWatcherPicksUpNewDirectories checks that directories created after the
// watcher started are watched as well.
func TestWatcherPicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	appfs := afero.NewOsFs()

	w, err := scan.NewWatcher(appfs, []string{root}, testQuietPeriod)
	if err != nil {
		t.Fatalf("creating watcher: %s", err)
	}
	defer w.Close()

	newDir := filepath.Join(root, "new album")
	if err := os.Mkdir(newDir, 0755); err != nil {
		t.Fatalf("creating directory: %s", err)
	}

	// The directory creation itself schedules a rescan. Once the signal
	// arrives the event was fully handled, so the new directory is watched.
	if !receiveSignal(t, w.Rescan(), 5*time.Second) {
		t.Fatalf("no rescan signal after a directory was created")
	}

	mediaFile := filepath.Join(newDir, "01 hidden gem.mp3")
	if err := os.WriteFile(mediaFile, []byte("media"), 0644); err != nil {
		t.Fatalf("writing media file: %s", err)
	}

	if !receiveSignal(t, w.Rescan(), 5*time.Second) {
		t.Errorf("a media file in a new directory did not cause a rescan")
	}
}

// TestWatcherSignalsOnDelete makes sure removing a media file causes a
// rescan signal.
func TestWatcherSignalsOnDelete(t *testing.T) {
	root := t.TempDir()
	mediaFile := filepath.Join(root, "01 doomed.mp3")
	if err := os.WriteFile(mediaFile, []byte("media"), 0644); err != nil {
		t.Fatalf("writing media file: %s", err)
	}

	appfs := afero.NewOsFs()
	w, err := scan.NewWatcher(appfs, []string{root}, testQuietPeriod)
	if err != nil {
		t.Fatalf("creating watcher: %s", err)
	}
	defer w.Close()

	if err := os.Remove(mediaFile); err != nil {
		t.Fatalf("removing media file: %s", err)
	}

	if !receiveSignal(t, w.Rescan(), 5*time.Second) {
		t.Errorf("no rescan signal after a media file was deleted")
	}
}
