package scan

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/spf13/afero"
)

// DefaultQuietPeriod is the time the watcher waits for the filesystem to
// settle down before it signals that a rescan is due.
const DefaultQuietPeriod = 5 * time.Second

// Watcher looks for changes under the library roots and signals when a new
// scan of the libraries is due. Since catalogs are immutable there are no
// incremental updates, any relevant change schedules a full rescan. A quiet
// period folds bursts of events, for example a directory of files being
// copied in, into a single signal.
//
// Watching only makes sense on the operating system filesystem. With any
// other afero.Fs the watches fail and are logged, the Watcher itself still
// works but never fires.
type Watcher struct {
	fs    afero.Fs
	quiet time.Duration

	watch  *fsnotify.Watcher
	rescan chan struct{}
	done   chan struct{}
}

// NewWatcher starts watching every directory under the given library roots.
func NewWatcher(appfs afero.Fs, roots []string, quiet time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	w := &Watcher{
		fs:     appfs,
		quiet:  quiet,
		watch:  fsWatch,
		rescan: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	for _, root := range roots {
		w.watchRecursively(root)
	}

	go w.eventLoop()

	return w, nil
}

// Rescan returns the channel on which the watcher signals that the libraries
// have changed. The channel never closes and carries at most one pending
// signal no matter how many events piled up while the receiver was busy.
func (w *Watcher) Rescan() <-chan struct{} {
	return w.rescan
}

// Close stops the event loop and releases all filesystem watches. The
// watcher must not be used after Close.
func (w *Watcher) Close() {
	close(w.done)
	w.watch.Close()
}

// eventLoop receives the raw filesystem events and turns them into rescan
// signals once the quiet period passes without further changes.
func (w *Watcher) eventLoop() {
	defer log.Println("Directory watcher event receiver stopped.")

	var (
		timer *time.Timer
		due   <-chan time.Time
	)

	for {
		select {
		case ev := <-w.watch.Event:
			if ev == nil {
				return
			}
			if !w.handleEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.quiet)
				due = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.quiet)
			}
		case <-due:
			timer = nil
			due = nil
			select {
			case w.rescan <- struct{}{}:
			default:
			}
		case err := <-w.watch.Error:
			if err == nil {
				return
			}
			log.Println("Directory watcher error:", err)
		case <-w.done:
			return
		}
	}
}

// handleEvent maintains the directory watches and reports whether the event
// affects any media files and should count towards a rescan.
func (w *Watcher) handleEvent(event *fsnotify.FileEvent) bool {
	if event.IsAttrib() {
		return false
	}

	if event.IsDelete() || event.IsRename() {
		if isSupportedFormat(event.Name) {
			// A media file disappeared.
			return true
		}

		// The name is already gone so there is no way to stat it. Assume it
		// was a directory and drop its watch, removing a watch which was
		// never added is harmless.
		_ = w.watch.RemoveWatch(event.Name)
		return true
	}

	st, err := w.fs.Stat(event.Name)
	if err != nil {
		log.Printf("Watch event stat received error: %s", err)
		return false
	}

	if st.IsDir() {
		if event.IsCreate() {
			// A new directory may already contain media files, for example
			// when it was moved in from outside the library. The rescan
			// picks those up, here it only has to be watched.
			w.watchRecursively(event.Name)
			return true
		}
		return false
	}

	return isSupportedFormat(event.Name)
}

// watchRecursively starts watching every directory under root, including
// root itself. Failures are logged and skipped, a partially watched library
// still produces useful events.
func (w *Watcher) watchRecursively(root string) {
	err := afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Println(err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watch.Watch(path); err != nil {
			log.Printf("Error watching %s: %s", path, err)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error walking %s for watching: %s", root, err)
	}
}
