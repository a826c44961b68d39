package livereload

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// settle is how long file events must stay quiet before a check runs.
const settle = 50 * time.Millisecond

// Watcher calls onChange when the signature of a set of files and directories
// changes. File system events trigger the check; a gocron job also polls at
// interval to catch paths that appear after start.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(context.Context) error

	mu         sync.Mutex
	lastSig    [sha256.Size]byte
	hasLastSig bool
}

func NewWatcher(paths []string, interval time.Duration, onChange func(context.Context) error) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("livereload: nothing to watch")
	}
	if interval <= 0 {
		return nil, errors.New("livereload: interval must be greater than zero")
	}
	if onChange == nil {
		return nil, errors.New("livereload: onChange callback is required")
	}
	return &Watcher{paths: paths, interval: interval, onChange: onChange}, nil
}

// Start watches until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "livereload: new fsnotify watcher")
	}
	defer fw.Close()
	for _, p := range w.paths {
		addTree(fw, p)
	}

	if _, err := w.Check(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize live reload signature")
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "livereload: new scheduler")
	}

	job, err := s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.tick, ctx),
		gocron.WithName("livereload-watch"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errors.Wrap(err, "livereload: add watch job")
	}

	s.Start()
	log.Info().Strs("paths", w.paths).Dur("interval", w.interval).Msg("Live reload watcher started")

	w.watchEvents(ctx, fw, job)

	log.Info().Msg("Live reload watcher stopped")
	return errors.Wrap(s.Shutdown(), "livereload: shutdown scheduler")
}

// watchEvents runs the check job once events have been quiet for settle.
func (w *Watcher) watchEvents(ctx context.Context, fw *fsnotify.Watcher, job gocron.Job) {
	quiet := time.NewTimer(settle)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addTree(fw, event.Name)
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			quiet.Reset(settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("File watcher error")
		case <-quiet.C:
			if err := job.RunNow(); err != nil {
				log.Warn().Err(err).Msg("Failed to run live reload check")
			}
		}
	}
}

// addTree watches root and every directory below it. Hidden directories and
// missing paths are skipped.
func addTree(fw *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(p)
	})
	if err != nil {
		log.Warn().Err(err).Str("path", root).Msg("Error setting up file watcher")
	}
}

func (w *Watcher) tick(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil {
		log.Error().Err(err).Msg("Live reload failed, keeping previous site")
	}
}

// Check recomputes the signature and runs onChange if it differs from the last one.
// The first call only records the signature.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sig, err := signature(w.paths)
	if err != nil {
		return false, err
	}
	if !w.hasLastSig || sig == w.lastSig {
		w.lastSig, w.hasLastSig = sig, true
		return false, nil
	}

	log.Info().Msg("Detected site change, reloading")
	w.lastSig = sig
	return true, w.onChange(ctx)
}

// signature hashes path, size and modification time of every file below paths.
// Missing paths contribute nothing.
func signature(paths []string) ([sha256.Size]byte, error) {
	hasher := sha256.New()
	for _, root := range paths {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			fmt.Fprintf(hasher, "%s\x00%d\x00%d\x00", p, info.Size(), info.ModTime().UnixNano())
			return nil
		})
		if err != nil {
			return [sha256.Size]byte{}, errors.Wrapf(err, "scan %s", root)
		}
	}

	var sum [sha256.Size]byte
	copy(sum[:], hasher.Sum(nil))
	return sum, nil
}
