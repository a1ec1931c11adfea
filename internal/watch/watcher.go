// Package watch notifies subscribers when files in .swatch/ change, so views
// can re-render after another process edits the palette.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/logging"
)

// DefaultDebounce coalesces the bursts of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChangeKind indicates what kind of file changed.
type FileChangeKind string

const (
	FileChangeKindWorkspace FileChangeKind = "workspace"
	FileChangeKindSettings  FileChangeKind = "settings"
	FileChangeKindUnknown   FileChangeKind = "unknown"
)

// FileChange represents a file system change notification.
type FileChange struct {
	Type FileChangeType
	Kind FileChangeKind
	Path string // Relative path from .swatch/
}

// Subscriber receives file change notifications.
type Subscriber interface {
	OnFileChange(change FileChange)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(FileChange)

func (f SubscriberFunc) OnFileChange(change FileChange) { f(change) }

// FileWatcher watches the .swatch directory and notifies subscribers.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	dir         string
	logger      *slog.Logger
	delay       time.Duration
	mu          sync.RWMutex
	subscribers []Subscriber
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithLogger sets the logger for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(fw *FileWatcher) {
		fw.logger = logger
	}
}

// WithDebounce sets how long to wait for events on a file to settle.
func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) {
		fw.delay = d
	}
}

// NewFileWatcher creates a watcher for the project's .swatch directory.
func NewFileWatcher(paths *config.Paths, opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		dir:      paths.SwatchRoot(),
		logger:   logging.NewNop(),
		delay:    DefaultDebounce,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub Subscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Start begins watching. The workspace file is replaced by some editors
// rather than rewritten, so the directory is watched, not the file.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(fw.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.dir, err)
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Cancel pending debounce timers so they cannot fire after stop
	fw.debounceMu.Lock()
	for path, timer := range fw.debounce {
		timer.Stop()
		delete(fw.debounce, path)
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Skip editor swap and backup files
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return
	}

	fw.debounceMu.Lock()
	if timer, exists := fw.debounce[event.Name]; exists {
		timer.Stop()
	}
	fw.debounce[event.Name] = time.AfterFunc(fw.delay, func() {
		fw.emitChange(event)
		fw.debounceMu.Lock()
		delete(fw.debounce, event.Name)
		fw.debounceMu.Unlock()
	})
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) emitChange(event fsnotify.Event) {
	// A debounce timer may fire after Stop
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]Subscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	change := fw.classifyChange(event)
	if change.Kind == FileChangeKindUnknown {
		return
	}
	fw.logger.Debug("file changed", "path", change.Path, "type", string(change.Type))

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

func (fw *FileWatcher) classifyChange(event fsnotify.Event) FileChange {
	relPath, err := filepath.Rel(fw.dir, event.Name)
	if err != nil {
		return FileChange{Kind: FileChangeKindUnknown}
	}

	change := FileChange{Path: relPath}

	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = FileChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = FileChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = FileChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = FileChangeDeleted // Rename source is effectively deleted
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}

	switch relPath {
	case config.WorkspaceFileName:
		change.Kind = FileChangeKindWorkspace
	case config.ConfigFileName:
		change.Kind = FileChangeKindSettings
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}
	return change
}
