// Package watch follows an append-only text file with fsnotify and delivers
// every complete line written to it.
package watch

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gesturekey/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Tailer delivers lines appended to a single file. The file does not need
// to exist when the tailer starts; truncation restarts from the beginning.
type Tailer struct {
	path string

	// Channel delivering complete lines, without the trailing newline
	lines chan string

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	offset  int64
	partial []byte
}

// NewTailer creates a tailer for path. Existing content is skipped unless
// fromStart is set.
func NewTailer(path string, fromStart bool) (*Tailer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	t := &Tailer{
		path:      abs,
		lines:     make(chan string, 64),
		fsWatcher: fsWatcher,
	}
	if !fromStart {
		if info, err := os.Stat(abs); err == nil {
			t.offset = info.Size()
		}
	}
	return t, nil
}

// Path returns the absolute path being followed.
func (t *Tailer) Path() string {
	return t.path
}

// Lines returns the channel of appended lines. It is closed by Stop.
func (t *Tailer) Lines() <-chan string {
	return t.lines
}

// Start begins following the file. The parent directory is watched so the
// file may be created or replaced later.
func (t *Tailer) Start() error {
	t.mutex.Lock()
	if t.running {
		t.mutex.Unlock()
		return fmt.Errorf("tailer already running")
	}
	dir := filepath.Dir(t.path)
	if err := t.fsWatcher.Add(dir); err != nil {
		t.mutex.Unlock()
		t.fsWatcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	t.running = true
	t.stopChan = make(chan struct{})
	t.done = make(chan struct{})
	t.mutex.Unlock()

	log.LogWithFields(log.F("file", t.path)).Info("Following gesture feed")

	// Content written between NewTailer and Start.
	t.drain()

	go t.loop()
	return nil
}

func (t *Tailer) loop() {
	defer close(t.done)
	for {
		select {
		case event, ok := <-t.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != t.path {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create):
				t.mutex.Lock()
				t.offset = 0
				t.partial = nil
				t.mutex.Unlock()
				t.drain()
			case event.Op.Has(fsnotify.Write):
				t.drain()
			}

		case err, ok := <-t.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-t.stopChan:
			return
		}
	}
}

// drain reads everything past the current offset and emits complete lines.
func (t *Tailer) drain() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	f, err := os.Open(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", t.path), log.F("error", err)).Error("Error opening feed")
		}
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return
	}
	if info.Size() < t.offset {
		log.LogWithFields(log.F("file", t.path)).Debug("feed truncated, restarting")
		t.offset = 0
		t.partial = nil
	}

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		log.LogWithFields(log.F("file", t.path), log.F("error", err)).Error("Error reading feed")
		return
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(buf[:i], "\r"))
		buf = buf[i+1:]

		select {
		case t.lines <- line:
		default:
			log.LogWithFields(log.F("file", t.path)).Warn("Line channel is full, dropped line")
		}
	}
	t.partial = append([]byte(nil), buf...)
}

// Stop halts the tailer and closes the line channel.
func (t *Tailer) Stop() {
	t.mutex.Lock()
	if !t.running {
		t.mutex.Unlock()
		return
	}
	t.running = false
	close(t.stopChan)
	t.mutex.Unlock()

	if err := t.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-t.done
	close(t.lines)
	log.Info("Tailer stopped.")
}
