package sensor

import (
	"context"

	"gesturekey/internal/errors"
	"gesturekey/internal/watch"
)

// FeedFile is a sensor fed by lines appended to a text file.
type FeedFile struct {
	*Latch
	path   string
	tailer *watch.Tailer
	cancel context.CancelFunc
}

// NewFeedFile creates a sensor following path. Init starts following it.
func NewFeedFile(path string, edge func()) *FeedFile {
	return &FeedFile{Latch: NewLatch(edge), path: path}
}

// Init starts the tailer. Content present before Init is ignored.
func (f *FeedFile) Init() error {
	if err := f.Latch.Init(); err != nil {
		return err
	}
	t, err := watch.NewTailer(f.path, false)
	if err != nil {
		return errors.NewSensorError("cannot follow gesture feed", "init", errors.SensorInitFailed, err)
	}
	if err := t.Start(); err != nil {
		return errors.NewSensorError("cannot follow gesture feed", "init", errors.SensorInitFailed, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.tailer = t
	f.cancel = cancel
	go Pump(ctx, t.Lines(), f.Latch)
	return nil
}

// Close stops following the file.
func (f *FeedFile) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	if f.tailer != nil {
		f.tailer.Stop()
	}
	return nil
}
