package mouse

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/mousekit/internal/codec"
	"github.com/bnema/mousekit/internal/config"
	"github.com/bnema/mousekit/internal/logger"
)

// listener runs one blocking reader goroutine per discovered mouse device
// and a single dispatcher goroutine that drains their shared channel,
// classifies raw kernel events, and invokes the registered callbacks.
type listener struct {
	registry *registry
	events   chan codec.Event
	done     chan struct{}

	mu      sync.Mutex
	files   []*os.File
	devices []string // canonical paths with an active reader
	watcher *fsnotify.Watcher
}

// startListener discovers the mouse devices, opens them, and starts the
// reader and dispatcher goroutines. Any single device that cannot be opened
// fails the whole call; there is no best-effort mode.
func startListener(lc config.ListenerConfig, reg *registry) (*listener, error) {
	paths, err := mouseDevicePaths(lc.InputDir)
	if err != nil {
		return nil, err
	}

	l := &listener{
		registry: reg,
		events:   make(chan codec.Event, lc.ChannelBuffer),
		done:     make(chan struct{}),
	}

	for _, path := range paths {
		if err := l.addDevice(path); err != nil {
			l.stop()
			return nil, err
		}
	}

	go l.dispatch()

	if lc.Hotplug {
		if err := l.watchHotplug(lc.InputDir); err != nil {
			logger.Warnf("Device hotplug watching unavailable: %v", err)
		}
	}

	logger.Infof("Listening on %d mouse device(s)", len(paths))
	return l, nil
}

// addDevice opens one canonical device path read-only and starts its reader.
// Already-watched paths are skipped so a hotplug rescan cannot double up.
func (l *listener) addDevice(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.devices, path) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open input device %s: %w", path, err)
	}

	l.files = append(l.files, f)
	l.devices = append(l.devices, path)
	go l.readDevice(f, path)

	logger.Debugf("Started reader for %s", path)
	return nil
}

// readDevice blocks on the device file, one fixed-size record per read, and
// forwards decoded events to the dispatcher. Failed or short reads are
// classified and dropped rather than forwarded: the reader ends on a read
// error, which is how unplugged devices and listener shutdown surface here.
func (l *listener) readDevice(f *os.File, path string) {
	buf := make([]byte, codec.EventSize)
	for {
		n, err := f.Read(buf)
		if err != nil {
			logger.Debugf("Reader for %s stopped: %v", path, err)
			return
		}
		if n != codec.EventSize {
			logger.Debugf("Dropping short read from %s: %d bytes", path, n)
			continue
		}

		ev, err := codec.Unmarshal(buf)
		if err != nil {
			logger.Debugf("Dropping undecodable event from %s: %v", path, err)
			continue
		}

		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
	}
}

// dispatch drains the fan-in channel in arrival order. Ordering across
// distinct devices is interleaved by arrival, not deterministic.
func (l *listener) dispatch() {
	for {
		select {
		case <-l.done:
			return
		case raw := <-l.events:
			if ev, ok := classify(raw); ok {
				l.registry.dispatch(ev)
			}
		}
	}
}

// classify maps a raw kernel event to a semantic mouse event. Unknown
// buttons, unknown axes, and all other event categories are discarded.
func classify(raw codec.Event) (Event, bool) {
	switch raw.Type {
	case codec.EV_KEY:
		b, ok := buttonFromCode(raw.Code)
		if !ok {
			return Event{}, false
		}
		if raw.Value == 1 {
			return PressEvent(b), true
		}
		return ReleaseEvent(b), true

	case codec.EV_REL:
		switch raw.Code {
		case codec.REL_WHEEL:
			if raw.Value > 0 {
				return ScrollEvent(ScrollUp), true
			}
			return ScrollEvent(ScrollDown), true
		case codec.REL_HWHEEL:
			if raw.Value > 0 {
				return ScrollEvent(ScrollRight), true
			}
			return ScrollEvent(ScrollLeft), true
		case codec.REL_X:
			return MoveEvent(raw.Value, 0), true
		case codec.REL_Y:
			return MoveEvent(0, raw.Value), true
		default:
			return Event{}, false
		}

	default:
		return Event{}, false
	}
}

// watchHotplug starts readers for mice that appear after the listener did.
// udev repopulates the by-id and by-path symlink directories on plug events,
// so watching those two directories is enough.
func (l *listener) watchHotplug(inputDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watched := 0
	for _, dir := range []string{"by-id", "by-path"} {
		if err := watcher.Add(filepath.Join(inputDir, dir)); err != nil {
			logger.Debugf("Not watching %s/%s: %v", inputDir, dir, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		watcher.Close()
		return fmt.Errorf("no device symlink directories under %s", inputDir)
	}

	l.mu.Lock()
	l.watcher = watcher
	l.mu.Unlock()

	go func() {
		for {
			select {
			case <-l.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) || !strings.HasSuffix(event.Name, "-event-mouse") {
					continue
				}
				path, err := resolveDevicePath(event.Name)
				if err != nil {
					logger.Warnf("Ignoring hotplugged device %s: %v", event.Name, err)
					continue
				}
				if err := l.addDevice(path); err != nil {
					logger.Warnf("Ignoring hotplugged device %s: %v", path, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Device watcher error: %v", err)
			}
		}
	}()

	return nil
}

// stop ends the dispatcher and unblocks every reader by closing its device
// file. Safe to call once; the listener cannot be restarted.
func (l *listener) stop() {
	close(l.done)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Close()
		l.watcher = nil
	}
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
	l.devices = nil
}
