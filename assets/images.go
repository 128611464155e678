// Package assets preloads sprite images for the renderer.
//
// Image decode happens off the render thread; GPU upload must happen on
// the render thread once loading completes, because textures need the GL
// context. The loader is process-wide and idempotent: repeated Preload
// calls share one load, never re-reading files.
package assets

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sprites every world type needs. A missing file fails the whole load;
// the scene treats that as non-fatal and falls back to shape rendering.
var requiredSprites = []string{"fish", "crab"}

// Loader tracks the lifecycle of the sprite set.
type Loader struct {
	mu       sync.Mutex
	started  bool
	done     chan struct{}
	err      error
	images   map[string]*rl.Image
	textures map[string]rl.Texture2D
	uploaded bool
}

var global = &Loader{done: make(chan struct{})}

// Preload starts loading sprites from dir, once per process. Later calls
// return the same loader regardless of dir.
func Preload(dir string) *Loader {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.started {
		return global
	}
	global.started = true

	go global.load(dir)
	return global
}

func (l *Loader) load(dir string) {
	images := make(map[string]*rl.Image, len(requiredSprites))
	var loadErr error

	for _, name := range requiredSprites {
		path := filepath.Join(dir, name+".png")
		img := rl.LoadImage(path)
		if img == nil || img.Width == 0 {
			loadErr = fmt.Errorf("loading sprite %q from %s", name, path)
			break
		}
		images[name] = img
	}

	l.mu.Lock()
	if loadErr != nil {
		// Release whatever made it in before the failure
		for _, img := range images {
			rl.UnloadImage(img)
		}
		l.err = loadErr
		slog.Warn("sprite preload failed", "error", loadErr)
	} else {
		l.images = images
	}
	l.mu.Unlock()

	close(l.done)
}

// Ready reports whether all sprites loaded successfully. Polled by the
// scene each frame; false both while loading and after a failed load.
func (l *Loader) Ready() bool {
	select {
	case <-l.done:
	default:
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err == nil
}

// Err returns the load error, or nil while loading or after success.
func (l *Loader) Err() error {
	select {
	case <-l.done:
	default:
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// EnsureUploaded converts decoded images to GPU textures. Must be called
// from the render thread. Safe to call every frame; uploads once.
func (l *Loader) EnsureUploaded() {
	if !l.Ready() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.uploaded {
		return
	}

	l.textures = make(map[string]rl.Texture2D, len(l.images))
	for name, img := range l.images {
		l.textures[name] = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	l.images = nil
	l.uploaded = true
	slog.Info("sprite textures uploaded", "count", len(l.textures))
}

// Texture returns the uploaded texture for a sprite name.
func (l *Loader) Texture(name string) (rl.Texture2D, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tex, ok := l.textures[name]
	return tex, ok
}

// Unload releases all GPU textures. Idempotent; intended for process
// shutdown on the render thread.
func (l *Loader) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, tex := range l.textures {
		rl.UnloadTexture(tex)
		delete(l.textures, name)
	}
	l.uploaded = false
}
