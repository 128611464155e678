// Package scene hosts the tank view: it owns the renderer, bridges the
// latest snapshot from the feed into the frame loop, hit-tests pointer
// input, and bounds the renderer's caches over time.
//
// The feed goroutine and the render thread share the scene, so the
// latest-inputs cell and the renderer caches sit behind one mutex.
package scene

import (
	"log/slog"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tanklab/tankview/assets"
	"github.com/tanklab/tankview/renderer"
	"github.com/tanklab/tankview/viewport"
	"github.com/tanklab/tankview/world"
)

// State is the scene lifecycle. Errored is terminal: the transition into
// it is one-way and happens at most once per instance.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateErrored
)

// String returns the state name for logs and the HUD.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Callbacks are invoked synchronously from the pointer handlers.
type Callbacks struct {
	OnEntityClick func(id int64, kind world.Kind)
	OnEntityHover func(id int64, kind world.Kind)
}

// Options configure a scene instance.
type Options struct {
	AssetDir            string
	ShowEffects         bool
	MaintenanceInterval time.Duration
}

// Scene is one mounted tank view.
type Scene struct {
	mu sync.Mutex

	state  State
	errMsg string

	// Latest-inputs cell: the feed writes, the frame loop reads. The
	// loop always draws the newest snapshot; intermediate ones are
	// counted as dropped, never drawn.
	latest      world.Snapshot
	hasSnapshot bool
	drawn       bool
	dropped     int64
	frames      int64
	recovered   int64

	selectedID  int64
	hasSelected bool
	hoveredID   int64
	hasHovered  bool
	showEffects bool

	mapper  *viewport.Mapper
	rend    *renderer.Renderer
	sprites *assets.Loader

	liveScratch map[int64]struct{}

	assetDir       string
	assetErrLogged bool

	cb Callbacks

	maintStop chan struct{}
	closed    bool
}

// New creates a scene. Rendering resources are acquired lazily on the
// first Frame call, which must happen on the render thread.
func New(opts Options, cb Callbacks) *Scene {
	interval := opts.MaintenanceInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	s := &Scene{
		state:       StateUninitialized,
		mapper:      viewport.New(0, 0),
		showEffects: opts.ShowEffects,
		assetDir:    opts.AssetDir,
		liveScratch: make(map[int64]struct{}),
		cb:          cb,
		maintStop:   make(chan struct{}),
	}

	go s.maintenanceLoop(interval)
	return s
}

// maintenanceLoop clears the plant and path caches on a fixed period,
// independently of the render cadence. Bounds memory in long sessions at
// the accepted cost of a brief regeneration flicker.
func (s *Scene) maintenanceLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.rend != nil && s.state != StateErrored {
				s.rend.ClearPlants()
				s.rend.ClearPaths()
			}
			s.mu.Unlock()
		case <-s.maintStop:
			return
		}
	}
}

// SetSnapshot replaces the latest snapshot. Called from the feed
// goroutine; last write wins. Selection and hover referencing an entity
// that vanished are cleared so no dangling highlight survives.
func (s *Scene) SetSnapshot(snap world.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasSnapshot && !s.drawn {
		s.dropped++
	}
	s.latest = snap
	s.hasSnapshot = true
	s.drawn = false

	if s.hasSelected && !snap.Has(s.selectedID) {
		s.hasSelected = false
	}
	if s.hasHovered && !snap.Has(s.hoveredID) {
		s.hasHovered = false
	}
}

// SetShowEffects toggles supplementary overlays. Flipping it never
// resets renderer or cache state.
func (s *Scene) SetShowEffects(on bool) {
	s.mu.Lock()
	s.showEffects = on
	s.mu.Unlock()
}

// ShowEffects returns the current effects toggle.
func (s *Scene) ShowEffects() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showEffects
}

// Select sets the selected entity id.
func (s *Scene) Select(id int64) {
	s.mu.Lock()
	s.selectedID = id
	s.hasSelected = true
	s.mu.Unlock()
}

// Deselect clears the selection.
func (s *Scene) Deselect() {
	s.mu.Lock()
	s.hasSelected = false
	s.mu.Unlock()
}

// Selected returns the selected entity id, if any.
func (s *Scene) Selected() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID, s.hasSelected
}

// Hovered returns the hovered entity id, if any.
func (s *Scene) Hovered() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoveredID, s.hasHovered
}

// SetViewport resizes the destination surface. Frame keeps this in sync
// with the window automatically; hosts embedding the scene elsewhere can
// drive it directly.
func (s *Scene) SetViewport(w, h float64) {
	s.mu.Lock()
	s.mapper.Resize(w, h)
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Scene) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ErrorMessage returns the terminal error text, empty unless Errored.
func (s *Scene) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// setError latches the terminal error state. The Ready -> Errored edge
// is one-way; later calls are ignored.
func (s *Scene) setError(msg string) {
	if s.state == StateErrored {
		return
	}
	s.state = StateErrored
	s.errMsg = msg
	slog.Error("scene entered terminal error state", "error", msg)
}

// Counters reports frame statistics for telemetry and the HUD.
func (s *Scene) Counters() (frames, dropped, recovered int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames, s.dropped, s.recovered
}

// CacheSizes reports renderer cache entry counts for telemetry.
func (s *Scene) CacheSizes() (facing, plants, paths int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rend == nil {
		return 0, 0, 0
	}
	return s.rend.CacheSizes()
}

// EntityCount returns the entity count of the latest snapshot.
func (s *Scene) EntityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.latest.Entities)
}

// Snapshot returns a shallow copy of the latest snapshot.
func (s *Scene) Snapshot() (world.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasSnapshot
}

// Frame draws one frame. Must run on the render thread, inside the
// caller's BeginDrawing/EndDrawing pair. A panic while drawing is
// recovered, logged and the loop continues next frame; only failure to
// acquire the rendering context is terminal.
func (s *Scene) Frame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state == StateErrored {
		return
	}

	if s.state == StateUninitialized {
		s.initLocked()
		if s.state == StateErrored {
			return
		}
	}

	defer func() {
		if r := recover(); r != nil {
			s.recovered++
			slog.Warn("draw panic recovered, skipping frame", "panic", r)
		}
	}()

	if s.state == StateLoading {
		if err := s.sprites.Err(); err != nil {
			// Asset failure is non-fatal: backgrounds keep rendering,
			// entities use shape placeholders.
			if !s.assetErrLogged {
				slog.Warn("continuing without sprites", "error", err)
				s.assetErrLogged = true
			}
			s.state = StateReady
		} else if s.sprites.Ready() {
			s.state = StateReady
		}
	}

	s.sprites.EnsureUploaded()

	s.mapper.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	dpi := rl.GetWindowScaleDPI()
	s.mapper.SetDisplayScale(float64(dpi.X), float64(dpi.Y))
	if !s.mapper.Valid() {
		return
	}

	// One scale per frame; everything below draws in world units.
	rl.PushMatrix()
	rl.Scalef(float32(s.mapper.ScaleX()), float32(s.mapper.ScaleY()), 1)
	defer rl.PopMatrix()

	s.rend.Clear(world.Width, world.Height, s.latest.Stats.TimeOfDay, s.latest.ElapsedTime)

	if s.hasSnapshot {
		entities := s.latest.Entities
		// Array order is z-order: later entities draw on top.
		for i := range entities {
			s.rend.DrawEntity(&entities[i], s.latest.ElapsedTime, s.showEffects)
		}

		if s.hasSelected {
			if e := s.latest.At(s.selectedID); e != nil {
				drawSelectionRing(e)
			}
		}

		live := s.latest.LiveIDs(s.liveScratch)
		s.liveScratch = live
		s.rend.PruneFacing(live)
		s.rend.PrunePlants(live)
	}

	s.drawn = true
	s.frames++
}

// initLocked acquires rendering resources. Failing to get a window
// context is the one terminal error.
func (s *Scene) initLocked() {
	if !rl.IsWindowReady() {
		s.setError("no rendering context available")
		return
	}
	s.sprites = assets.Preload(s.assetDir)
	s.rend = renderer.New(s.sprites)
	s.state = StateLoading
	slog.Info("scene initialized", "asset_dir", s.assetDir)
}

// drawSelectionRing marks the selected entity. World units.
func drawSelectionRing(e *world.Entity) {
	radius := float32(e.Width/2 + 6)
	rl.DrawCircleLines(int32(e.X), int32(e.Y), radius, rl.Yellow)
	rl.DrawCircleLines(int32(e.X), int32(e.Y), radius+1, rl.Fade(rl.Yellow, 0.5))
}

// Close tears the scene down: stops the maintenance timer and releases
// the renderer. Idempotent; runs on every exit path.
func (s *Scene) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.maintStop)
	if s.rend != nil {
		s.rend.Unload()
	}
}
