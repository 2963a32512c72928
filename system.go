package grove

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// FrameSample is the input collaborator's report for one interactor during
// one tick. Samples are consumed by Tick and not retained.
type FrameSample struct {
	InteractorID uint32
	Enabled      bool
	Pose         Pose
	Hit          *Hit // nearest valid hit, nil when nothing is hit
	Select       bool // select button held
	Grab         bool // grab/grip held
	Lost         bool // the source was lost; the interactor is removed this tick
}

// Sampler produces the samples for one tick. Implementations append to buf
// and return it.
type Sampler interface {
	Sample(s *System, buf []FrameSample) []FrameSample
}

// System is the top-level object that owns the registry, listeners and
// per-tick interaction state. It is single-threaded: every method must be
// called from the goroutine that drives Tick.
type System struct {
	cfg      Config
	registry *Registry
	store    EntityStore
	logger   *slog.Logger
	debug    bool

	listeners listenerRegistry
	gestures  map[*Interactable]*gestureState

	sampler     Sampler
	sampleBuf   []FrameSample
	sampleIndex map[uint32]int
	injectQueue []syntheticSample
	testRunner  *TestRunner

	elapsed  float64
	stats    tickStats
	disposed bool
}

// NewSystem creates a System from cfg. An invalid configuration is rejected
// here so that a System never runs partially configured.
func NewSystem(cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new system: %w", err)
	}
	level, _ := ParseLogLevel(cfg.LogLevel)
	s := &System{
		cfg:         cfg,
		registry:    NewRegistry(cfg.IDSeed),
		logger:      slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("component", "grove"),
		debug:       cfg.Debug,
		gestures:    make(map[*Interactable]*gestureState),
		sampleIndex: make(map[uint32]int),
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s, nil
}

// Config returns the active configuration.
func (s *System) Config() Config {
	return s.cfg
}

// ApplyConfig swaps in a new configuration between ticks. The id seed only
// takes effect at construction.
func (s *System) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	s.cfg = cfg
	s.SetDebugMode(cfg.Debug)
	return nil
}

// Registry returns the system's registry for read-only queries. Mutate
// membership through the System so that the matching events fire.
func (s *System) Registry() *Registry {
	return s.registry
}

// SetLogger replaces the logger. A nil logger discards output.
func (s *System) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.logger = l
}

// Logger returns the system's logger.
func (s *System) Logger() *slog.Logger {
	return s.logger
}

// SetEntityStore sets the optional ECS store for interaction events.
func (s *System) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetSampler attaches the input collaborator polled by Update.
func (s *System) SetSampler(sampler Sampler) {
	s.sampler = sampler
}

// Elapsed returns the accumulated tick time in seconds.
func (s *System) Elapsed() float64 {
	return s.elapsed
}

// IsDisposed reports whether Dispose has been called.
func (s *System) IsDisposed() bool {
	return s.disposed
}

// --- Membership ---

// AddInteractor registers ir and emits SourceDetected. No-op if ir is nil or
// already registered.
func (s *System) AddInteractor(ir *Interactor) {
	if s.disposed || !s.registry.AddInteractor(ir) {
		return
	}
	ir.alive = true
	s.emit(&InteractionEvent{Type: EventSourceDetected, Interactor: ir})
}

// RemoveInteractor forces exits for every relation ir holds, emits
// SourceLost and unregisters it. No-op if ir is not registered.
func (s *System) RemoveInteractor(ir *Interactor) {
	if ir == nil || !ir.alive {
		return
	}
	s.loseInteractor(ir)
}

// AddInteractable registers ia so that it can be hit by Raycast and receive
// relations. No-op if ia is nil, disposed or already registered.
func (s *System) AddInteractable(ia *Interactable) {
	if s.disposed || !s.registry.AddInteractable(ia) {
		return
	}
	ia.alive = true
	ia.sys = s
}

// RemoveInteractable cancels any gesture on ia, forces every holder to exit
// (focus, select, grab), unregisters and disposes it. Later deliveries to ia
// are no-ops.
func (s *System) RemoveInteractable(ia *Interactable) {
	if ia == nil || !ia.alive {
		return
	}
	if g := s.gestures[ia]; g != nil {
		s.endGesture(ia, g, EventGestureCanceled)
	}
	for _, ir := range ia.Holders(RelationSelect) {
		if ir.pointer.pressTarget == ia {
			s.cancelPress(ir)
		}
		s.exit(RelationSelect, ir, ia, ir.hit)
	}
	for _, ir := range ia.Holders(RelationGrab) {
		if ir.grabbed == ia {
			ir.grabbed = nil
		}
		s.exit(RelationGrab, ir, ia, ir.hit)
	}
	for _, ir := range ia.Holders(RelationFocus) {
		if ir.lockTarget == ia {
			ir.focusLock = false
			ir.lockTarget = nil
		}
		if ir.focus == ia {
			s.changeFocus(ir, nil)
		}
		s.exit(RelationFocus, ir, ia, ir.hit)
	}
	s.registry.RemoveInteractable(ia)
	ia.dispose()
}

// --- Frame loop ---

// Update runs one frame: advances the attached test runner, collects samples
// from the sampler and the inject queue, then calls Tick.
func (s *System) Update(dt float64) {
	if s.disposed {
		return
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	buf := s.sampleBuf[:0]
	if s.sampler != nil {
		buf = s.sampler.Sample(s, buf)
	}
	buf = s.processInjectedInput(buf)
	s.sampleBuf = buf
	s.Tick(dt, buf)
}

// Tick resolves one frame of interaction. Interactors are processed in
// registration order; every event for one interactor is delivered before the
// next interactor is looked at. Interactors without a sample keep their
// state. When several samples name the same interactor the last one wins.
func (s *System) Tick(dt float64, samples []FrameSample) {
	if s.disposed {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.stats = tickStats{}
	s.elapsed += dt

	if len(samples) > s.cfg.MaxSamples {
		s.logger.Warn("dropping samples over limit", "got", len(samples), "max", s.cfg.MaxSamples)
		samples = samples[:s.cfg.MaxSamples]
	}

	clear(s.sampleIndex)
	for i := range samples {
		id := samples[i].InteractorID
		if s.registry.Interactor(id) == nil {
			s.logger.Warn("sample for unknown interactor", "id", id)
			continue
		}
		s.sampleIndex[id] = i
	}

	for _, ir := range s.registry.Interactors() {
		i, ok := s.sampleIndex[ir.ID]
		if !ok || !ir.alive {
			continue
		}
		s.stats.interactors++
		s.processSample(ir, &samples[i])
	}

	s.updateGestures()

	if s.debug {
		s.stats.duration = time.Since(t0)
		s.debugLog(s.stats)
	}
}

// processSample runs the full per-interactor pipeline for one sample.
func (s *System) processSample(ir *Interactor, smp *FrameSample) {
	if smp.Lost {
		s.loseInteractor(ir)
		return
	}

	ir.Enabled = smp.Enabled
	ir.pose = smp.Pose
	ir.hit = Hit{}
	if smp.Hit != nil && smp.Hit.Target != nil && smp.Hit.Target.IsAlive() {
		ir.hit = *smp.Hit
	}

	s.updateFocus(ir)
	if !ir.alive {
		return
	}
	s.processSelect(ir, smp.Select && ir.Enabled)
	if !ir.alive {
		return
	}
	s.processGrab(ir, smp.Grab && ir.Enabled)
}

// SampleRay builds a FrameSample for ir by raycasting the registered
// colliders along r, bounded by the configured pointer extent.
func (s *System) SampleRay(ir *Interactor, r Ray, sel, grab bool) FrameSample {
	smp := FrameSample{
		InteractorID: ir.ID,
		Enabled:      ir.Enabled,
		Pose:         PoseFromRay(r),
		Select:       sel,
		Grab:         grab,
	}
	if hit, ok := s.Raycast(smp.Pose.Ray(), s.cfg.PointerExtent); ok {
		smp.Hit = &hit
	}
	return smp
}

// Dispose forces every interactor to be lost, disposes every interactable
// and stops the system. Later calls to Tick and Update are no-ops.
func (s *System) Dispose() {
	if s.disposed {
		return
	}
	for _, ir := range s.registry.Interactors() {
		s.loseInteractor(ir)
	}
	for _, ia := range s.registry.Interactables() {
		s.RemoveInteractable(ia)
	}
	s.listeners.clear()
	s.injectQueue = nil
	s.testRunner = nil
	s.sampler = nil
	s.disposed = true
}

// loseInteractor cancels gestures and drags, exits Select then Grab then
// Focus with the usual bracketing, emits SourceLost and unregisters ir.
func (s *System) loseInteractor(ir *Interactor) {
	if ir.losing {
		return
	}
	ir.losing = true
	s.cancelGestures(ir)

	s.cancelPress(ir)
	s.exitAll(RelationSelect, ir)

	ir.pointer.grabDown = false
	s.releaseGrab(ir)
	s.exitAll(RelationGrab, ir)

	ir.focusLock = false
	ir.lockTarget = nil
	if ir.focus != nil {
		s.changeFocus(ir, nil)
	}
	s.exitAll(RelationFocus, ir)

	s.emit(&InteractionEvent{Type: EventSourceLost, Interactor: ir})
	s.registry.RemoveInteractor(ir)
	ir.alive = false
	ir.losing = false
	ir.hit = Hit{}
}

// exitAll exits rel for ir on every interactable that still lists it, in
// registration order. Covers relations entered through EnterRelation.
func (s *System) exitAll(rel Relation, ir *Interactor) {
	for _, ia := range s.registry.Interactables() {
		if ia.IsHeldBy(rel, ir) {
			s.exit(rel, ir, ia, ir.hit)
		}
	}
}
