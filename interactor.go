package grove

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// pointerState is the per-interactor select/drag machine, the XR analogue of
// a mouse pointer's press state.
type pointerState struct {
	down        bool
	pressTarget *Interactable // target captured at press time
	locked      bool          // focus lock was taken by the press
	start       mgl64.Vec3
	last        mgl64.Vec3
	dragging    bool
	grabDown    bool
}

// Interactor is one input-driven pointer: a controller ray, a hand, a touch
// contact, a mouse or a gaze source.
//
// Create interactors with NewInteractor and register them with
// System.AddInteractor. The focus, selection and grab targets are owned by
// the System and exposed read-only.
type Interactor struct {
	// Identity
	ID       uint32
	Name     string
	Kind     InteractorKind
	SourceID uuid.UUID

	Handedness Handedness
	Enabled    bool
	UserData   any

	// Resolved per tick
	pose Pose
	hit  Hit // raw nearest hit from the last sample, before locking

	focus      *Interactable
	lockTarget *Interactable
	focusLock  bool
	selected   *Interactable
	grabbed    *Interactable

	pointer pointerState
	alive   bool
	losing  bool // synthetic exits are running; no new relations
}

// NewInteractor creates an enabled interactor with a fresh source identity.
func NewInteractor(name string, kind InteractorKind, hand Handedness) *Interactor {
	return &Interactor{
		Name:       name,
		Kind:       kind,
		SourceID:   uuid.New(),
		Handedness: hand,
		Enabled:    true,
		pose:       Pose{Rotation: mgl64.QuatIdent(), Direction: mgl64.Vec3{0, 0, 1}},
	}
}

// Focus returns the interactable currently focused, or nil.
func (ir *Interactor) Focus() *Interactable { return ir.focus }

// Selected returns the interactable the select press is held on, or nil.
func (ir *Interactor) Selected() *Interactable { return ir.selected }

// Grabbed returns the interactable currently grabbed, or nil.
func (ir *Interactor) Grabbed() *Interactable { return ir.grabbed }

// IsFocusLocked reports whether hit testing is suspended for this interactor.
func (ir *Interactor) IsFocusLocked() bool { return ir.focusLock }

// IsDragging reports whether the select press has turned into a drag.
func (ir *Interactor) IsDragging() bool { return ir.pointer.dragging }

// Pose returns the last sampled pose.
func (ir *Interactor) Pose() Pose { return ir.pose }

// Hit returns the raw nearest hit from the last sample. Target is nil when
// nothing was hit.
func (ir *Interactor) Hit() Hit { return ir.hit }

// IsAlive reports whether the interactor is registered with a System.
func (ir *Interactor) IsAlive() bool { return ir.alive }
