package grove

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Handedness is a bitmask identifying which hand (if any) drives an
// interactor. Listener filters use the same type as a mask.
type Handedness uint8

const (
	HandNone  Handedness = 0
	HandLeft  Handedness = 1 << 0 // left controller or hand
	HandRight Handedness = 1 << 1 // right controller or hand
	HandOther Handedness = 1 << 2 // head gaze, mouse, touch and other unhanded sources
	HandBoth             = HandLeft | HandRight
	HandAny              = HandLeft | HandRight | HandOther
)

// Matches reports whether an interactor with handedness h passes the filter
// mask. A zero mask accepts everything.
func (mask Handedness) Matches(h Handedness) bool {
	return mask == HandNone || mask&h != 0
}

// InteractorKind describes the capability of an input source.
type InteractorKind uint8

const (
	KindControllerRay InteractorKind = iota // tracked controller with a far ray
	KindHandRay                             // articulated hand far ray
	KindHandPoke                            // fingertip near interaction
	KindHandGrab                            // palm/grip near interaction
	KindTouch                               // screen touch contact
	KindMouse                               // desktop mouse
	KindGaze                                // head or eye gaze
)

var kindNames = [...]string{
	KindControllerRay: "controller-ray",
	KindHandRay:       "hand-ray",
	KindHandPoke:      "hand-poke",
	KindHandGrab:      "hand-grab",
	KindTouch:         "touch",
	KindMouse:         "mouse",
	KindGaze:          "gaze",
}

func (k InteractorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Relation identifies one of the stateful links between an interactor and an
// interactable.
type Relation uint8

const (
	RelationFocus  Relation = iota // interactor points at the interactable
	RelationSelect                 // select button held on the interactable
	RelationGrab                   // grip held on the interactable

	relationCount
)

func (r Relation) String() string {
	switch r {
	case RelationFocus:
		return "focus"
	case RelationSelect:
		return "select"
	case RelationGrab:
		return "grab"
	}
	return "unknown"
}

// Pose is a tracked position and orientation in world space. Direction is the
// pointing direction of the source and is kept normalized by the samplers.
type Pose struct {
	Position  mgl64.Vec3
	Rotation  mgl64.Quat
	Direction mgl64.Vec3
}

// Ray returns the pointing ray described by the pose.
func (p Pose) Ray() Ray {
	return Ray{Origin: p.Position, Direction: p.Direction}
}

// PoseFromRay builds a pose located at the ray origin, facing along the ray.
func PoseFromRay(r Ray) Pose {
	dir := r.Direction
	rot := mgl64.QuatIdent()
	if dir.Len() > 0 {
		dir = dir.Normalize()
		rot = rotationTo(dir)
	}
	return Pose{
		Position:  r.Origin,
		Rotation:  rot,
		Direction: dir,
	}
}

// rotationTo returns the rotation taking +Z onto the unit vector dir.
func rotationTo(dir mgl64.Vec3) mgl64.Quat {
	fwd := mgl64.Vec3{0, 0, 1}
	axis := fwd.Cross(dir)
	if axis.Len() < 1e-12 {
		if dir.Z() < 0 {
			return mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})
		}
		return mgl64.QuatIdent()
	}
	angle := math.Acos(mgl64.Clamp(fwd.Dot(dir), -1, 1))
	return mgl64.QuatRotate(angle, axis.Normalize())
}

// Hit is the nearest valid raycast or collision result for one interactor
// during one tick.
type Hit struct {
	Target   *Interactable
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}
