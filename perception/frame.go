// Package perception models the output of an external hand/face landmark
// estimator and carries it to the game loop. Producers publish Frames to a
// Feed; the scheduler is the only consumer.
package perception

import (
	"time"

	"github.com/lixenwraith/princess-guard/constants"
)

// Landmark is one estimated keypoint, normalized to [0,1] image space with
// origin at the top-left of the (unmirrored) camera image
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Hand is one detected hand
type Hand struct {
	Handedness string     `json:"handedness"`
	Landmarks  []Landmark `json:"landmarks"`
}

// Face is one detected face mesh
type Face struct {
	Landmarks []Landmark `json:"landmarks"`
}

// Frame is the estimator result for one processed video frame. Zero hands
// and a nil Face are a valid empty detection.
type Frame struct {
	Hands []Hand `json:"hands,omitempty"`
	Face  *Face  `json:"face,omitempty"`

	// Source names the producer, for logs
	Source string `json:"-"`
	// Received is stamped by the Feed on publish
	Received time.Time `json:"-"`
}

// Anchor returns the hand's control point (middle-finger base)
func (h Hand) Anchor() (Landmark, bool) {
	if len(h.Landmarks) <= constants.HandAnchorIndex {
		return Landmark{}, false
	}
	return h.Landmarks[constants.HandAnchorIndex], true
}

// Lips returns the upper and lower lip landmarks
func (f *Face) Lips() (upper, lower Landmark, ok bool) {
	if f == nil || len(f.Landmarks) <= constants.FaceLowerLipIndex {
		return Landmark{}, Landmark{}, false
	}
	return f.Landmarks[constants.FaceUpperLipIndex], f.Landmarks[constants.FaceLowerLipIndex], true
}

// Empty reports a frame with nothing detected
func (f Frame) Empty() bool {
	return len(f.Hands) == 0 && f.Face == nil
}

// PointerHand builds a synthetic hand whose anchor sits at (x, y), for
// mouse-driven or scripted input. All landmarks share the anchor position.
func PointerHand(handedness string, x, y float64) Hand {
	lms := make([]Landmark, constants.HandLandmarkCount)
	for i := range lms {
		lms[i] = Landmark{X: x, Y: y}
	}
	return Hand{Handedness: handedness, Landmarks: lms}
}

// MouthFace builds a synthetic face with the given lip gap centered at y
func MouthFace(y, gap float64) *Face {
	lms := make([]Landmark, constants.FaceLowerLipIndex+1)
	for i := range lms {
		lms[i] = Landmark{X: 0.5, Y: y}
	}
	lms[constants.FaceUpperLipIndex] = Landmark{X: 0.5, Y: y - gap/2}
	lms[constants.FaceLowerLipIndex] = Landmark{X: 0.5, Y: y + gap/2}
	return &Face{Landmarks: lms}
}
