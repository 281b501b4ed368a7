package constants

// Landmark topology of the hand/face estimator. Indices must match whichever
// estimator feeds the game.
const (
	// HandLandmarkCount is the size of one hand landmark set
	HandLandmarkCount = 21

	// HandAnchorIndex is the middle-finger base, used as the hand position
	HandAnchorIndex = 9

	// FaceUpperLipIndex and FaceLowerLipIndex bracket the mouth opening
	FaceUpperLipIndex = 13
	FaceLowerLipIndex = 14

	// MouthOpenThreshold is the normalized vertical lip gap that counts as open
	MouthOpenThreshold = 0.05
)

// Handedness labels as reported by the estimator
const (
	HandednessLeft  = "Left"
	HandednessRight = "Right"
)

// Camera defaults, matching the renderer's perspective projection
const (
	CameraFOV     = 75.0 // vertical, degrees
	CameraZ       = 5.0
	CameraAspect  = 16.0 / 9.0
	FeedBufferLen = 64
)
