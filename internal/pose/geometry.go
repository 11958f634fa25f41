// Package pose counts repetitions and judges form from body landmarks detected in the browser.
//
// Landmarks follow the MediaPipe Pose topology: 33 points with coordinates normalized to the camera frame.
package pose

import (
	"math"
)

// Landmark indices used by the analyzers.
const (
	LeftShoulder = 11
	LeftElbow    = 13
	LeftWrist    = 15
	LeftHip      = 23
	LeftKnee     = 25
	LeftAnkle    = 27
)

// LandmarkCount is the number of landmarks in a full MediaPipe Pose frame.
const LandmarkCount = 33

// Landmark is one detected body point.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// Angle returns the angle at vertex b formed by a and c, in degrees between 0 and 180.
func Angle(a, b, c Landmark) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180 / math.Pi)
	if angle > 180 { //nolint:mnd // reflex angles fold back.
		angle = 360 - angle
	}
	return angle
}
