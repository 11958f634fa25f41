package pose

import (
	"math"
	"slices"
	"time"
)

// Supported exercise names. They match the plan catalog.
const (
	Squats  = "Squats"
	PushUps = "Push-ups"
)

// Stage is the phase of the current repetition.
type Stage string

// Stage constants. A new analyzer starts in StageStart, which behaves like StageUp.
const (
	StageStart Stage = "start"
	StageUp    Stage = "up"
	StageDown  Stage = "down"
)

// Feedback messages.
const (
	MsgReady          = "Ready to start."
	MsgSquatRep       = "Rep complete! Perfect Squat!"
	MsgGoDeeper       = "Go deeper!"
	MsgLeaningForward = "Don't lean forward! Keep your chest up."
	MsgPushUpRep      = "Rep complete!"
	MsgGoLower        = "Go lower!"
	MsgBodyNotLinear  = "Keep your body straight!"
	MsgOutOfView      = "Position yourself in camera view."
	MsgUnsupported    = "This exercise is not yet supported for live analysis."
)

const (
	extendedAngle    = 160
	flexedAngle      = 90
	minTorsoAngle    = 60
	maxBodyDeviation = 15

	// FeedbackInterval is the minimum time between two accepted feedback messages.
	FeedbackInterval = 1500 * time.Millisecond
	maxHistory       = 100
)

// Supported reports whether exercise has a live analyzer.
func Supported(exercise string) bool {
	return exercise == Squats || exercise == PushUps
}

// FeedbackEntry is one accepted feedback message.
type FeedbackEntry struct {
	Time      string `json:"time"`
	Message   string `json:"message"`
	IsCorrect bool   `json:"is_correct"`
}

// Snapshot is the analyzer state after a frame.
type Snapshot struct {
	Exercise    string          `json:"exercise"`
	Reps        int             `json:"reps"`
	CorrectReps int             `json:"correct_reps"`
	Stage       Stage           `json:"stage"`
	Feedback    string          `json:"feedback"`
	History     []FeedbackEntry `json:"history"`
}

// Analyzer tracks one exercise set. It is not safe for concurrent use.
type Analyzer struct {
	exercise     string
	now          func() time.Time
	reps         int
	correctReps  int
	stage        Stage
	feedback     string
	lastFeedback time.Time
	history      []FeedbackEntry
	// faulted is set once a form fault cost a correct rep in the current repetition.
	faulted bool
}

// NewAnalyzer creates an analyzer for exercise. now defaults to time.Now.
func NewAnalyzer(exercise string, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		exercise:     exercise,
		now:          now,
		reps:         0,
		correctReps:  0,
		stage:        StageStart,
		feedback:     MsgReady,
		lastFeedback: time.Time{},
		history:      nil,
		faulted:      false,
	}
}

// Process analyzes one frame of landmarks and returns the updated state. Frames without any landmarks mean no
// person was detected and leave the state unchanged.
func (a *Analyzer) Process(landmarks []Landmark) Snapshot {
	if len(landmarks) == 0 {
		return a.Snapshot()
	}
	switch a.exercise {
	case Squats:
		a.analyzeSquat(landmarks)
	case PushUps:
		a.analyzePushUp(landmarks)
	default:
		a.log(MsgUnsupported, false)
	}
	return a.Snapshot()
}

// Snapshot returns the current state.
func (a *Analyzer) Snapshot() Snapshot {
	return Snapshot{
		Exercise:    a.exercise,
		Reps:        a.reps,
		CorrectReps: a.correctReps,
		Stage:       a.stage,
		Feedback:    a.feedback,
		History:     slices.Clone(a.history),
	}
}

func (a *Analyzer) analyzeSquat(l []Landmark) {
	if len(l) <= LeftAnkle {
		a.log(MsgOutOfView, false)
		return
	}
	a.trackRep(Angle(l[LeftHip], l[LeftKnee], l[LeftAnkle]), MsgSquatRep, MsgGoDeeper)

	if a.stage == StageDown && Angle(l[LeftShoulder], l[LeftHip], l[LeftKnee]) < minTorsoAngle {
		a.fault(MsgLeaningForward)
	}
}

func (a *Analyzer) analyzePushUp(l []Landmark) {
	if len(l) <= LeftAnkle {
		a.log(MsgOutOfView, false)
		return
	}
	a.trackRep(Angle(l[LeftShoulder], l[LeftElbow], l[LeftWrist]), MsgPushUpRep, MsgGoLower)

	if math.Abs(Angle(l[LeftShoulder], l[LeftHip], l[LeftAnkle])-180) > maxBodyDeviation { //nolint:mnd // straight.
		a.fault(MsgBodyNotLinear)
	}
}

// trackRep advances the stage machine on the angle of the working joint.
func (a *Analyzer) trackRep(angle float64, repMsg, descendMsg string) {
	if angle > extendedAngle && a.stage == StageDown {
		a.reps++
		a.correctReps++
		a.log(repMsg, true)
		a.stage = StageUp
		a.faulted = false
	}
	if angle < flexedAngle && a.stage != StageDown {
		a.stage = StageDown
		a.log(descendMsg, false)
	}
}

// fault reports bad form. Each repetition loses at most one correct rep.
func (a *Analyzer) fault(msg string) {
	a.log(msg, false)
	if !a.faulted {
		a.correctReps = max(0, a.correctReps-1)
		a.faulted = true
	}
}

func (a *Analyzer) log(msg string, correct bool) {
	now := a.now()
	if !a.lastFeedback.IsZero() && now.Sub(a.lastFeedback) <= FeedbackInterval {
		return
	}
	a.feedback = msg
	a.lastFeedback = now
	a.history = append(a.history, FeedbackEntry{
		Time:      now.Format(time.TimeOnly),
		Message:   msg,
		IsCorrect: correct,
	})
	if len(a.history) > maxHistory {
		a.history = slices.Delete(a.history, 0, len(a.history)-maxHistory)
	}
}
