package plan

// catalog lists the exercises per muscle group. Order matters: it is the tie-break for selection.
//
//nolint:gochecknoglobals // static exercise catalog.
var catalog = map[MuscleGroup][]string{
	Chest: {
		"Bench Press", "Incline Dumbbell Press", "Decline Bench Press", "Pec Fly", "Push-ups", "Cable Chest Press",
		"Incline Barbell Press", "Chest Dips", "Dumbbell Pullover", "Cable Crossover", "Incline Fly", "Decline Fly",
	},
	Shoulders: {
		"Military Press", "Lateral Raises", "Upright Rows", "Arnold Press", "Front Raises", "Rear Delt Fly",
		"Overhead Press", "Dumbbell Shrugs", "Pike Push-ups", "Cable Lateral Raises", "Handstand Push-ups",
		"Face Pulls",
	},
	Arms: {
		"Barbell Curls", "Tricep Dips", "Skull Crushers", "Hammer Curls", "Rope Pushdowns", "Preacher Curls",
		"Overhead Tricep Extension", "Cable Curls", "21s Bicep Curls", "Diamond Push-ups", "Concentration Curls",
		"Close-Grip Bench Press",
	},
	Back: {
		"Deadlifts", "Barbell Rows", "Lat Pulldowns", "Pull-ups", "Seated Cable Rows", "T-Bar Rows",
		"Single-Arm Dumbbell Rows", "Wide-Grip Pull-ups", "Reverse Fly", "Hyperextensions", "Cable Rows",
		"Inverted Rows",
	},
	Legs: {
		"Squats", "Romanian Deadlifts", "Lunges", "Leg Press", "Calf Raises", "Leg Curls", "Leg Extensions",
		"Bulgarian Split Squats", "Walking Lunges", "Goblet Squats", "Sumo Squats", "Step-ups", "Wall Sits",
		"Jump Squats",
	},
	Core: {
		"Plank", "Crunches", "Russian Twists", "Mountain Climbers", "Bicycle Crunches", "Dead Bug", "Leg Raises",
		"Side Plank", "Ab Wheel Rollouts", "Hanging Knee Raises", "V-ups", "Flutter Kicks",
	},
	Cardio: {
		"Burpees", "High Knees", "Jumping Jacks", "Jump Rope", "Sprint Intervals", "Box Jumps", "Battle Ropes",
		"Rowing Machine", "Stationary Bike", "Elliptical", "Stair Climber", "Treadmill Running",
	},
}

// MuscleGroups returns the catalog keys in display order.
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{Chest, Shoulders, Arms, Back, Legs, Core, Cardio}
}

// Exercises returns a copy of the catalog entries for group. Unknown groups, including Rest, have no exercises.
func Exercises(group MuscleGroup) []string {
	return append([]string(nil), catalog[group]...)
}

// ParseMuscleGroup converts user input into a catalog muscle group.
func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	group := MuscleGroup(s)
	_, ok := catalog[group]
	return group, ok
}

// FindExercise reports which muscle group lists the exercise.
func FindExercise(name string) (MuscleGroup, bool) {
	for _, group := range MuscleGroups() {
		for _, exercise := range catalog[group] {
			if exercise == name {
				return group, true
			}
		}
	}
	return "", false
}
