package fitness

import (
	"math/rand/v2"
)

//nolint:gochecknoglobals // message tables.
var (
	messagesExcellent = []string{
		"🔥 You're absolutely crushing it!",
		"💪 Unstoppable! Keep up the amazing work!",
		"🏆 Champion level consistency!",
		"⭐ You're an inspiration to others!",
	}
	messagesGreat = []string{
		"🎯 Great consistency! You're on fire!",
		"💪 Strong dedication showing results!",
		"🚀 You're building an amazing habit!",
		"⚡ Keep up this fantastic momentum!",
	}
	messagesGood = []string{
		"📈 Good progress! Stay consistent!",
		"💪 You're building strength every day!",
		"🎯 Keep pushing towards your goals!",
		"🌟 Every workout counts - great job!",
	}
	messagesFair = []string{
		"🌱 Every step forward counts!",
		"💪 Progress takes time - keep going!",
		"🎯 Focus on consistency over perfection!",
		"🚀 You've got this! One day at a time!",
	}
	messagesStarting = []string{
		"🌟 Starting is the hardest part - you did it!",
		"💪 Small steps lead to big changes!",
		"🎯 Your journey begins with a single workout!",
		"🌱 Every expert was once a beginner!",
	}
)

// MotivationalMessages returns the pool of messages matching the completion rate percentage.
func MotivationalMessages(completionRate float64) []string {
	var pool []string
	switch {
	case completionRate >= 90: //nolint:mnd // percentage bands
		pool = messagesExcellent
	case completionRate >= 70: //nolint:mnd // percentage bands
		pool = messagesGreat
	case completionRate >= 50: //nolint:mnd // percentage bands
		pool = messagesGood
	case completionRate >= 25: //nolint:mnd // percentage bands
		pool = messagesFair
	default:
		pool = messagesStarting
	}
	return append([]string(nil), pool...)
}

// MotivationalMessage picks one message for the completion rate using rng.
func MotivationalMessage(completionRate float64, rng *rand.Rand) string {
	pool := MotivationalMessages(completionRate)
	return pool[rng.IntN(len(pool))]
}
