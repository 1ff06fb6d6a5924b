// internal/domain/plan.go
package domain

// Tier classifies a plan. Emerald plans are premium-eligible.
type Tier string

const (
	TierEmerald Tier = "emerald"
	TierFree    Tier = "free"
)

// Exercise is one item of a plan's workout for today.
type Exercise struct {
	ID     string `bson:"id" json:"id" validate:"required"`
	Title  string `bson:"title" json:"title" validate:"required"`
	Scheme string `bson:"scheme" json:"scheme"` // sets x reps, e.g. "4 x 10–12"
	Cap    string `bson:"cap" json:"cap"`       // time cap, e.g. "10–12 min"
	Notes  string `bson:"notes" json:"notes"`
}

// Plan is the complete program handed back for one generation request.
type Plan struct {
	ID                string     `bson:"id" json:"id" validate:"required"`
	Name              string     `bson:"name" json:"name" validate:"required"`
	Tier              Tier       `bson:"tier" json:"tier" validate:"oneof=emerald free"`
	Level             int        `bson:"level" json:"level"`
	XP                int        `bson:"xp" json:"xp"`
	XPToNext          int        `bson:"xpToNext" json:"xpToNext"`
	WeeklyWorkouts    int        `bson:"weeklyWorkouts" json:"weeklyWorkouts"`
	CompletedThisWeek int        `bson:"completedThisWeek" json:"completedThisWeek"`
	StreakDays        int        `bson:"streakDays" json:"streakDays"`
	NextWorkoutETA    string     `bson:"nextWorkoutETA" json:"nextWorkoutETA"`
	Today             []Exercise `bson:"today" json:"today" validate:"len=3,unique=ID,dive"`
}

// PlanKeys lists every key a serialized Plan must carry, in wire order.
var PlanKeys = []string{
	"id", "name", "tier", "level", "xp", "xpToNext", "weeklyWorkouts",
	"completedThisWeek", "streakDays", "nextWorkoutETA", "today",
}

// ExerciseKeys lists every key a serialized Exercise must carry.
var ExerciseKeys = []string{"id", "title", "scheme", "cap", "notes"}
