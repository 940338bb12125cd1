package domain

// AccessLevel controls who can see a task list.
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPrivate AccessLevel = "private"
)

// ValidAccessLevels is the canonical set of accepted access strings.
var ValidAccessLevels = map[string]bool{
	"public": true, "private": true,
}

// Priority bounds. Priority is an ordinal where 1 is most urgent.
const (
	PriorityMin = 1
	PriorityMax = 5
)

// ValidPriority reports whether p is inside the accepted ordinal range.
func ValidPriority(p int) bool {
	return p >= PriorityMin && p <= PriorityMax
}

// DefaultTaskStatuses is the fallback workflow status set. The status
// vocabulary is owned by the backend; this seeds forms when the backend
// has not supplied one.
var DefaultTaskStatuses = []string{"open", "in_progress", "in_review", "done"}
