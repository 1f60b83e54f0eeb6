package constants

// ContextKeyEmail is the gin context key holding the authenticated member's email.
const ContextKeyEmail = "member_email"

// UnsubmittedLink is the sentinel stored in a submission link field when no
// real submission has been made yet.
const UnsubmittedLink = "*"

// Password rules
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Leaderboard sizes
const (
	TrackLeaderboardSize   = 5
	OverallLeaderboardSize = 10
)

// Member-task rate weights, in percent
const (
	HeadEvaluationPercent     = 60
	DeadlineEvaluationPercent = 40
)
