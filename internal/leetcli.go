// Package leetcli defines domain types and interfaces for the LeetCode CLI.
// This package has no project imports -- it is the dependency root.
package leetcli

import (
	"context"
	"strings"
	"time"
)

// --- Cached entities ---

// ProblemMeta holds the metadata the CLI needs about a single problem.
// ID is the user-facing frontend number; QuestionID is the internal id the
// judge expects when starting jobs.
type ProblemMeta struct {
	ID             string   `json:"id"`
	QuestionID     string   `json:"question_id"`
	Title          string   `json:"title"`
	TitleSlug      string   `json:"title_slug"`
	Difficulty     string   `json:"difficulty"`
	AcceptanceRate float64  `json:"acceptance_rate"`
	PaidOnly       bool     `json:"is_paid_only"`
	Tags           []string `json:"tags"`
	Content        string   `json:"content,omitempty"`
}

// Profile is an aggregated view of a user's public profile.
type Profile struct {
	Username     string           `json:"username"`
	RealName     string           `json:"real_name,omitempty"`
	AvatarURL    string           `json:"avatar_url,omitempty"`
	Country      string           `json:"country,omitempty"`
	Ranking      int              `json:"ranking"`
	Reputation   int              `json:"reputation"`
	SolvedTotal  int              `json:"solved_total"`
	SolvedEasy   int              `json:"solved_easy"`
	SolvedMedium int              `json:"solved_medium"`
	SolvedHard   int              `json:"solved_hard"`
	Calendar     map[string]int   `json:"calendar,omitempty"` // unix day -> submission count
	Recent       []RecentActivity `json:"recent,omitempty"`
}

// RecentActivity is one entry in a profile's recent submission list.
type RecentActivity struct {
	Title     string `json:"title"`
	TitleSlug string `json:"title_slug"`
	Status    string `json:"status"`
	Lang      string `json:"lang"`
	Timestamp int64  `json:"timestamp"`
}

// DailyChallenge is the question-of-the-day with its metadata.
type DailyChallenge struct {
	Date       string      `json:"date"` // YYYY-MM-DD
	Link       string      `json:"link"`
	UserStatus string      `json:"user_status,omitempty"`
	Problem    ProblemMeta `json:"problem"`
}

// Submission is one row of a user's submission history.
type Submission struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleSlug     string `json:"title_slug"`
	Lang          string `json:"lang"`
	StatusDisplay string `json:"status_display"`
	Runtime       string `json:"runtime,omitempty"`
	Memory        string `json:"memory,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// --- Judge jobs ---

// JobKind discriminates the two remote job types.
type JobKind string

const (
	JobSubmit JobKind = "submit"
	JobTest   JobKind = "test"
)

// Job is a running remote judge job. It lives only for the duration of one
// Submit or RunTests call and is never persisted.
type Job struct {
	ID        string
	Kind      JobKind
	StartedAt time.Time
}

// RemoteState is the closed status set reported by the judge. The remote
// client maps the platform's raw status vocabulary onto it; raw strings
// never travel past that boundary.
type RemoteState int

const (
	StatePending RemoteState = iota
	StateSucceeded
	StateFailed
	StateRemoteTimedOut
)

// String returns the state name for logs.
func (s RemoteState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateRemoteTimedOut:
		return "remote_timed_out"
	default:
		return "unknown"
	}
}

// StatusCheck is one decoded poll response from the judge.
type StatusCheck struct {
	State          RemoteState
	StatusCode     int
	StatusMsg      string
	RunSuccess     bool
	Runtime        string
	Memory         string
	TotalCorrect   int
	TotalTestcases int
	CodeOutput     string
	ExpectedOutput string
	LastTestcase   string
}

// ResultState is the terminal outcome of a judge job as seen by the caller.
type ResultState string

const (
	ResultAccepted       ResultState = "accepted"
	ResultRejected       ResultState = "rejected"
	ResultRemoteTimedOut ResultState = "remote_timed_out" // the judge itself reported TIMEOUT
	ResultLocalTimedOut  ResultState = "local_timed_out"  // we gave up waiting
)

// JobResult is the normalized terminal outcome of a submit or test job.
type JobResult struct {
	State  ResultState `json:"state"`
	JobID  string      `json:"job_id"`
	Kind   JobKind     `json:"kind"`
	Reason string      `json:"reason,omitempty"` // judge message for rejected/timed-out results

	// Submit fields.
	Runtime        string `json:"runtime,omitempty"`
	Memory         string `json:"memory,omitempty"`
	TotalCorrect   int    `json:"total_correct,omitempty"`
	TotalTestcases int    `json:"total_testcases,omitempty"`

	// Test fields.
	CodeOutput     string `json:"code_output,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
	LastTestcase   string `json:"last_testcase,omitempty"`

	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
}

// Accepted reports whether the job finished with an accepted verdict.
func (r *JobResult) Accepted() bool { return r.State == ResultAccepted }

// --- Collaborator interfaces ---

// AuthProvider reports whether the current session can make
// authenticated calls.
type AuthProvider interface {
	IsAuthenticated() bool
}

// ProblemFetcher retrieves problem metadata from the platform.
type ProblemFetcher interface {
	FetchProblem(ctx context.Context, slug string) (*ProblemMeta, error)
}

// JobClient starts judge jobs and checks their status.
type JobClient interface {
	StartSubmit(ctx context.Context, meta *ProblemMeta, source, lang string) (string, error)
	StartTest(ctx context.Context, meta *ProblemMeta, source, lang, testInput string) (string, error)
	CheckStatus(ctx context.Context, jobID string) (*StatusCheck, error)
}

// --- Languages ---

// languageSlugs maps user-facing language names to the platform's
// canonical identifiers.
var languageSlugs = map[string]string{
	"python":     "python3",
	"python3":    "python3",
	"java":       "java",
	"cpp":        "cpp",
	"c++":        "cpp",
	"c":          "c",
	"javascript": "javascript",
	"js":         "javascript",
	"typescript": "typescript",
	"ts":         "typescript",
	"go":         "golang",
	"golang":     "golang",
	"rust":       "rust",
	"ruby":       "ruby",
	"php":        "php",
	"swift":      "swift",
	"kotlin":     "kotlin",
	"scala":      "scala",
	"mysql":      "mysql",
	"postgresql": "postgresql",
}

// LanguageSlug translates a language name to the platform's canonical slug.
// Unknown languages pass through lower-cased rather than being rejected, so
// new platform languages work without a client update.
func LanguageSlug(lang string) string {
	l := strings.ToLower(lang)
	if slug, ok := languageSlugs[l]; ok {
		return slug
	}
	return l
}
