package steam

import "fmt"

// StartCursor is the sentinel cursor for the first page of a listing.
const StartCursor = "*"

// DateBasis selects which source timestamp governs both the listing filter
// and the timestamp read from each review.
type DateBasis int

const (
	// DateCreated filters by creation time (filter=recent) and reads
	// timestamp_created.
	DateCreated DateBasis = iota

	// DateUpdated filters by last-update time (filter=updated) and reads
	// timestamp_updated.
	DateUpdated
)

// ParseDateBasis parses a date basis from its configuration string.
func ParseDateBasis(s string) (DateBasis, error) {
	switch s {
	case "created", "recent":
		return DateCreated, nil
	case "updated":
		return DateUpdated, nil
	default:
		return 0, fmt.Errorf("unknown date basis %q (want created or updated)", s)
	}
}

// Filter returns the query filter value the API expects for this basis.
func (b DateBasis) Filter() string {
	if b == DateUpdated {
		return "updated"
	}
	return "recent"
}

// Timestamp returns the epoch timestamp of r selected by this basis.
func (b DateBasis) Timestamp(r *RawReview) int64 {
	if b == DateUpdated {
		return r.TimestampUpdated
	}
	return r.TimestampCreated
}

func (b DateBasis) String() string {
	if b == DateUpdated {
		return "updated"
	}
	return "created"
}

// RawAuthor is the author object nested in each raw review.
type RawAuthor struct {
	SteamID          string `json:"steamid"`
	PlaytimeAtReview int64  `json:"playtime_at_review"`
}

// RawReview is one review as delivered by the API, before normalization.
type RawReview struct {
	RecommendationID string    `json:"recommendationid"`
	Author           RawAuthor `json:"author"`
	TimestampCreated int64     `json:"timestamp_created"`
	TimestampUpdated int64     `json:"timestamp_updated"`
	Review           string    `json:"review"`
	CommentCount     int       `json:"comment_count"`
	VotesUp          int       `json:"votes_up"`
	VotesFunny       int       `json:"votes_funny"`
	VotedUp          bool      `json:"voted_up"`
}

// QuerySummary carries the per-page and whole-listing record counts.
// TotalReviews is only populated meaningfully on the first page of a run.
type QuerySummary struct {
	NumReviews   int `json:"num_reviews"`
	TotalReviews int `json:"total_reviews"`
}

// Envelope is the decoded response for one page request. The API reports
// success as a 0/1 integer rather than a JSON boolean.
type Envelope struct {
	Success      int          `json:"success"`
	QuerySummary QuerySummary `json:"query_summary"`
	Cursor       string       `json:"cursor"`
	Reviews      []RawReview  `json:"reviews"`
}
