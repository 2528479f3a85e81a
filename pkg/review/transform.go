package review

import (
	"time"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/steam"
)

// DateFormat is the calendar date layout used for Record.Date.
const DateFormat = "2006-01-02"

// Transformer maps raw API reviews to canonical records. It is pure and
// carries no state, only the date-basis selection and the timezone in which
// source timestamps are converted to calendar dates.
type Transformer struct {
	basis    steam.DateBasis
	location *time.Location
}

// NewTransformer creates a transformer for the given date basis. A nil
// location defaults to time.Local, which matches the historical behavior of
// this tool; pass time.UTC for timezone-independent output.
func NewTransformer(basis steam.DateBasis, location *time.Location) Transformer {
	if location == nil {
		location = time.Local
	}
	return Transformer{basis: basis, location: location}
}

// Transform converts one raw review into its canonical record. A raw
// review missing its recommendation id or author id is a protocol
// violation by the source and yields a *steam.ProtocolError.
func (t Transformer) Transform(raw steam.RawReview) (Record, error) {
	if raw.RecommendationID == "" {
		return Record{}, &steam.ProtocolError{Reason: "review missing recommendationid"}
	}
	if raw.Author.SteamID == "" {
		return Record{}, &steam.ProtocolError{Reason: "review missing author.steamid"}
	}

	ts := t.basis.Timestamp(&raw)

	return Record{
		ID:          Digest(raw.RecommendationID),
		Author:      Digest(raw.Author.SteamID),
		Date:        time.Unix(ts, 0).In(t.location).Format(DateFormat),
		Hours:       raw.Author.PlaytimeAtReview,
		Content:     raw.Review,
		Comments:    raw.CommentCount,
		Source:      Source,
		Helpful:     raw.VotesUp,
		Funny:       raw.VotesFunny,
		Recommended: raw.VotedUp,
	}, nil
}

// TransformAll converts a page of raw reviews, preserving arrival order.
func (t Transformer) TransformAll(raws []steam.RawReview) ([]Record, error) {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := t.Transform(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
