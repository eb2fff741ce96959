package models

// Review is a visitor's review of a startup, read from Postgres.
// IsAnonymous controls whether the reviewer's email may appear in
// aggregated dashboard output; the dashboard redacts Email itself when
// it is set.
type Review struct {
	ID               int64   `json:"-"`
	TenantID         string  `json:"-"`
	Email            string  `json:"email"`
	OveralRating     int     `json:"overalRating"`
	TeamValue        *int    `json:"teamValue"`
	ProblemValue     *int    `json:"problemValue"`
	SolutionValue    *int    `json:"solutionValue"`
	GtmStrategyValue *int    `json:"gtmstrategyValue"`
	MarketOppValue   *int    `json:"marketoppValue"`
	Details          *string `json:"details"`
	IsAnonymous      bool    `json:"-"`
}
