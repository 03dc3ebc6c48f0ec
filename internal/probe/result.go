// Package probe authenticates extracted credential sets and aggregates one
// report record per set: account metadata, catalog counts, adult-content
// flag, domain acceptance, and optional search matches.
package probe

import (
	"time"

	"github.com/xtreamprobe/xtream-probe/internal/extract"
)

// ExpiryState classifies the expiration a panel reported for an account.
type ExpiryState int

const (
	// ExpiryLoginFailed is the default for a probe whose authentication
	// never produced an account payload.
	ExpiryLoginFailed ExpiryState = iota
	// ExpiryUndefined: the panel reported nothing usable.
	ExpiryUndefined
	// ExpiryUnlimited: the panel's explicit zero sentinel.
	ExpiryUnlimited
	// ExpiryNever: an implausibly far-future timestamp, treated as a
	// non-expiring sentinel.
	ExpiryNever
	// ExpiryDate: a real calendar date, in Expiry.Date.
	ExpiryDate
)

// Expiry is the derived expiration of an account.
type Expiry struct {
	State ExpiryState
	Date  time.Time // set only for ExpiryDate
}

func (e Expiry) String() string {
	switch e.State {
	case ExpiryUndefined:
		return "undefined"
	case ExpiryUnlimited:
		return "unlimited"
	case ExpiryNever:
		return "never expires"
	case ExpiryDate:
		return e.Date.Format("02/01/2006")
	default:
		return "login failed"
	}
}

// Account is the metadata of a successfully authenticated account.
// Connection counts are the panel's own strings, passed through verbatim.
type Account struct {
	Expiry     Expiry
	ActiveCons string
	MaxCons    string
}

// SearchMatches collects catalog entries whose folded names contain the
// search term. Series map to a latest-episode tag (or the unavailable
// marker). Nil slices/maps mean no matches of that kind.
type SearchMatches struct {
	Channels []string
	Movies   []string
	Series   map[string]string
}

// Empty reports whether no kind produced a match.
func (m *SearchMatches) Empty() bool {
	return m == nil || (len(m.Channels) == 0 && len(m.Movies) == 0 && len(m.Series) == 0)
}

// Result is the aggregated outcome of probing one credential set. When
// Authenticated is false every other network-derived field holds its
// default; DomainAccepted is address-derived and is always computed.
type Result struct {
	Credentials extract.CredentialSet

	Authenticated bool
	Account       Account
	AuthLatency   time.Duration

	LiveCount   int
	VODCount    int
	SeriesCount int

	HasAdultContent bool
	DomainAccepted  bool

	// Matches is nil when no search term was supplied.
	Matches *SearchMatches
}

// newResult returns the failure-state record every probe starts from.
func newResult(cs extract.CredentialSet) Result {
	return Result{
		Credentials: cs,
		Account: Account{
			Expiry:     Expiry{State: ExpiryLoginFailed},
			ActiveCons: "0",
			MaxCons:    "0",
		},
	}
}
