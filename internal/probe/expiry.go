package probe

import (
	"strconv"
	"strings"
	"time"
)

// deriveExpiry interprets a panel's raw exp_date value. Absent or
// non-numeric values are Undefined; an explicit 0 means Unlimited; a value
// beyond now×sanityFactor is a non-expiring sentinel (panels encode "never"
// as absurd far-future numbers); everything else is a Unix timestamp.
func deriveExpiry(raw string, now time.Time, sanityFactor int64) Expiry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Expiry{State: ExpiryUndefined}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return Expiry{State: ExpiryUndefined}
	}
	if n == 0 {
		return Expiry{State: ExpiryUnlimited}
	}
	if sanityFactor > 0 && n > now.Unix()*sanityFactor {
		return Expiry{State: ExpiryNever}
	}
	return Expiry{State: ExpiryDate, Date: time.Unix(n, 0)}
}
