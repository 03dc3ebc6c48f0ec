// Package extract pulls Xtream credential triples out of free-form text.
// Chat messages and pasted lists carry playlist-style (get.php) and
// API-style (player_api.php) URLs; both embed username and password as
// query parameters.
package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// CredentialSet identifies one account on one server. Base is the request
// address (scheme+host+optional port, canonicalised to http, no trailing
// slash); Display is the host without port, for report output only.
type CredentialSet struct {
	Base     string
	Display  string
	Username string
	Password string
}

var (
	playlistRe = regexp.MustCompile(`https?://[^\s]+?get\.php\?username=([^\s&]+)&password=([^\s&]+)`)
	apiRe      = regexp.MustCompile(`https?://[^\s]+?player_api\.php\?username=([^\s&]+)&password=([^\s&]+)`)
	baseRe     = regexp.MustCompile(`^https?://[^/\s]+`)
)

// FromText scans text for credential-bearing URLs and returns the distinct
// credential sets in first-seen order. Duplicates (same base, username,
// and password, regardless of URL shape or scheme) collapse to one entry.
// An empty slice means no credentials were found; that is not an error.
func FromText(text string) []CredentialSet {
	var out []CredentialSet
	seen := make(map[[3]string]bool)
	for _, re := range []*regexp.Regexp{playlistRe, apiRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			full, user, pass := m[0], m[1], m[2]
			base := baseRe.FindString(full)
			if base == "" {
				continue
			}
			// Many panels present broken TLS; requests go over plain http
			// and https variants dedupe onto the same entry.
			base = strings.TrimSuffix(strings.Replace(base, "https://", "http://", 1), "/")
			key := [3]string{base, user, pass}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, CredentialSet{
				Base:     base,
				Display:  displayHost(base),
				Username: user,
				Password: pass,
			})
		}
	}
	return out
}

func displayHost(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Hostname() == "" {
		return strings.TrimPrefix(base, "http://")
	}
	return u.Hostname()
}
