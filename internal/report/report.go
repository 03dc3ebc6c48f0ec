// Package report renders probe records as plain text for the CLI. Records
// arrive fully computed; nothing here touches the network.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xtreamprobe/xtream-probe/internal/probe"
)

// MaxMatchesShown caps how many search hits are printed per catalog kind.
const MaxMatchesShown = 10

// Render writes one block per record, in the order given.
func Render(w io.Writer, results []probe.Result, search string) {
	for _, r := range results {
		mark := "FAIL"
		if r.Authenticated {
			mark = "OK"
		}
		fmt.Fprintf(w, "[%s] %s (%dms)\n", mark, r.Credentials.Display, r.AuthLatency.Milliseconds())
		fmt.Fprintf(w, "  server: %s\n", r.Credentials.Base)
		fmt.Fprintf(w, "  user: %s  pass: %s\n", r.Credentials.Username, r.Credentials.Password)
		fmt.Fprintf(w, "  expires: %s  domain ok: %s\n", r.Account.Expiry, yesNo(r.DomainAccepted))
		if r.Authenticated {
			fmt.Fprintf(w, "  live: %d  vod: %d  series: %d\n", r.LiveCount, r.VODCount, r.SeriesCount)
			fmt.Fprintf(w, "  connections: %s/%s  adult content: %s\n",
				r.Account.ActiveCons, r.Account.MaxCons, yesNo(r.HasAdultContent))
		}
		if search != "" && !r.Matches.Empty() {
			fmt.Fprintf(w, "  matches for %q:\n", search)
			renderList(w, "channels", r.Matches.Channels)
			renderList(w, "movies", r.Matches.Movies)
			renderSeries(w, r.Matches.Series)
		}
		fmt.Fprintln(w)
	}
}

func renderList(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "    %s:\n", label)
	shown := names
	if len(shown) > MaxMatchesShown {
		shown = shown[:MaxMatchesShown]
	}
	for _, n := range shown {
		fmt.Fprintf(w, "      - %s\n", n)
	}
	if extra := len(names) - len(shown); extra > 0 {
		fmt.Fprintf(w, "      … and %d more\n", extra)
	}
}

func renderSeries(w io.Writer, series map[string]string) {
	if len(series) == 0 {
		return
	}
	names := make([]string, 0, len(series))
	for n := range series {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "    series:")
	for _, n := range names {
		fmt.Fprintf(w, "      - %s (%s)\n", n, series[n])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
