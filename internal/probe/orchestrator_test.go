package probe

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/xtreamprobe/xtream-probe/internal/pool"
)

func TestOrchestrator_noCredentials(t *testing.T) {
	o := NewOrchestrator(NewProber(Options{Log: quietLog()}), nil, quietLog())
	if res := o.Run(context.Background(), "just chatter, no urls", ""); len(res) != 0 {
		t.Errorf("results = %v, want none", res)
	}
}

func TestOrchestrator_partialFailureAcrossFiveCredentials(t *testing.T) {
	srv := fakePanel(t, panelOpts{failActions: map[string]bool{"get_vod_streams": true}})
	defer srv.Close()

	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%s/player_api.php?username=user%d&password=pw\n", srv.URL, i)
	}

	o := NewOrchestrator(NewProber(Options{Log: quietLog()}), pool.New("servers", 5), quietLog())
	results := o.Run(context.Background(), b.String(), "")

	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want one record per credential set", len(results))
	}
	for i, r := range results {
		if !r.Authenticated {
			t.Errorf("results[%d]: not authenticated", i)
		}
		if r.VODCount != 0 {
			t.Errorf("results[%d]: VODCount = %d, want 0 (unreachable action)", i, r.VODCount)
		}
		if r.LiveCount != 2 || r.SeriesCount != 1 {
			t.Errorf("results[%d]: reachable counts = %d/%d", i, r.LiveCount, r.SeriesCount)
		}
		if r.Credentials.Username != fmt.Sprintf("user%d", i) {
			t.Errorf("results[%d]: username = %q (extraction order lost)", i, r.Credentials.Username)
		}
	}
}

func TestOrchestrator_deadPanelStillReported(t *testing.T) {
	good := fakePanel(t, panelOpts{})
	defer good.Close()
	dead := fakePanel(t, panelOpts{})
	dead.Close() // connection refused from here on

	text := good.URL + "/get.php?username=a&password=b\n" +
		dead.URL + "/get.php?username=c&password=d"

	o := NewOrchestrator(NewProber(Options{Log: quietLog()}), nil, quietLog())
	results := o.Run(context.Background(), text, "")

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (failures are records, not absences)", len(results))
	}
	if !results[0].Authenticated || results[1].Authenticated {
		t.Errorf("authenticated flags = %v/%v", results[0].Authenticated, results[1].Authenticated)
	}
}

func TestSortByAuthenticated(t *testing.T) {
	results := []Result{
		{Authenticated: false, LiveCount: 1},
		{Authenticated: true, LiveCount: 2},
		{Authenticated: false, LiveCount: 3},
		{Authenticated: true, LiveCount: 4},
	}
	SortByAuthenticated(results)
	if !results[0].Authenticated || !results[1].Authenticated {
		t.Errorf("successes should sort first: %+v", results)
	}
	// Stable within each class.
	if results[0].LiveCount != 2 || results[1].LiveCount != 4 {
		t.Errorf("success order changed: %d, %d", results[0].LiveCount, results[1].LiveCount)
	}
	if results[2].LiveCount != 1 || results[3].LiveCount != 3 {
		t.Errorf("failure order changed: %d, %d", results[2].LiveCount, results[3].LiveCount)
	}
}
