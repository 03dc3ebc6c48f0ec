// Package xtream is a client for the Xtream-Codes player_api.php endpoint.
// Every call returns either a decoded payload or a *CallError carrying the
// failure kind; the caller decides which default the missing value gets.
// Nothing here retries; a failed attempt is final for that call.
package xtream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xtreamprobe/xtream-probe/internal/httpclient"
	"github.com/xtreamprobe/xtream-probe/internal/metrics"
)

// Catalog actions on the authenticated endpoint.
const (
	ActionLive           = "get_live_streams"
	ActionVOD            = "get_vod_streams"
	ActionSeries         = "get_series"
	ActionLiveCategories = "get_live_categories"
	ActionSeriesInfo     = "get_series_info"
)

// Kind classifies a failed player_api call.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindTimeout    Kind = "timeout"
	KindBadStatus  Kind = "bad_status"
	KindBadPayload Kind = "bad_payload"
)

// CallError is one failed API call. It never escapes the prober as a
// user-facing error; callers match on Kind and keep the documented default
// for whatever field the call would have filled.
type CallError struct {
	Action string
	Kind   Kind
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Action, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Client talks to one panel with one credential pair. Calls are paced by a
// per-client limiter and the process-wide per-host semaphore so concurrent
// probes stay polite toward the panel.
type Client struct {
	Base     string
	Username string
	Password string

	http    *http.Client
	limiter *rate.Limiter
}

// New returns a client for base with the given credentials. hc may be nil
// (the shared tuned client is used).
func New(base, user, pass string, hc *http.Client) *Client {
	if hc == nil {
		hc = httpclient.Default()
	}
	return &Client{
		Base:     strings.TrimSuffix(base, "/"),
		Username: user,
		Password: pass,
		http:     hc,
		limiter:  rate.NewLimiter(rate.Limit(8), 4),
	}
}

// endpoint builds the authenticated URL. Credentials are percent-encoded;
// panels hand out passwords with &, + and friends in them.
func (c *Client) endpoint(action string, extra url.Values) string {
	u := c.Base + "/player_api.php?username=" + url.QueryEscape(c.Username) +
		"&password=" + url.QueryEscape(c.Password)
	if action != "" {
		u += "&action=" + action
	}
	for k, vs := range extra {
		for _, v := range vs {
			u += "&" + k + "=" + url.QueryEscape(v)
		}
	}
	return u
}

func (c *Client) get(ctx context.Context, action string, extra url.Values, timeout time.Duration) ([]byte, *CallError) {
	label := action
	if label == "" {
		label = "auth"
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(label, classify(err), err)
	}
	release := httpclient.PanelSem.Acquire(c.Base)
	defer release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(action, extra), nil)
	if err != nil {
		return nil, c.fail(label, KindNetwork, err)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(label, classify(err), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(label, KindBadStatus, fmt.Errorf("%s", resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(label, classify(err), err)
	}
	metrics.APIRequestsTotal.WithLabelValues(label, "ok").Inc()
	return body, nil
}

func (c *Client) fail(label string, kind Kind, err error) *CallError {
	metrics.APIRequestsTotal.WithLabelValues(label, string(kind)).Inc()
	return &CallError{Action: label, Kind: kind, Err: err}
}

// classify maps a transport error to a failure kind. Timeouts are separated
// from other network failures only for reporting; both degrade the same way.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// Authenticate performs the bare player_api call and returns the account
// section. A payload without user_info is a KindBadPayload failure: the
// panel answered but the login did not succeed.
func (c *Client) Authenticate(ctx context.Context, timeout time.Duration) (*AccountInfo, *CallError) {
	body, cerr := c.get(ctx, "", nil, timeout)
	if cerr != nil {
		return nil, cerr
	}
	var payload struct {
		UserInfo *struct {
			ExpDate        any `json:"exp_date"`
			ActiveCons     any `json:"active_cons"`
			MaxConnections any `json:"max_connections"`
		} `json:"user_info"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &CallError{Action: "auth", Kind: KindBadPayload, Err: err}
	}
	if payload.UserInfo == nil {
		return nil, &CallError{Action: "auth", Kind: KindBadPayload, Err: errors.New("no user_info section")}
	}
	return &AccountInfo{
		ExpDate:        anyToString(payload.UserInfo.ExpDate, ""),
		ActiveCons:     anyToString(payload.UserInfo.ActiveCons, "0"),
		MaxConnections: anyToString(payload.UserInfo.MaxConnections, "0"),
	}, nil
}

func (c *Client) listAction(ctx context.Context, action string, timeout time.Duration) ([]Item, *CallError) {
	body, cerr := c.get(ctx, action, nil, timeout)
	if cerr != nil {
		return nil, cerr
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &CallError{Action: action, Kind: KindBadPayload, Err: fmt.Errorf("expected a list: %w", err)}
	}
	return items, nil
}

// LiveStreams returns the live channel catalog.
func (c *Client) LiveStreams(ctx context.Context, timeout time.Duration) ([]Item, *CallError) {
	return c.listAction(ctx, ActionLive, timeout)
}

// VODStreams returns the video-on-demand catalog.
func (c *Client) VODStreams(ctx context.Context, timeout time.Duration) ([]Item, *CallError) {
	return c.listAction(ctx, ActionVOD, timeout)
}

// SeriesList returns the series catalog.
func (c *Client) SeriesList(ctx context.Context, timeout time.Duration) ([]Item, *CallError) {
	return c.listAction(ctx, ActionSeries, timeout)
}

// LiveCategories returns the live category names.
func (c *Client) LiveCategories(ctx context.Context, timeout time.Duration) ([]Category, *CallError) {
	body, cerr := c.get(ctx, ActionLiveCategories, nil, timeout)
	if cerr != nil {
		return nil, cerr
	}
	var cats []Category
	if err := json.Unmarshal(body, &cats); err != nil {
		return nil, &CallError{Action: ActionLiveCategories, Kind: KindBadPayload, Err: fmt.Errorf("expected a list: %w", err)}
	}
	return cats, nil
}

// SeriesInfo returns the episodes-by-season mapping for one series. Season
// keys arrive as strings; episode order within a season is as the panel
// lists it.
func (c *Client) SeriesInfo(ctx context.Context, seriesID string, timeout time.Duration) (map[string][]Episode, *CallError) {
	extra := url.Values{"series_id": {seriesID}}
	body, cerr := c.get(ctx, ActionSeriesInfo, extra, timeout)
	if cerr != nil {
		return nil, cerr
	}
	var payload struct {
		Episodes map[string][]Episode `json:"episodes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &CallError{Action: ActionSeriesInfo, Kind: KindBadPayload, Err: err}
	}
	return payload.Episodes, nil
}
