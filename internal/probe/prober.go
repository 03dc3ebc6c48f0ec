package probe

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xtreamprobe/xtream-probe/internal/classify"
	"github.com/xtreamprobe/xtream-probe/internal/domain"
	"github.com/xtreamprobe/xtream-probe/internal/extract"
	"github.com/xtreamprobe/xtream-probe/internal/pool"
	"github.com/xtreamprobe/xtream-probe/internal/series"
	"github.com/xtreamprobe/xtream-probe/internal/xtream"
)

// Options configures a Prober. Zero values fall back to sane defaults.
type Options struct {
	Allowlist  *domain.Allowlist
	Classifier *classify.Classifier
	Resolver   *series.Resolver
	Inner      *pool.Pool // catalog-action pool, shared across probes
	HTTPClient *http.Client

	AuthTimeout     time.Duration
	ActionTimeout   time.Duration
	DetailTimeout   time.Duration
	CategoryTimeout time.Duration

	// ExpirySanityFactor: expiry timestamps above now×factor count as
	// "never expires". See config.
	ExpirySanityFactor int64

	Log *logrus.Logger
	Now func() time.Time // test hook
}

// Prober runs the full probe of one credential set: authentication, account
// metadata, domain check, adult-content classification, and catalog polling.
type Prober struct {
	allowlist  *domain.Allowlist
	classifier *classify.Classifier
	resolver   *series.Resolver
	inner      *pool.Pool
	httpClient *http.Client

	authTimeout     time.Duration
	actionTimeout   time.Duration
	categoryTimeout time.Duration

	sanityFactor int64
	log          *logrus.Logger
	now          func() time.Time
}

// NewProber builds a Prober from opts.
func NewProber(opts Options) *Prober {
	p := &Prober{
		allowlist:       opts.Allowlist,
		classifier:      opts.Classifier,
		resolver:        opts.Resolver,
		inner:           opts.Inner,
		httpClient:      opts.HTTPClient,
		authTimeout:     opts.AuthTimeout,
		actionTimeout:   opts.ActionTimeout,
		categoryTimeout: opts.CategoryTimeout,
		sanityFactor:    opts.ExpirySanityFactor,
		log:             opts.Log,
		now:             opts.Now,
	}
	if p.allowlist == nil {
		p.allowlist = domain.NewAllowlist(nil)
	}
	if p.classifier == nil {
		p.classifier = classify.New(nil, 0)
	}
	if p.resolver == nil {
		p.resolver = series.NewResolver(opts.DetailTimeout)
	}
	if p.inner == nil {
		p.inner = pool.New("actions", 3)
	}
	if p.authTimeout <= 0 {
		p.authTimeout = 12 * time.Second
	}
	if p.actionTimeout <= 0 {
		p.actionTimeout = 15 * time.Second
	}
	if p.categoryTimeout <= 0 {
		p.categoryTimeout = 10 * time.Second
	}
	if p.sanityFactor <= 0 {
		p.sanityFactor = 200
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Probe authenticates one credential set and returns its report record.
// Every failure mode is a terminal state of the record, never an error: a
// dead panel yields an unauthenticated record with defaults, and a single
// failed catalog action costs only its own field.
func (p *Prober) Probe(ctx context.Context, cs extract.CredentialSet, search string) Result {
	res := newResult(cs)
	// Address-derived, independent of anything the network says.
	res.DomainAccepted = p.allowlist.Accepts(cs.Base)

	cl := xtream.New(cs.Base, cs.Username, cs.Password, p.httpClient)
	start := time.Now()
	acct, cerr := cl.Authenticate(ctx, p.authTimeout)
	res.AuthLatency = time.Since(start)
	if cerr != nil {
		p.log.WithField("server", cs.Display).WithField("kind", string(cerr.Kind)).
			Info("login failed")
		return res
	}
	res.Authenticated = true
	res.Account = Account{
		Expiry:     deriveExpiry(acct.ExpDate, p.now(), p.sanityFactor),
		ActiveCons: acct.ActiveCons,
		MaxCons:    acct.MaxConnections,
	}

	// The category call for classification runs alongside the catalog poll;
	// both must finish (or time out) before the record is final.
	var adultFromCategories bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cats, cerr := cl.LiveCategories(ctx, p.categoryTimeout)
		if cerr != nil {
			// Classification never fails a probe.
			p.warnAction(cl, cerr)
			return
		}
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = c.CategoryName
		}
		adultFromCategories = p.classifier.AnyName(names)
	}()

	poll := p.pollCatalog(ctx, cl, search)
	wg.Wait()

	res.LiveCount = poll.liveCount
	res.VODCount = poll.vodCount
	res.SeriesCount = poll.seriesCount
	res.HasAdultContent = adultFromCategories ||
		p.classifier.AnyName(p.classifier.Sample(poll.liveNames))

	if search != "" {
		res.Matches = &SearchMatches{
			Channels: poll.channelMatches,
			Movies:   poll.movieMatches,
			Series:   poll.seriesMatches,
		}
	}

	p.log.WithFields(logrus.Fields{
		"server": cs.Display,
		"live":   res.LiveCount,
		"vod":    res.VODCount,
		"series": res.SeriesCount,
	}).Info("probe complete")
	return res
}
