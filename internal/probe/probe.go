// Package probe checks a running httpstatus instance end to end. It
// requests the root path and every status code of a range and
// compares the responses with what the status dispatcher promises.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tonesandtones/httpstatus/internal/status"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 10

var (
	ErrInvalidURL   = errors.New("invalid url")
	ErrInvalidRange = errors.New("invalid status code range")
	ErrChecksFailed = errors.New("checks failed")
)

type Options struct {
	// From is the first status code requested.
	From int

	// To is the last status code requested, inclusive.
	To int

	// Concurrency is the number of requests in flight.
	Concurrency int

	// Timeout applies to each request.
	Timeout time.Duration
}

var DefaultOptions = Options{
	From:        200,
	To:          status.MaxStatusCode,
	Concurrency: 16,
	Timeout:     time.Second,
}

// Check is a single expected exchange.
type Check struct {
	Path       string
	WantStatus int
	WantBody   string
}

// Failure describes a check whose response did not match.
type Failure struct {
	Check

	GotStatus int
	GotBody   string
	Err       error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("GET %s: %s", f.Path, f.Err)
	}

	return fmt.Sprintf("GET %s: want %d %q, got %d %q",
		f.Path, f.WantStatus, f.WantBody, f.GotStatus, f.GotBody)
}

type Report struct {
	Checked  int
	Failures []Failure
}

func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Checks returns the checks for the given range: the root path, one
// path outside the echoed range and each code from..to.
func Checks(from, to int) []Check {
	checks := []Check{
		{Path: "/", WantStatus: http.StatusOK, WantBody: status.HelloBody},
		{Path: "/" + strconv.Itoa(status.MaxStatusCode+1), WantStatus: http.StatusNotFound, WantBody: status.NotFoundBody},
	}

	for code := from; code <= to; code++ {
		checks = append(checks, Check{
			Path:       "/" + strconv.Itoa(code),
			WantStatus: code,
			WantBody:   strconv.Itoa(code),
		})
	}

	return checks
}

// NoBody reports whether the http transport strips the body of
// responses with the given status code.
func NoBody(code int) bool {
	return (code >= 100 && code < 200) ||
		code == http.StatusNoContent ||
		code == http.StatusNotModified
}

type Prober struct {
	base   *url.URL
	client *http.Client
	log    *zap.Logger
}

func New(baseURL string, log *zap.Logger) (*Prober, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, baseURL)
	}

	client := &http.Client{
		// every status is checked as is, redirects included
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Prober{
		base:   base,
		client: client,
		log:    log,
	}, nil
}

// Run executes all checks for the given options. Mismatches do not
// fail the run, they are collected in the report.
func (p *Prober) Run(ctx context.Context, opts Options) (Report, error) {
	if opts.From < status.MinStatusCode || opts.To > status.MaxStatusCode || opts.From > opts.To {
		return Report{}, fmt.Errorf("%w: %d..%d", ErrInvalidRange, opts.From, opts.To)
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	checks := Checks(opts.From, opts.To)

	p.log.Info("probing",
		zap.String("url", p.base.String()),
		zap.Int("from", opts.From),
		zap.Int("to", opts.To),
		zap.Int("checks", len(checks)),
	)

	var (
		mu       sync.Mutex
		failures []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, check := range checks {
		check := check
		g.Go(func() error {
			// a canceled run stops scheduling, it is not a mismatch
			if err := gctx.Err(); err != nil {
				return err
			}

			failure, ok := p.check(gctx, check, opts.Timeout)
			if ok {
				return nil
			}

			p.log.Debug("check failed", zap.Stringer("failure", failure))

			mu.Lock()
			failures = append(failures, failure)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})

	return Report{Checked: len(checks), Failures: failures}, nil
}

func (p *Prober) check(ctx context.Context, check Check, timeout time.Duration) (Failure, bool) {
	failure := Failure{Check: check}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url(check.Path), nil)
	if err != nil {
		failure.Err = err
		return failure, false
	}

	res, err := p.client.Do(req)
	if err != nil {
		failure.Err = err
		return failure, false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		failure.Err = err
		return failure, false
	}

	failure.GotStatus = res.StatusCode
	failure.GotBody = string(body)

	if res.StatusCode != check.WantStatus {
		return failure, false
	}

	// bodies of no-content codes are stripped by the transport
	if NoBody(check.WantStatus) {
		return failure, true
	}

	return failure, failure.GotBody == check.WantBody
}

func (p *Prober) url(path string) string {
	u := *p.base
	u.Path = strings.TrimRight(p.base.Path, "/") + path
	u.RawPath = ""
	return u.String()
}
