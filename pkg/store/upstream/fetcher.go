package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	DefaultRetries = 3
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4 << 10
)

type Options struct {
	BaseURL string
	Retries int
	Backoff Backoff
	Timeout time.Duration
	// HTTPClient overrides the pooled client; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Fetcher issues GET requests against the statistics API, retrying failed
// attempts up to the configured count. Attempts are strictly sequential.
type Fetcher struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewFetcher(opts Options) (*Fetcher, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("upstream base url is empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid upstream base url %q: %w", opts.BaseURL, err)
	}
	if opts.Retries < 1 {
		return nil, fmt.Errorf("retries must be at least 1, got %d", opts.Retries)
	}

	backoff := opts.Backoff
	if backoff == nil {
		backoff = FixedBackoff{Interval: DefaultRetryDelay}
	}

	rc := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	} else {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		rc.HTTPClient.Timeout = timeout
	}
	rc.RetryMax = opts.Retries - 1
	rc.CheckRetry = retryPolicy
	rc.Backoff = func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
		return backoff.Delay(attemptNum + 1)
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = logRetry
	rc.Logger = nil
	if opts.Logger != nil {
		rc.Logger = &leveledLogger{logger: opts.Logger.With().Str("component", "upstream").Logger()}
	}

	return &Fetcher{
		baseURL: base,
		client:  rc,
	}, nil
}

// Fetch performs the request and returns the response body, which is
// guaranteed to be valid JSON.
func (f *Fetcher) Fetch(ctx context.Context, r Request) (json.RawMessage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.endpointURL(r), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.Endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		if res != nil {
			_ = res.Body.Close()
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("endpoint", r.Endpoint).Msg("upstream unreachable")
		return nil, &FetchError{
			Kind:     KindConnectionFailure,
			Endpoint: r.Endpoint,
			Message:  err.Error(),
			Err:      err,
		}
	}
	if res == nil {
		return nil, &FetchError{Kind: KindAttemptsExhausted, Endpoint: r.Endpoint}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		zerolog.Ctx(ctx).Error().
			Str("endpoint", r.Endpoint).
			Int("status", res.StatusCode).
			Msg("upstream returned error status")
		return nil, &FetchError{
			Kind:     KindUpstreamStatus,
			Endpoint: r.Endpoint,
			Status:   res.StatusCode,
			Body:     string(body),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{
			Kind:     KindConnectionFailure,
			Endpoint: r.Endpoint,
			Message:  err.Error(),
			Err:      err,
		}
	}
	if !json.Valid(body) {
		return nil, &FetchError{
			Kind:     KindMalformedResponse,
			Endpoint: r.Endpoint,
			Message:  "response body is not valid JSON",
		}
	}

	return body, nil
}

// FetchInto decodes the response into out. Numbers landing in interface
// values are kept as json.Number.
func (f *Fetcher) FetchInto(ctx context.Context, r Request, out any) error {
	body, err := f.Fetch(ctx, r)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &FetchError{
			Kind:     KindMalformedResponse,
			Endpoint: r.Endpoint,
			Message:  err.Error(),
			Err:      err,
		}
	}
	return nil
}

func (f *Fetcher) endpointURL(r Request) string {
	u := f.baseURL + "/" + strings.TrimLeft(r.Endpoint, "/")
	if len(r.Params) > 0 {
		u += "?" + r.Params.Values().Encode()
	}
	return u
}

// retryPolicy retries every transport error and every HTTP error status.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return resp.StatusCode >= http.StatusBadRequest, nil
}

func logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}
	zerolog.Ctx(req.Context()).Warn().
		Str("url", req.URL.Redacted()).
		Int("attempt", attempt+1).
		Msg("retrying upstream request")
}
