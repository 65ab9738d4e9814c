// Package hgvs resolves genomic coordinates to HGVS variant descriptions
// via the VariantValidator LOVD endpoint.
package hgvs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/variantlab/variantview/internal/vcf"
)

// Path parameters for the LOVD endpoint. The service takes the literal
// strings "True"/"False" for its boolean segments.
const (
	transcriptModel   = "all"
	selectTranscripts = "mane"
	checkOnly         = "True"
	liftover          = "True"
)

// Resolver queries the VariantValidator LOVD endpoint for one genome
// build. Calls are paced so that consecutive requests are at least the
// configured interval apart, whatever their outcome.
type Resolver struct {
	baseURL    string
	build      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewResolver creates a resolver against the given LOVD base URL and
// genome build. minInterval is the minimum spacing between calls.
func NewResolver(baseURL, build string, timeout, minInterval time.Duration) *Resolver {
	return &Resolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		build:      build,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "lovd",
			MaxRequests: 5,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and debug messages.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Resolve looks up the HGVS descriptions for one variant record. A nil
// Resolution with a nil error means the service answered but returned no
// usable variant key, which is a normal outcome rather than a failure.
func (r *Resolver) Resolve(ctx context.Context, rec *vcf.Record) (*Resolution, error) {
	desc := rec.Description()

	fullURL := fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s?content-type=application/json",
		r.baseURL, r.build, desc,
		transcriptModel, selectTranscripts, checkOnly, liftover)
	r.logger.Debug("lovd request", zap.String("url", fullURL))

	body, err := r.get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", desc, err)
	}

	res, err := parseResolution(body)
	if err != nil {
		return nil, fmt.Errorf("parse resolution for %s: %w", desc, err)
	}
	if res == nil {
		r.logger.Warn("no variant key in response", zap.String("variant", desc))
		return nil, nil
	}

	res.VariantDescription = desc
	return res, nil
}

// get fetches one URL through the pacing limiter and the circuit breaker.
// Every call is paced, successful or not.
func (r *Resolver) get(ctx context.Context, fullURL string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := r.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("lovd returned status %d", resp.StatusCode)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
