// Package clinvar resolves clinical annotations for genomic HGVS variant
// descriptions against the NCBI eutils ClinVar endpoints. Lookups run in
// two phases: an esearch by exact variant name yields record identifiers,
// and an esummary on the first identifier yields the document the
// annotation fields are extracted from.
package clinvar

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client queries the ClinVar eutils endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a ClinVar client against the given eutils base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "clinvar",
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
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Annotate resolves the clinical annotation for one genomic HGVS string.
// An empty hgvs short-circuits to the not-found annotation without any
// network call. A not-found annotation with a nil error means the service
// answered but has no matching record; a non-nil error means the service
// could not be reached.
func (c *Client) Annotate(ctx context.Context, hgvs string) (*Annotation, error) {
	if hgvs == "" {
		return NotFoundAnnotation(hgvs), nil
	}

	ids, err := c.search(ctx, hgvs)
	if err != nil {
		return nil, fmt.Errorf("search clinvar: %w", err)
	}
	if len(ids) == 0 {
		c.logger.Warn("no clinvar record", zap.String("hgvs", hgvs))
		return NotFoundAnnotation(hgvs), nil
	}

	// More than one identifier: take the first, in service order.
	doc, err := c.summary(ctx, ids[0])
	if err != nil {
		return nil, fmt.Errorf("fetch clinvar summary: %w", err)
	}
	if doc == nil {
		return NotFoundAnnotation(hgvs), nil
	}

	return extract(doc, hgvs, ids[0]), nil
}

// search runs the esearch phase and returns the matching record identifiers.
func (c *Client) search(ctx context.Context, hgvs string) ([]string, error) {
	params := url.Values{
		"db":      {"clinvar"},
		"term":    {fmt.Sprintf(`"%s"[variant name]`, hgvs)},
		"retmode": {"xml"},
	}

	var result searchResult
	if err := c.getXML(ctx, "esearch.fcgi", params, &result); err != nil {
		return nil, err
	}
	return result.IDs, nil
}

// summary runs the esummary phase for one record identifier. A nil
// document with a nil error means the service returned no summary.
func (c *Client) summary(ctx context.Context, id string) (*documentSummary, error) {
	params := url.Values{
		"db":      {"clinvar"},
		"id":      {id},
		"retmode": {"xml"},
	}

	var result summaryResult
	if err := c.getXML(ctx, "esummary.fcgi", params, &result); err != nil {
		return nil, err
	}
	if len(result.Summaries) == 0 {
		return nil, nil
	}
	return &result.Summaries[0], nil
}

// getXML fetches one eutils endpoint through the circuit breaker and
// unmarshals the XML body into out.
func (c *Client) getXML(ctx context.Context, endpoint string, params url.Values, out any) error {
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	c.logger.Debug("clinvar request", zap.String("url", fullURL))

	body, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return b, nil
	})
	if err != nil {
		return err
	}

	if err := xml.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("parse %s response: %w", endpoint, err)
	}
	return nil
}
