package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBaseURL     = "https://www.fotmob.com"
	defaultCountryCode = "EGY"
	leaguesPath        = "/api/leagues"
)

// Numbers stay json.Number so ids keep their exact textual form.
var payloadJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	userAgent   func() string
}

func NewClient(baseURL, countryCode string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(countryCode) == "" {
		countryCode = defaultCountryCode
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		countryCode: strings.ToUpper(strings.TrimSpace(countryCode)),
		httpClient:  httpClient,
		userAgent:   randomUserAgent,
	}
}

// GetLeague loads the raw league payload for id.
func (c *Client) GetLeague(ctx context.Context, id models.LeagueID) (map[string]any, error) {
	ctx, span := otel.Tracer("fotmob/client").Start(ctx, "fotmob.GetLeague",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("league_id", string(id))),
	)
	defer span.End()

	payload, err := c.Get(ctx, c.LeagueURL(id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return payload, nil
}

// LeagueURL builds the league endpoint address.
func (c *Client) LeagueURL(id models.LeagueID) string {
	q := url.Values{}
	q.Set("id", string(id))
	q.Set("ccode3", c.countryCode)
	return c.baseURL + leaguesPath + "?" + q.Encode()
}

// Get issues one GET to reqURL with a User-Agent from the pool and decodes
// the body as a JSON object.
func (c *Client) Get(ctx context.Context, reqURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", derr.ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: do request: %v", derr.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status: %s", derr.ErrTransport, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read response: %v", derr.ErrTransport, err)
	}

	// Unmarshal rejects anything but whitespace after the object.
	var payload map[string]any
	if err := payloadJSON.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", derr.ErrDecode, err)
	}

	return payload, nil
}
