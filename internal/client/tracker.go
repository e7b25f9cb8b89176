package client

import (
	"context"
	"encoding/json"
	"esports-tracker/internal/analytics"
	"esports-tracker/internal/config"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/domain"
	"esports-tracker/internal/server"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
)

// TrackerClient reads the report endpoints as typed rows; it never parses
// rendered pages.
type TrackerClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewTrackerClient(cfg *config.Config) *TrackerClient {
	return &TrackerClient{
		baseURL: cfg.TrackerURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Snapshot is one decoded report response plus its metadata headers.
type Snapshot struct {
	Rows     []analytics.Row
	Start    string
	End      string
	Excluded int
	Top      string
}

func (c *TrackerClient) Leaderboard(ctx context.Context) (*Snapshot, error) {
	return c.get(ctx, c.baseURL+"/api/leaderboard")
}

func (c *TrackerClient) Report(ctx context.Context, r domain.DateRange) (*Snapshot, error) {
	q := url.Values{}
	if s := r.StartString(); s != "" {
		q.Set("start", s)
	}
	if e := r.EndString(); e != "" {
		q.Set("end", e)
	}
	u := c.baseURL + "/api/report"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return c.get(ctx, u)
}

func (c *TrackerClient) get(ctx context.Context, u string) (*Snapshot, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("request %s: %w", u, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, constants.ClientTimeout); err != nil {
			return nil, fmt.Errorf("request %s: %w", u, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("tracker error: %d: %s", resp.StatusCode(), resp.Body())
	}

	snap := &Snapshot{
		Start: string(resp.Header.Peek(server.HeaderReportStart)),
		End:   string(resp.Header.Peek(server.HeaderReportEnd)),
		Top:   string(resp.Header.Peek(server.HeaderTopPerformer)),
	}
	if v := string(resp.Header.Peek(server.HeaderExcluded)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad %s header %q: %w", server.HeaderExcluded, v, err)
		}
		snap.Excluded = n
	}
	if err := json.Unmarshal(resp.Body(), &snap.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return snap, nil
}
