package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TrendSentinel/internal/model"
)

// DataLabFetcher implements Fetcher using the Naver DataLab search API.
type DataLabFetcher struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Client       *http.Client
}

// NewDataLabFetcher creates a DataLab fetcher with optional proxy support.
func NewDataLabFetcher(clientID, clientSecret, baseURL, proxyURL string) *DataLabFetcher {
	if baseURL == "" {
		baseURL = "https://openapi.naver.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DataLabFetcher{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (f *DataLabFetcher) Name() string { return "datalab" }

type datalabGroup struct {
	GroupName string   `json:"groupName"`
	Keywords  []string `json:"keywords"`
}

type datalabRequest struct {
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	TimeUnit      string         `json:"timeUnit"`
	KeywordGroups []datalabGroup `json:"keywordGroups"`
}

// datalabPoint tolerates ratio arriving as number or string.
type datalabPoint struct {
	Period string      `json:"period"`
	Ratio  interface{} `json:"ratio"`
}

// datalabResponse covers both response shapes seen in the wild: the
// documented group/series form and a flat period/ratio series.
type datalabResponse struct {
	Results []struct {
		Title    string         `json:"title"`
		Keywords []string       `json:"keywords"`
		Data     []datalabPoint `json:"data"`
	} `json:"results"`
	Data []datalabPoint `json:"data"`
}

func timeUnitFor(g model.Granularity) string {
	switch g {
	case model.GranularityDay:
		return "date"
	case model.GranularityMonth:
		return "month"
	default:
		return "week"
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// FetchSeries issues one batched request covering all keyword groups and
// normalizes the response into one bundle per group.
func (f *DataLabFetcher) FetchSeries(ctx context.Context, keywords []string, window model.TimeWindow) ([]model.SeriesBundle, error) {
	groups := make([]datalabGroup, 0, len(keywords))
	for _, kw := range keywords {
		groups = append(groups, datalabGroup{GroupName: kw, Keywords: []string{kw}})
	}

	payload := datalabRequest{
		StartDate:     window.StartDate.Format("2006-01-02"),
		EndDate:       window.EndDate.Format("2006-01-02"),
		TimeUnit:      timeUnitFor(window.Granularity),
		KeywordGroups: groups,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal datalab request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", f.BaseURL+"/v1/datalab/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create datalab request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Naver-Client-Id", f.ClientID)
	req.Header.Set("X-Naver-Client-Secret", f.ClientSecret)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datalab fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datalab read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datalab: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed datalabResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("datalab decode: %w", err)
	}

	bundles := normalize(keywords, &parsed)
	if len(bundles) == 0 {
		return nil, fmt.Errorf("datalab: no data returned")
	}
	return bundles, nil
}

// normalize converts either response shape into bundles keyed by the
// requested keyword order. Points with non-numeric ratios are dropped.
func normalize(keywords []string, parsed *datalabResponse) []model.SeriesBundle {
	var bundles []model.SeriesBundle

	if len(parsed.Results) > 0 {
		for i, result := range parsed.Results {
			group := result.Title
			if group == "" && i < len(keywords) {
				group = keywords[i]
			}
			points := normalizePoints(result.Data)
			if len(points) == 0 {
				continue
			}
			bundles = append(bundles, model.SeriesBundle{
				KeywordGroup: group,
				Points:       points,
				Source:       model.SourceLive,
			})
		}
		return bundles
	}

	if len(parsed.Data) > 0 && len(keywords) > 0 {
		points := normalizePoints(parsed.Data)
		if len(points) > 0 {
			bundles = append(bundles, model.SeriesBundle{
				KeywordGroup: keywords[0],
				Points:       points,
				Source:       model.SourceLive,
			})
		}
	}
	return bundles
}

func normalizePoints(data []datalabPoint) []model.SeriesPoint {
	points := make([]model.SeriesPoint, 0, len(data))
	for _, d := range data {
		v, ok := toFloat(d.Ratio)
		if !ok {
			continue
		}
		points = append(points, model.SeriesPoint{Date: d.Period, Value: v})
	}
	return points
}
