// Package api is the client of the remote CV analysis service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvfile"
)

const (
	DefaultAPIURL = "http://localhost:5000"
	userAgent     = "spigell/cv-analyzer"

	PathDetectIndustry = "/api/detect-industry"
	PathAnalyze        = "/api/analyze-cv-multiple"
	PathJDDiff         = "/api/jd-diff"
	PathJDDiffFromText = "/api/jd-diff-from-text"
	PathStarCoach      = "/api/star-coach"
	PathContact        = "/api/contact"
)

// ErrEmptyResponse is returned when a 2xx answer lacks the expected payload.
var ErrEmptyResponse = errors.New("empty response payload")

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client for apiURL. A zero timeout leaves requests unbounded,
// the analysis calls can take minutes.
func New(logger *zap.Logger, apiURL string, timeout time.Duration) *Client {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger:     logger,
		APIURL:     apiURL,
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
	}
}

// DetectIndustry asks the service to guess the industry of the given postings.
func (c *Client) DetectIndustry(ctx context.Context, urls []string) (string, error) {
	var resp struct {
		Industry string `json:"industry"`
	}

	if err := c.postJSON(ctx, PathDetectIndustry, map[string][]string{"jobUrls": urls}, &resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Industry), nil
}

// AnalyzeCV uploads the CV with the job links and returns the analysis.
func (c *Client) AnalyzeCV(ctx context.Context, req *AnalyzeRequest) (*AnalysisResult, error) {
	jobURLs, err := json.Marshal(req.URLs)
	if err != nil {
		return nil, err
	}

	fields := []formField{
		{Name: "urls", Value: strings.Join(req.URLs, "\n")},
		{Name: "jobUrls", Value: string(jobURLs)},
		{Name: "plan", Value: req.Plan},
		{Name: "additionalDescription", Value: req.Description},
		{Name: "selectedIndustry", Value: req.Industry},
	}

	var resp struct {
		Analysis *AnalysisResult `json:"analysis"`
	}

	if err := c.postMultipart(ctx, PathAnalyze, fields, []formFile{{Name: "cv", File: req.CV}}, &resp); err != nil {
		return nil, err
	}

	if resp.Analysis == nil {
		return nil, fmt.Errorf("%s: %w", PathAnalyze, ErrEmptyResponse)
	}

	return resp.Analysis, nil
}

// JDDiffFromLinks compares 2-5 postings by URL. cv may be nil.
func (c *Client) JDDiffFromLinks(ctx context.Context, urls []string, cv *cvfile.File) (*Diff, error) {
	jobURLs, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}

	var resp diffResponse
	err = c.postMultipart(ctx, PathJDDiff,
		[]formField{{Name: "jobUrls", Value: string(jobURLs)}},
		[]formFile{{Name: "cv", File: cv}},
		&resp,
	)
	if err != nil {
		return nil, err
	}

	return resp.result(PathJDDiff)
}

// JDDiffFromText compares pasted job descriptions. labels may be shorter than texts.
func (c *Client) JDDiffFromText(ctx context.Context, texts, labels []string) (*Diff, error) {
	if labels == nil {
		labels = []string{}
	}

	payload := struct {
		JDTexts []string `json:"jdTexts"`
		Labels  []string `json:"labels"`
	}{JDTexts: texts, Labels: labels}

	var resp diffResponse
	if err := c.postJSON(ctx, PathJDDiffFromText, payload, &resp); err != nil {
		return nil, err
	}

	return resp.result(PathJDDiffFromText)
}

// StarCoach sends the STAR form and returns the coached answer.
func (c *Client) StarCoach(ctx context.Context, req *StarRequest) (*StarResult, error) {
	var resp struct {
		Star map[string]any `json:"star"`
	}

	if err := c.postJSON(ctx, PathStarCoach, req, &resp); err != nil {
		return nil, err
	}

	if resp.Star == nil {
		return nil, fmt.Errorf("%s: %w", PathStarCoach, ErrEmptyResponse)
	}

	return decodeStar(resp.Star)
}

// Contact delivers a contact form message.
func (c *Client) Contact(ctx context.Context, msg *ContactMessage) error {
	return c.postJSON(ctx, PathContact, msg, nil)
}

type diffResponse struct {
	Diff *Diff `json:"diff"`
}

func (r diffResponse) result(path string) (*Diff, error) {
	if r.Diff == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyResponse)
	}
	return r.Diff, nil
}

// decodeStar decodes weakly: scores and length may arrive as numeric strings.
func decodeStar(raw map[string]any) (*StarResult, error) {
	var star StarResult

	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &star,
		TagName:          "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode star result: %w", err)
	}

	return &star, nil
}
