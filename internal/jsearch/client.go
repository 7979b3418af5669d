package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://jsearch.p.rapidapi.com"

// Client is a thin typed client for the JSearch job-search API on RapidAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// APIError carries the provider's HTTP status so the caller can forward it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jsearch: status %d: %s", e.StatusCode, e.Message)
}

// Job is one listing as returned by the provider.
type Job struct {
	JobID             string `json:"job_id"`
	JobTitle          string `json:"job_title"`
	EmployerName      string `json:"employer_name"`
	EmployerLogo      string `json:"employer_logo"`
	JobCity           string `json:"job_city"`
	JobCountry        string `json:"job_country"`
	JobEmploymentType string `json:"job_employment_type"`
	JobSalary         string `json:"job_salary"`
	JobMinSalary      *int   `json:"job_min_salary"`
	JobMaxSalary      *int   `json:"job_max_salary"`
	JobSalaryCurrency string `json:"job_salary_currency"`
	JobPostedAt       string `json:"job_posted_at_datetime_utc"`
	JobDescription    string `json:"job_description"`
	JobApplyLink      string `json:"job_apply_link"`
	JobHighlights     struct {
		Qualifications   []string `json:"Qualifications"`
		Responsibilities []string `json:"Responsibilities"`
	} `json:"job_highlights"`
}

type searchResponse struct {
	Data []Job `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Configured reports whether a credential is present. The aggregator skips
// the external leg entirely when it is not.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Search runs one provider query: "<query> in <location>", single results
// page, optional employment-type filter (upper-cased on the wire). No
// retries; the provider's failure status is preserved in APIError.
func (c *Client) Search(ctx context.Context, query, location string, page int, employmentType string) ([]Job, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query+" in "+location)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	params.Set("date_posted", "all")
	if employmentType != "" && employmentType != "all" {
		params.Set("employment_types", strings.ToUpper(employmentType))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "jsearch.p.rapidapi.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil {
			if parsed.Message != "" {
				apiErr.Message = parsed.Message
			} else if parsed.Error != "" {
				apiErr.Message = parsed.Error
			}
		}
		return nil, apiErr
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Data, nil
}
