package hh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"time"
)

const userAgent = "hh-assistant/1.0 (+https://github.com/mkravets/hh-assistant)"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// SetRateLimit paces outgoing requests. Paginated searches go through the
// same limiter, which keeps inter-page delays within HH's implicit limits.
func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetVacancies(parameters SearchParameters) (SearchPage, error) {

	if err := parameters.Validate(); err != nil {
		return SearchPage{}, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := "https://api.hh.ru/vacancies"
	params := parameters.ToUrlParams()

	body, err := c.sendRequest("GET", apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return SearchPage{}, err
	}

	var page SearchPage
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&page); err != nil {
		return SearchPage{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return page, nil
}

func (c *Client) GetVacancy(id string) (VacancyDetail, error) {

	apiURL := "https://api.hh.ru/vacancies/" + id

	body, err := c.sendRequest("GET", apiURL, nil)
	if err != nil {
		return VacancyDetail{}, err
	}

	var detail VacancyDetail
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&detail); err != nil {
		return VacancyDetail{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return detail, nil
}

func (c *Client) sendRequest(method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(context.Background())
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
