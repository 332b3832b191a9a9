package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL  = "https://api.harvestapp.com/v2"
	defaultPageSize = 2000
	userAgent       = "Attendly Attendance Reporting"

	totalPagesHeader = "X-Total-Pages"
	accountIDHeader  = "Harvest-Account-Id"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Client is an authenticated Harvest v2 API client.
type Client struct {
	baseURL    string
	accountID  string
	pageSize   int
	httpClient *http.Client
}

// NewClient builds a client that injects the personal access token as a
// bearer credential on every request.
func NewClient(accessToken string, accountID string) *Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return &Client{
		baseURL:    defaultBaseURL,
		accountID:  accountID,
		pageSize:   defaultPageSize,
		httpClient: oauth2.NewClient(context.Background(), source),
	}
}

// WithBaseURL points the client at a different API root. Used by tests.
func (client *Client) WithBaseURL(baseURL string) *Client {
	client.baseURL = baseURL
	return client
}

func (client *Client) ListUsers(ctx context.Context) ([]User, error) {
	return fetchPaginated[User](ctx, client, "/users", nil, "users")
}

func (client *Client) ListClients(ctx context.Context) ([]ClientRecord, error) {
	return fetchPaginated[ClientRecord](ctx, client, "/clients", nil, "clients")
}

func (client *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return fetchPaginated[Project](ctx, client, "/projects", nil, "projects")
}

// ListTimeEntries fetches every entry logged between from and to inclusive.
// Both bounds must be YYYY-MM-DD strings; anything else is rejected before
// a request is made.
func (client *Client) ListTimeEntries(ctx context.Context, from string, to string) ([]TimeEntry, error) {
	if !isoDatePattern.MatchString(from) || !isoDatePattern.MatchString(to) {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD, got from=%q to=%q", from, to)
	}
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	return fetchPaginated[TimeEntry](ctx, client, "/time_entries", params, "time_entries")
}

// fetchPaginated walks a paged collection endpoint, accumulating every page
// in memory. A non-2xx response on any page fails the whole call.
func fetchPaginated[T any](ctx context.Context, client *Client, endpoint string, params url.Values, itemsKey string) ([]T, error) {
	items := make([]T, 0)

	page := 1
	for {
		query := url.Values{}
		for key, values := range params {
			query[key] = values
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(client.pageSize))

		pageItems, totalPages, err := fetchPage[T](ctx, client, endpoint+"?"+query.Encode(), itemsKey)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)

		if page >= totalPages {
			return items, nil
		}
		page++
	}
}

func fetchPage[T any](ctx context.Context, client *Client, pathAndQuery string, itemsKey string) ([]T, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build harvest request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set(accountIDHeader, client.accountID)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("harvest request failed: %w", err)
	}
	body, err := io.ReadAll(response.Body)
	response.Body.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("read harvest response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, 0, fmt.Errorf("harvest API error: %d %s: %s", response.StatusCode, http.StatusText(response.StatusCode), string(body))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, fmt.Errorf("decode harvest response: %w", err)
	}

	pageItems := make([]T, 0)
	if raw, ok := envelope[itemsKey]; ok {
		if err := json.Unmarshal(raw, &pageItems); err != nil {
			return nil, 0, fmt.Errorf("decode harvest %s: %w", itemsKey, err)
		}
	}

	totalPages := 1
	if header := response.Header.Get(totalPagesHeader); header != "" {
		parsed, err := strconv.Atoi(header)
		if err == nil && parsed > 0 {
			totalPages = parsed
		}
	}
	return pageItems, totalPages, nil
}
