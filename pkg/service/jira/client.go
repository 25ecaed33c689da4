package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/utils/safe"
)

const (
	// DefaultPageSize is the page size used for option listing
	DefaultPageSize = 50

	apiPath = "/rest/api/3"
)

// client implements Service interface
type client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API base URL derived from the domain.
// The given URL must point to the REST API root (".../rest/api/3").
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a new Jira service authenticated with basic auth (account email + API token)
func New(domain, username, apiToken string, opts ...Option) (Service, error) {
	if username == "" {
		return nil, goerr.New("Jira username is required")
	}
	if apiToken == "" {
		return nil, goerr.New("Jira API token is required")
	}

	c := &client{
		username:   username,
		apiToken:   apiToken,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	if domain != "" {
		c.baseURL = "https://" + strings.TrimRight(domain, "/") + apiPath
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, goerr.New("Jira domain is required")
	}

	return c, nil
}

func (c *client) CreateField(ctx context.Context, req *CreateFieldRequest) (*Field, error) {
	var field Field
	if err := c.do(ctx, http.MethodPost, "/field", nil, req, &field, http.StatusCreated); err != nil {
		return nil, goerr.Wrap(err, "failed to create custom field", goerr.V("name", req.Name))
	}
	return &field, nil
}

func (c *client) DeleteField(ctx context.Context, fieldID string) error {
	path := "/field/" + url.PathEscape(fieldID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return goerr.Wrap(err, "failed to delete custom field", goerr.V(FieldIDKey, fieldID))
	}
	return nil
}

func (c *client) SearchFields(ctx context.Context, q string, startAt, maxResults int) (*FieldPage, error) {
	params, err := query.Values(pageParams{Query: q, StartAt: startAt, MaxResults: maxResults})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode search parameters")
	}

	var page FieldPage
	if err := c.do(ctx, http.MethodGet, "/field/search", params, nil, &page, http.StatusOK); err != nil {
		return nil, goerr.Wrap(err, "failed to search custom fields", goerr.V("query", q), goerr.V("start_at", startAt))
	}
	return &page, nil
}

func (c *client) ListContexts(ctx context.Context, fieldID string) ([]*FieldContext, error) {
	var page contextPage
	if err := c.do(ctx, http.MethodGet, contextPath(fieldID), nil, nil, &page, http.StatusOK); err != nil {
		return nil, goerr.Wrap(err, "failed to list field contexts", goerr.V(FieldIDKey, fieldID))
	}
	return page.Values, nil
}

func (c *client) CreateContext(ctx context.Context, fieldID string, req *CreateContextRequest) (*FieldContext, error) {
	var fc FieldContext
	if err := c.do(ctx, http.MethodPost, contextPath(fieldID), nil, req, &fc, http.StatusCreated); err != nil {
		return nil, goerr.Wrap(err, "failed to create field context", goerr.V(FieldIDKey, fieldID))
	}
	return &fc, nil
}

func (c *client) CreateOptions(ctx context.Context, fieldID, contextID string, options []*OptionInput) ([]*CustomFieldOption, error) {
	var resp optionsResponse
	if err := c.do(ctx, http.MethodPost, optionPath(fieldID, contextID), nil, &optionsRequest{Options: options}, &resp, http.StatusOK); err != nil {
		return nil, goerr.Wrap(err, "failed to create options",
			goerr.V(FieldIDKey, fieldID),
			goerr.V(ContextIDKey, contextID),
			goerr.V("count", len(options)))
	}
	return resp.Options, nil
}

func (c *client) ListOptions(ctx context.Context, fieldID, contextID string) ([]*CustomFieldOption, error) {
	var options []*CustomFieldOption
	startAt := 0

	for {
		params, err := query.Values(pageParams{StartAt: startAt, MaxResults: DefaultPageSize})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode page parameters")
		}

		var page optionPage
		if err := c.do(ctx, http.MethodGet, optionPath(fieldID, contextID), params, nil, &page, http.StatusOK); err != nil {
			return nil, goerr.Wrap(err, "failed to list options",
				goerr.V(FieldIDKey, fieldID),
				goerr.V(ContextIDKey, contextID),
				goerr.V("start_at", startAt))
		}

		options = append(options, page.Values...)
		if page.IsLast || len(page.Values) == 0 {
			break
		}
		startAt += len(page.Values)
	}

	return options, nil
}

func (c *client) SetDefaultValues(ctx context.Context, fieldID string, values []*DefaultValue) error {
	body := &defaultValuesBody{DefaultValues: values}
	if err := c.do(ctx, http.MethodPut, defaultValuePath(fieldID), nil, body, nil, http.StatusNoContent); err != nil {
		return goerr.Wrap(err, "failed to set default value", goerr.V(FieldIDKey, fieldID))
	}
	return nil
}

func (c *client) GetDefaultValues(ctx context.Context, fieldID string) ([]*DefaultValue, error) {
	var body defaultValuesBody
	if err := c.do(ctx, http.MethodGet, defaultValuePath(fieldID), nil, nil, &body, http.StatusOK); err != nil {
		return nil, goerr.Wrap(err, "failed to get default values", goerr.V(FieldIDKey, fieldID))
	}
	return body.Values, nil
}

// do sends an authenticated JSON request and decodes the response into out.
// Any status not listed in expected yields an error wrapping ErrUnexpectedStatus.
func (c *client) do(ctx context.Context, method, path string, params url.Values, in, out any, expected ...int) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body", goerr.V(PathKey, path))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V(MethodKey, method), goerr.V(PathKey, path))
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request", goerr.V(MethodKey, method), goerr.V(PathKey, path))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.V(MethodKey, method), goerr.V(PathKey, path))
	}

	if !slices.Contains(expected, resp.StatusCode) {
		return goerr.Wrap(ErrUnexpectedStatus, "Jira request failed",
			goerr.V(MethodKey, method),
			goerr.V(PathKey, path),
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(BodyKey, string(respBody)))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return goerr.Wrap(err, "failed to decode response body",
			goerr.V(MethodKey, method),
			goerr.V(PathKey, path),
			goerr.V(BodyKey, string(respBody)))
	}

	return nil
}

func contextPath(fieldID string) string {
	return "/field/" + url.PathEscape(fieldID) + "/context"
}

func optionPath(fieldID, contextID string) string {
	return contextPath(fieldID) + "/" + url.PathEscape(contextID) + "/option"
}

func defaultValuePath(fieldID string) string {
	return contextPath(fieldID) + "/defaultValue"
}
