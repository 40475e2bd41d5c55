package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"campadmin/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"
)

type HttpClient struct {
	baseURL     *url.URL
	userAgent   string
	tokenSource oauth2.TokenSource
	client      *http.Client
}

// NewHttpClient takes its settings explicitly; nothing is read from the environment here.
func NewHttpClient(baseURL *url.URL, userAgent string, tokenSource oauth2.TokenSource, httpClient *http.Client) *HttpClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HttpClient{
		baseURL:     baseURL,
		userAgent:   userAgent,
		tokenSource: tokenSource,
		client:      httpClient,
	}
}

type RequestArgs struct {
	Endpoint      string
	Method        string
	PathParams    []string
	QueryParams   map[string]string
	Body          *strings.Reader
	BodyRaw       any
	Headers       map[string]string
	Authenticated bool
}

type ClientError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *ClientError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, e.Description)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HttpClient) SendRequest(
	ctx context.Context,
	requestArgs RequestArgs,
) (*http.Response, error) {
	var err error
	headers := map[string]string{}
	for k, v := range requestArgs.Headers {
		headers[k] = v
	}
	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}

	method := requestArgs.Method
	if method == "" {
		method = http.MethodGet
	}

	pathParams := make([]any, len(requestArgs.PathParams))
	for i, v := range requestArgs.PathParams {
		pathParams[i] = v
	}
	requestUrl := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimSuffix(c.baseURL.Path, "/") + "/" + fmt.Sprintf(requestArgs.Endpoint, pathParams...)})
	if requestArgs.QueryParams != nil {
		query := requestUrl.Query()
		for k, v := range requestArgs.QueryParams {
			query.Add(k, v)
		}
		requestUrl.RawQuery = query.Encode()
	}

	var req *http.Request
	if requestArgs.Body != nil {
		req, err = http.NewRequestWithContext(ctx, method, requestUrl.String(), requestArgs.Body)
		headers["Content-Type"] = "application/json"
	} else {
		req, err = http.NewRequestWithContext(ctx, method, requestUrl.String(), nil)
	}
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if requestArgs.Authenticated && c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return nil, err
		}
		if token != nil && token.AccessToken != "" {
			token.SetAuthHeader(req)
		}
	}

	return c.client.Do(req)
}

// sendRequest decodes the JSON response into T. An empty success body leaves T at its zero value.
func sendRequest[T any](ctx context.Context, client *HttpClient, name string, args RequestArgs) (*T, error) {
	timer := prometheus.NewTimer(metrics.AdminRequestDuration.WithLabelValues(name))
	defer timer.ObserveDuration()
	metrics.AdminRequestCounter.WithLabelValues(name).Inc()

	if args.Body == nil && args.BodyRaw != nil {
		bodyString, err := json.Marshal(args.BodyRaw)
		if err != nil {
			return nil, &ClientError{
				Code:        "request_body_error",
				Description: err.Error(),
			}
		}
		args.Body = strings.NewReader(string(bodyString))
	}
	response, err := client.SendRequest(ctx, args)
	if err != nil {
		return nil, &ClientError{
			Code:        "request_error",
			Description: err.Error(),
		}
	}
	metrics.AdminResponseCounter.WithLabelValues(fmt.Sprintf("%d", response.StatusCode)).Inc()
	defer response.Body.Close()
	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &ClientError{
			StatusCode:  response.StatusCode,
			Code:        "response_body_read_error",
			Description: err.Error(),
		}
	}

	if response.StatusCode >= 400 {
		log.Printf("admin API %s returned %d: %s", name, response.StatusCode, string(respBody))
		errorBody := &ErrorResponse{}
		description := http.StatusText(response.StatusCode)
		if err := json.Unmarshal(respBody, errorBody); err == nil {
			if errorBody.Error != "" {
				description = errorBody.Error
			} else if errorBody.Message != "" {
				description = errorBody.Message
			}
		}
		return nil, &ClientError{
			StatusCode:  response.StatusCode,
			Code:        "response_error",
			Description: description,
		}
	}

	result := new(T)
	if len(strings.TrimSpace(string(respBody))) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, &ClientError{
			StatusCode:  response.StatusCode,
			Code:        "response_body_parse_error",
			Description: err.Error(),
		}
	}
	return result, nil
}
