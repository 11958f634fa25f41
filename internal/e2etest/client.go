package e2etest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
)

// Client is a cookie-aware HTTP client. The visitor session lives in its cookie jar.
type Client struct {
	client *http.Client
	jar    *unsafeCookieJar
	url    string
}

// NewClient creates a client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests.
		jar:    jar,
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			ok := resp.StatusCode == http.StatusOK
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
			if ok {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Do sends a request to urlPath with the given method, body and content type.
func (c *Client) Do(ctx context.Context, method, urlPath, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, urlPath, "", nil)
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, fmt.Errorf("client get: %w", err)
	}
	return documentFrom(resp)
}

// GetBody fetches a URL, expects 200 OK and returns the body together with the response headers.
func (c *Client) GetBody(ctx context.Context, urlPath string) ([]byte, http.Header, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, nil, fmt.Errorf("client get: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header, nil
}

func documentFrom(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	doc.Url = resp.Request.URL
	return doc, nil
}

// SubmitForm submits a form in the doc identified with action formActionUrlPath and returns the response document.
// formFields maps label text to value. Text inputs are found by label, selects get the option with the given value.
// Other fields are submitted with their current values like a browser would.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	formFields map[string]string,
) (*goquery.Document, error) {
	form, err := FindForm(doc, formActionURLPath)
	if err != nil {
		return nil, fmt.Errorf("find form: %w", err)
	}

	formData := currentValues(form)
	for labelText, value := range formFields {
		var field *goquery.Selection
		if field, err = FindFieldForLabel(form, labelText); err != nil {
			return nil, fmt.Errorf("find field for label: %w", err)
		}
		name, exists := field.Attr("name")
		if !exists {
			return nil, fmt.Errorf("field has no name attribute (label: %s, form_action: %s)",
				labelText, formActionURLPath)
		}
		formData.Set(name, value)
	}

	resp, err := c.Do(ctx, http.MethodPost, formActionURLPath, "application/x-www-form-urlencoded",
		strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, err
	}
	return documentFrom(resp)
}

// currentValues collects the values a browser would submit for form without user interaction.
func currentValues(form *goquery.Selection) neturl.Values {
	values := neturl.Values{}
	form.Find("input[name]").Each(func(_ int, s *goquery.Selection) {
		switch s.AttrOr("type", "text") {
		case "submit", "button", "reset", "file":
			return
		case "checkbox", "radio":
			if _, checked := s.Attr("checked"); !checked {
				return
			}
		}
		values.Add(s.AttrOr("name", ""), s.AttrOr("value", ""))
	})
	form.Find("select[name]").Each(func(_ int, s *goquery.Selection) {
		selected := s.Find("option[selected]")
		if selected.Length() == 0 {
			selected = s.Find("option").First()
		}
		if selected.Length() > 0 {
			values.Add(s.AttrOr("name", ""), selected.AttrOr("value", selected.Text()))
		}
	})
	form.Find("textarea[name]").Each(func(_ int, s *goquery.Selection) {
		values.Add(s.AttrOr("name", ""), s.Text())
	})
	return values
}

// PostForm posts raw form values without looking at any document.
func (c *Client) PostForm(ctx context.Context, urlPath string, values neturl.Values) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, urlPath, "application/x-www-form-urlencoded",
		strings.NewReader(values.Encode()))
}

// DialWebsocket opens a websocket to urlPath carrying the client's cookies.
func (c *Client) DialWebsocket(ctx context.Context, urlPath string) (*websocket.Conn, error) {
	u, err := neturl.Parse(c.url + urlPath)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	cookies := c.jar.Cookies(u)
	u.Scheme = "ws"
	header := http.Header{}
	pairs := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		pairs = append(pairs, cookie.String())
	}
	if len(pairs) > 0 {
		header.Set("Cookie", strings.Join(pairs, "; "))
	}
	header.Set("Origin", c.url)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	return conn, nil
}
