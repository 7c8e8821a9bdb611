package actionclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hallin-site/utils"
	"hallin-site/utils/formhandler"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// Client calls the server actions over HTTP. Its Action method yields the
// formhandler.SubmitFunc a Controller needs.
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{httpClient: c, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) Action(name utils.ActionName) formhandler.SubmitFunc {
	return func(ctx context.Context, payload url.Values) (*utils.ActionResult, error) {
		return c.Submit(ctx, name, payload)
	}
}

func (c *Client) Submit(ctx context.Context, name utils.ActionName, payload url.Values) (*utils.ActionResult, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormDataFromValues(payload).
		Post(fmt.Sprintf("%s/_actions/%s", c.baseURL, name))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var result utils.ActionResult
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode failed (status %d): %w", resp.StatusCode(), err)
	}
	if resp.IsError() && result.Error == nil {
		result.Error = &utils.ActionError{Code: utils.ActionErrorInternal}
	}
	return &result, nil
}
