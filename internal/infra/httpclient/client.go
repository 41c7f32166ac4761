package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"go.uber.org/zap"
)

// jsonClient posts JSON to one downstream service. A transport failure maps
// to ServiceUnavailable, a non-2xx status or an undecodable body to
// Unhandled. Calls are never retried.
type jsonClient struct {
	service    string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func newJSONClient(service, baseURL string, timeout time.Duration, log *zap.Logger) jsonClient {
	return jsonClient{
		service:    service,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     log.With(zap.String("service", service)),
	}
}

// post sends payload to BaseURL+path and decodes the response into out when
// out is not nil. op names the call in logs and error messages.
func (c *jsonClient) post(ctx context.Context, op, path string, payload any, out any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		c.Logger.Error("marshal request", zap.String("op", op), zap.Error(err))
		return apperr.Unhandled(fmt.Sprintf("unable to %s", op), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		c.Logger.Error("create request", zap.String("op", op), zap.Error(err))
		return apperr.Unhandled(fmt.Sprintf("unable to %s", op), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("service is unreachable", zap.String("op", op), zap.Error(err))
		return apperr.ServiceUnavailable(fmt.Sprintf("%s service is unavailable", c.service), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("read response body", zap.String("op", op), zap.Error(err))
		return apperr.Unhandled(fmt.Sprintf("unable to %s", op), err)
	}

	if resp.StatusCode/100 != 2 {
		c.Logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return apperr.Unhandled(
			fmt.Sprintf("%s service could not %s", c.service, op),
			fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(respBody, out); err != nil {
		c.Logger.Error("unmarshal response", zap.String("op", op), zap.Error(err))
		return apperr.Unhandled(fmt.Sprintf("unable to %s", op), err)
	}
	return nil
}
