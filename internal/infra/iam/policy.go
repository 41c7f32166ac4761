package iam

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/bytedance/sonic"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"go.uber.org/zap"
)

const adminPrefix = "/minio/admin/v3"

// PolicyClient manages named canned policies through the MinIO admin API.
type PolicyClient struct {
	BaseURL     string
	Region      string
	Credentials aws.CredentialsProvider
	HTTPClient  *http.Client
	Logger      *zap.Logger

	signer *v4.Signer
}

func NewPolicyClient(baseURL, region string, creds aws.CredentialsProvider, timeout time.Duration, log *zap.Logger) *PolicyClient {
	return &PolicyClient{
		BaseURL:     baseURL,
		Region:      region,
		Credentials: creds,
		HTTPClient:  &http.Client{Timeout: timeout},
		Logger:      log,
		signer:      v4.NewSigner(),
	}
}

type adminError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// AddPolicy registers document under name, replacing a policy of the same
// name.
func (c *PolicyClient) AddPolicy(ctx context.Context, name string, document []byte) error {
	return c.do(ctx, http.MethodPut, "/add-canned-policy", name, document)
}

// RemovePolicy deletes the named policy. A missing policy is NotFound.
func (c *PolicyClient) RemovePolicy(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/remove-canned-policy", name, nil)
}

func (c *PolicyClient) do(ctx context.Context, method, path, name string, body []byte) error {
	endpoint := fmt.Sprintf("%s%s%s?%s", c.BaseURL, adminPrefix, path, url.Values{"name": {name}}.Encode())

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return apperr.Unhandled("build policy request", err)
	}
	if err := c.sign(ctx, req, body); err != nil {
		return apperr.Unhandled("sign policy request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return apperr.ServiceUnavailable("policy service is unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	var ae adminError
	_ = sonic.Unmarshal(raw, &ae)
	c.Logger.Error("policy request failed",
		zap.String("policy", name),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.String("code", ae.Code),
		zap.String("message", ae.Message))

	cause := fmt.Errorf("status %d: %s", resp.StatusCode, ae.Code)
	if resp.StatusCode == http.StatusNotFound {
		return apperr.NotFound(fmt.Sprintf("policy %s is not found", name), cause)
	}
	return apperr.Unhandled(fmt.Sprintf("policy %s request failed", name), cause)
}

func (c *PolicyClient) sign(ctx context.Context, req *http.Request, body []byte) error {
	creds, err := c.Credentials.Retrieve(ctx)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(body)
	payloadHash := hex.EncodeToString(sum[:])
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.signer.SignHTTP(ctx, creds, req, payloadHash, "s3", c.Region, time.Now().UTC())
}
