// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	clientUserAgent     = "go-account-keeper-client"
	clientRetryCount    = 2
	clientRetryWaitTime = 200 * time.Millisecond
)

// HTTPClient wraps [resty.Client] preconfigured for the account API:
// JSON accept header, a fixed user agent and retries on 502/503/504
// answers or transport failures.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL. A zero timeout leaves
// resty's default (no timeout) in place.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", clientUserAgent).
		SetRetryCount(clientRetryCount).
		SetRetryWaitTime(clientRetryWaitTime).
		AddRetryCondition(retryableResponse)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

func retryableResponse(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
