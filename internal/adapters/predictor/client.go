// Package predictor talks to the external prediction endpoint. One POST per
// call, JSON in and out, no retries.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/csg33k/attrition-form/internal/domain"
)

type Client struct {
	http *resty.Client
	url  string
}

// New returns a client posting to url. A zero timeout waits indefinitely.
func New(url string, timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &Client{http: c, url: url}
}

// Predict sends record and decodes the response. Every failure is returned
// as a *domain.TransmissionError.
func (c *Client) Predict(ctx context.Context, record domain.Record) (*domain.Prediction, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(record).
		Post(c.url)
	if err != nil {
		return nil, &domain.TransmissionError{Err: err}
	}
	if resp.IsError() {
		return nil, &domain.TransmissionError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}
	p, err := Decode(resp.Body())
	if err != nil {
		return nil, &domain.TransmissionError{Err: err}
	}
	return p, nil
}

// Decode reads a prediction response body. The body must be a JSON object;
// "prediction" is judged by JavaScript truthiness and may be absent.
// "probability" and "message" are optional and ignored when mistyped.
func Decode(body []byte) (*domain.Prediction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	if fields == nil {
		return nil, errors.New("decode prediction: response is not an object")
	}
	p := &domain.Prediction{Leave: Truthy(fields["prediction"])}
	var prob *float64
	if err := json.Unmarshal(fields["probability"], &prob); err == nil {
		p.Probability = prob
	}
	_ = json.Unmarshal(fields["message"], &p.Message)
	return p, nil
}

// Truthy reports whether a JSON value would be truthy in JavaScript.
// A missing value counts as undefined.
func Truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch v[0] {
	case 'n', 'f':
		return false
	case 't', '{', '[':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return s != ""
	}
	n, err := strconv.ParseFloat(string(v), 64)
	if errors.Is(err, strconv.ErrRange) {
		// Overflow reads as Infinity.
		return n != 0
	}
	if err != nil {
		return false
	}
	return n != 0 && !math.IsNaN(n)
}
