/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package executor performs outbound REST and SOAP calls for resolved API definitions.
package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/system/config"
	syshttp "github.com/asgardeo/eligibility/internal/system/http"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// ErrUnsupportedProtocol is returned by the factory for a protocol without an executor.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// ExecutorInterface invokes the external API of a definition. Failures are reported in the record.
type ExecutorInterface interface {
	Execute(ctx context.Context, def *apidefinition.APIDefinition, args []model.ResolvedArgument) model.ResponseRecord
}

// Policy bounds and retries outbound calls.
type Policy struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// PolicyFromConfig builds the call policy from the execution configuration.
func PolicyFromConfig(cfg config.ExecutionConfig) Policy {
	return Policy{
		Timeout:    cfg.GetTimeout(),
		MaxRetries: cfg.GetMaxRetries(),
		Backoff:    cfg.GetRetryBackoff(),
	}
}

// Factory hands out the executor of a protocol.
type Factory struct {
	rest ExecutorInterface
	soap ExecutorInterface
}

// NewFactory creates the REST and SOAP executors over the given client.
func NewFactory(client syshttp.HTTPClientInterface, policy Policy) *Factory {
	return &Factory{
		rest: newRESTExecutor(client, policy),
		soap: newSOAPExecutor(client, policy),
	}
}

// GetExecutor returns the executor of the protocol.
func (f *Factory) GetExecutor(protocol apidefinition.Protocol) (ExecutorInterface, error) {
	switch protocol {
	case apidefinition.ProtocolREST:
		return f.rest, nil
	case apidefinition.ProtocolSOAP:
		return f.soap, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, protocol)
	}
}

// attempt is the outcome of the last try of a call.
type attempt struct {
	statusCode int
	body       []byte
	err        error
	timedOut   bool
	cancelled  bool
	permanent  bool
	tries      int
}

// do sends the request built by newRequest, retrying transport errors, timeouts and 5xx responses
// with a linear backoff. Responses for which final returns true are not retried.
func (p Policy) do(ctx context.Context, client syshttp.HTTPClientInterface,
	newRequest func(ctx context.Context) (*http.Request, error), final func(attempt) bool) attempt {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Executor"))

	var result attempt
	for try := 0; try <= p.MaxRetries; try++ {
		if try > 0 {
			delay := p.Backoff * time.Duration(try)
			select {
			case <-ctx.Done():
				result.cancelled = true
				result.err = ctx.Err()
				return result
			case <-time.After(delay):
			}
		}

		result = p.send(ctx, client, newRequest)
		result.tries = try + 1
		if !retryable(result) || (final != nil && final(result)) {
			return result
		}
		if try < p.MaxRetries {
			logger.Debug("Retrying outbound call", log.Int("attempt", try+1), log.Int("statusCode", result.statusCode),
				log.Bool("timedOut", result.timedOut))
		}
	}
	return result
}

func (p Policy) send(ctx context.Context, client syshttp.HTTPClientInterface,
	newRequest func(ctx context.Context) (*http.Request, error)) attempt {
	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := newRequest(attemptCtx)
	if err != nil {
		return attempt{err: fmt.Errorf("failed to build request: %w", err), permanent: true}
	}

	resp, err := client.Do(req)
	if err != nil {
		return classify(ctx, attemptCtx, err)
	}

	body, err := syshttp.ReadBody(resp)
	if err != nil {
		result := classify(ctx, attemptCtx, err)
		result.statusCode = resp.StatusCode
		return result
	}
	return attempt{statusCode: resp.StatusCode, body: body}
}

// classify tells caller cancellation apart from per-attempt timeouts.
func classify(parent, attemptCtx context.Context, err error) attempt {
	if parent.Err() != nil {
		return attempt{err: err, cancelled: true}
	}
	var netErr net.Error
	timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	return attempt{err: err, timedOut: timedOut}
}

// retryable reports whether another attempt may succeed: transport errors, timeouts and 5xx responses.
func retryable(result attempt) bool {
	if result.cancelled || result.permanent {
		return false
	}
	if result.err != nil {
		return true
	}
	return result.statusCode >= http.StatusInternalServerError
}

// newRecord fills the common fields of a record from the attempt.
func newRecord(def *apidefinition.APIDefinition, result attempt, started time.Time) model.ResponseRecord {
	record := model.ResponseRecord{
		NodeID:     def.NodeID,
		StatusCode: result.statusCode,
		State:      model.NodeStateFailed,
		Timestamp:  started.UTC(),
		DurationMs: time.Since(started).Milliseconds(),
	}
	switch {
	case result.cancelled:
		record.FailureReason = model.FailureReasonCancelled
	case result.timedOut:
		record.FailureReason = model.FailureReasonTimeout
	case result.err != nil:
		record.FailureReason = result.err.Error()
	}
	return record
}
