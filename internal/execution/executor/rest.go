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

package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/system/constants"
	syshttp "github.com/asgardeo/eligibility/internal/system/http"
	"github.com/asgardeo/eligibility/internal/system/log"
)

// restExecutor calls JSON over HTTP APIs.
type restExecutor struct {
	client syshttp.HTTPClientInterface
	policy Policy
}

func newRESTExecutor(client syshttp.HTTPClientInterface, policy Policy) ExecutorInterface {
	return &restExecutor{
		client: client,
		policy: policy,
	}
}

// Execute places each argument by its slot location and sends the request.
func (e *restExecutor) Execute(ctx context.Context, def *apidefinition.APIDefinition,
	args []model.ResolvedArgument) model.ResponseRecord {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RESTExecutor"),
		log.String(log.LoggerKeyNodeID, def.NodeID))
	started := time.Now()

	target, body, err := buildRESTTarget(def, args)
	result := attempt{err: err, permanent: true}
	if err == nil {
		result = e.policy.do(ctx, e.client, func(ctx context.Context) (*http.Request, error) {
			var reader io.Reader
			if body != nil {
				reader = bytes.NewReader(body)
			}
			req, err := http.NewRequestWithContext(ctx, def.HTTPMethod, target, reader)
			if err != nil {
				return nil, err
			}
			for k, v := range def.Headers {
				req.Header.Set(k, v)
			}
			for _, arg := range args {
				if arg.Slot.Location == apidefinition.LocationHeader {
					req.Header.Set(arg.Slot.Name, arg.Value.String())
				}
			}
			req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
			if body != nil {
				req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
			}
			return req, nil
		}, nil)
	}

	record := newRecord(def, result, started)
	if result.err == nil {
		record.RawResponse = string(result.body)
		record.Payload = jsonPayload(result.body)
		record.IsSuccess = syshttp.IsSuccessStatus(result.statusCode)
		if record.IsSuccess {
			record.State = model.NodeStateSucceeded
		} else {
			record.FailureReason = fmt.Sprintf("HTTP %d", result.statusCode)
		}
	}

	if logger.IsDebugEnabled() {
		logger.Debug("REST call completed", log.String("method", def.HTTPMethod), log.Int("statusCode",
			result.statusCode), log.Int("attempts", result.tries), log.Bool("isSuccess", record.IsSuccess))
	}
	return record
}

// buildRESTTarget returns the request URL and the JSON body, if any.
func buildRESTTarget(def *apidefinition.APIDefinition, args []model.ResolvedArgument) (string, []byte, error) {
	endpoint := def.EndpointURI
	for _, arg := range args {
		if arg.Slot.Location == apidefinition.LocationPath {
			endpoint = strings.ReplaceAll(endpoint, "{"+arg.Slot.Name+"}", url.PathEscape(arg.Value.String()))
		}
	}

	target, err := url.Parse(endpoint)
	if err != nil {
		return "", nil, fmt.Errorf("invalid endpoint URI: %w", err)
	}

	query := target.Query()
	bodyFields := map[string]model.Value{}
	for _, arg := range args {
		switch arg.Slot.Location {
		case apidefinition.LocationQuery:
			query.Set(arg.Slot.Name, arg.Value.String())
		case apidefinition.LocationBody:
			bodyFields[arg.Slot.Name] = arg.Value
		case apidefinition.LocationHeader:
			if strings.ContainsAny(arg.Value.String(), "\r\n\x00") {
				return "", nil, fmt.Errorf("invalid value for header %s: control characters are not allowed",
					arg.Slot.Name)
			}
		}
	}
	target.RawQuery = query.Encode()

	if len(bodyFields) == 0 && (def.HTTPMethod == http.MethodGet || def.HTTPMethod == http.MethodDelete) {
		return target.String(), nil, nil
	}
	body, err := json.Marshal(bodyFields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return target.String(), body, nil
}

// jsonPayload returns the body when it is JSON and wraps it as {"body": "<text>"} otherwise.
func jsonPayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`)
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	wrapped, _ := json.Marshal(map[string]string{"body": string(body)})
	return wrapped
}
