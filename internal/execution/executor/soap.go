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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/system/constants"
	syshttp "github.com/asgardeo/eligibility/internal/system/http"
	"github.com/asgardeo/eligibility/internal/system/log"
)

const soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// soapExecutor calls SOAP 1.1 APIs.
type soapExecutor struct {
	client syshttp.HTTPClientInterface
	policy Policy
}

func newSOAPExecutor(client syshttp.HTTPClientInterface, policy Policy) ExecutorInterface {
	return &soapExecutor{
		client: client,
		policy: policy,
	}
}

// Execute posts the rendered envelope. The call succeeds only on a 2xx response without a Fault.
func (e *soapExecutor) Execute(ctx context.Context, def *apidefinition.APIDefinition,
	args []model.ResolvedArgument) model.ResponseRecord {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SOAPExecutor"),
		log.String(log.LoggerKeyNodeID, def.NodeID))
	started := time.Now()

	envelope := buildEnvelope(def, args)
	result := e.policy.do(ctx, e.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, def.EndpointURI, strings.NewReader(envelope))
		if err != nil {
			return nil, err
		}
		for k, v := range def.Headers {
			req.Header.Set(k, v)
		}
		req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeXML)
		req.Header.Set(constants.SOAPActionHeaderName, `"`+def.SOAPAction+`"`)
		return req, nil
	}, func(a attempt) bool {
		_, fault := soapFault(a.body)
		return fault
	})

	record := newRecord(def, result, started)
	if result.err == nil {
		record.RawResponse = string(result.body)
		e.fillFromResponse(&record, result)
	}

	if logger.IsDebugEnabled() {
		logger.Debug("SOAP call completed", log.String("soapAction", def.SOAPAction), log.Int("statusCode",
			result.statusCode), log.Int("attempts", result.tries), log.Bool("isSuccess", record.IsSuccess))
	}
	return record
}

func (e *soapExecutor) fillFromResponse(record *model.ResponseRecord, result attempt) {
	root, err := parseXML(result.body)
	if err != nil {
		record.Payload = jsonPayload(result.body)
		if syshttp.IsSuccessStatus(result.statusCode) {
			record.FailureReason = "invalid SOAP response: " + err.Error()
		} else {
			record.FailureReason = fmt.Sprintf("HTTP %d", result.statusCode)
		}
		return
	}

	content := soapBody(root)
	payload, err := json.Marshal(content.toJSON())
	if err != nil {
		record.FailureReason = "failed to convert SOAP response: " + err.Error()
		return
	}
	record.Payload = payload

	if fault := content.child("Fault"); fault != nil {
		record.FailureReason = "SOAP fault: " + faultString(fault)
		return
	}
	if !syshttp.IsSuccessStatus(result.statusCode) {
		record.FailureReason = fmt.Sprintf("HTTP %d", result.statusCode)
		return
	}
	record.IsSuccess = true
	record.State = model.NodeStateSucceeded
}

// buildEnvelope renders the envelope template, or the default envelope around the operation element.
func buildEnvelope(def *apidefinition.APIDefinition, args []model.ResolvedArgument) string {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		values[arg.Slot.Name] = xmlEscape(arg.Value.String())
	}

	if strings.TrimSpace(def.EnvelopeTemplate) != "" {
		return apidefinition.EnvelopePlaceholderPattern.ReplaceAllStringFunc(def.EnvelopeTemplate,
			func(placeholder string) string {
				match := apidefinition.EnvelopePlaceholderPattern.FindStringSubmatch(placeholder)
				return values[match[1]]
			})
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="` + soapEnvelopeNamespace + `"><soap:Body>`)
	if def.Namespace != "" {
		b.WriteString(`<` + def.Operation + ` xmlns="` + xmlEscape(def.Namespace) + `">`)
	} else {
		b.WriteString(`<` + def.Operation + `>`)
	}
	for _, slot := range def.DeclaredParameters {
		value, ok := values[slot.Name]
		if !ok {
			continue
		}
		b.WriteString(`<` + slot.Name + `>` + value + `</` + slot.Name + `>`)
	}
	b.WriteString(`</` + def.Operation + `></soap:Body></soap:Envelope>`)
	return b.String()
}

// soapFault reports whether the body is a SOAP envelope carrying a Fault.
func soapFault(body []byte) (*xmlNode, bool) {
	root, err := parseXML(body)
	if err != nil {
		return nil, false
	}
	fault := soapBody(root).child("Fault")
	return fault, fault != nil
}

// soapBody returns the Body element of an envelope, or the document itself when it is not an envelope.
func soapBody(root *xmlNode) *xmlNode {
	if envelope := root.child("Envelope"); envelope != nil {
		if body := envelope.child("Body"); body != nil {
			return body
		}
	}
	return root
}

// faultString extracts the SOAP 1.1 faultstring or the SOAP 1.2 reason text.
func faultString(fault *xmlNode) string {
	if s := fault.child("faultstring"); s != nil {
		return s.textContent()
	}
	if reason := fault.child("Reason"); reason != nil {
		if text := reason.child("Text"); text != nil {
			return text.textContent()
		}
		return reason.textContent()
	}
	return "unknown fault"
}
