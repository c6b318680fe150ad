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

// Package identity carries the caller's tenant and user through the request context.
//
// Authentication happens upstream; the gateway forwards the resolved identity as headers
// and this package turns them into an explicit context value consumed by the services.
package identity

import (
	"context"
	"net/http"

	serverconst "github.com/asgardeo/eligibility/internal/system/constants"
	"github.com/asgardeo/eligibility/internal/system/error/apierror"
	"github.com/asgardeo/eligibility/internal/system/utils"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	TenantID string
	UserID   string
	UserName string
}

type ctxKeyIdentity struct{}

// ContextWithIdentity returns a copy of ctx carrying the identity.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, identity)
}

// FromContext returns the identity stored in ctx.
func FromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(ctxKeyIdentity{}).(Identity)
	return v, ok
}

// GetTenantID returns the tenant of the caller, or an empty string.
func GetTenantID(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.TenantID
}

// GetUserID returns the user ID of the caller, or an empty string.
func GetUserID(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.UserID
}

// GetUserName returns the display name of the caller, or an empty string.
func GetUserName(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.UserName
}

// Middleware extracts the identity headers and stores them in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Identity{
			TenantID: utils.SanitizeString(r.Header.Get(serverconst.TenantIDHeaderName)),
			UserID:   utils.SanitizeString(r.Header.Get(serverconst.UserIDHeaderName)),
			UserName: utils.SanitizeString(r.Header.Get(serverconst.UserNameHeaderName)),
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
	})
}

// RequireTenant rejects requests without a tenant.
func RequireTenant(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetTenantID(r.Context()) == "" {
			utils.WriteJSONResponse(w, http.StatusUnauthorized,
				apierror.Failure("IDN-1001", "Tenant identity is required"))
			return
		}
		handler(w, r)
	}
}

// RequireUser rejects requests without both a tenant and a user. Used for mutations.
func RequireUser(handler http.HandlerFunc) http.HandlerFunc {
	return RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) == "" {
			utils.WriteJSONResponse(w, http.StatusUnauthorized,
				apierror.Failure("IDN-1002", "User identity is required"))
			return
		}
		handler(w, r)
	})
}
