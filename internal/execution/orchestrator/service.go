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
// Package orchestrator drives product validations and direct node invocations across the registry,
// the binding resolver and the protocol executors.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asgardeo/eligibility/internal/apidefinition"
	"github.com/asgardeo/eligibility/internal/execution/executor"
	"github.com/asgardeo/eligibility/internal/execution/model"
	"github.com/asgardeo/eligibility/internal/execution/resolver"
	"github.com/asgardeo/eligibility/internal/execution/responsestore"
	"github.com/asgardeo/eligibility/internal/node"
	"github.com/asgardeo/eligibility/internal/parameterbinding"
	"github.com/asgardeo/eligibility/internal/system/cache"
	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/error/serviceerror"
	"github.com/asgardeo/eligibility/internal/system/log"
	sysutils "github.com/asgardeo/eligibility/internal/system/utils"
)

const planCacheName = "ExecutionPlanCache"

// OrchestratorInterface defines the execution operations.
type OrchestratorInterface interface {
	ValidateProduct(ctx context.Context, tenantID, userID, productID string,
		callerKeyValues map[string]model.Value) (*model.ValidationResult, *serviceerror.ServiceError)
	ExecuteNode(ctx context.Context, tenantID, nodeID string, protocol apidefinition.Protocol,
		callerKeyValues map[string]model.Value) (*model.ResponseRecord, *serviceerror.ServiceError)
	GetExecutionRecords(ctx context.Context, tenantID, executionID string) ([]model.ResponseRecord,
		*serviceerror.ServiceError)
}

// executorProviderInterface hands out the executor of a protocol.
type executorProviderInterface interface {
	GetExecutor(protocol apidefinition.Protocol) (executor.ExecutorInterface, error)
}

// orchestrator is the default implementation of OrchestratorInterface.
type orchestrator struct {
	nodeService          node.NodeServiceInterface
	apiDefinitionService apidefinition.APIDefinitionServiceInterface
	bindingService       parameterbinding.ParameterBindingServiceInterface
	executors            executorProviderInterface
	responseStore        responsestore.ResponseStoreInterface
	planCache            *cache.GuardedCache[*executionPlan]
	maxConcurrency       int
	persistResponses     bool
}

// snapshot is the configuration an execution runs against. Admin writes made while the execution is
// in flight are not observed.
type snapshot struct {
	plan        *executionPlan
	definitions map[string]*apidefinition.APIDefinition
	bindings    parameterbinding.BindingSet
}

func newOrchestrator(nodeService node.NodeServiceInterface,
	apiDefinitionService apidefinition.APIDefinitionServiceInterface,
	bindingService parameterbinding.ParameterBindingServiceInterface, executors executorProviderInterface,
	responseStore responsestore.ResponseStoreInterface, cfg config.ExecutionConfig) *orchestrator {
	o := &orchestrator{
		nodeService:          nodeService,
		apiDefinitionService: apiDefinitionService,
		bindingService:       bindingService,
		executors:            executors,
		responseStore:        responseStore,
		planCache:            cache.NewGuardedCache(cache.GetCache[*executionPlan](planCacheName)),
		maxConcurrency:       cfg.GetMaxConcurrency(),
		persistResponses:     cfg.PersistResponses,
	}

	bindingService.AddChangeListener(func(tenantID string) {
		o.planCache.InvalidatePrefix(tenantID, tenantID+"|")
	})
	nodeService.AddChangeListener(func(string) {
		o.planCache.InvalidateAll()
	})
	return o
}

// ValidateProduct runs every node of the product layer by layer and aggregates the verdict.
func (o *orchestrator) ValidateProduct(ctx context.Context, tenantID, userID, productID string,
	callerKeyValues map[string]model.Value) (*model.ValidationResult, *serviceerror.ServiceError) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, &ErrorInvalidTenantID
	}
	if strings.TrimSpace(productID) == "" {
		return nil, &ErrorInvalidProductID
	}

	execCtx := &model.ExecutionContext{
		ExecutionID:     sysutils.GenerateUUID(),
		TenantID:        tenantID,
		UserID:          userID,
		ProductID:       productID,
		CallerKeyValues: callerKeyValues,
		Ledger:          model.NewLedger(),
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyExecutionID, execCtx.ExecutionID),
		log.String(log.LoggerKeyTenantID, tenantID),
		log.String(log.LoggerKeyProductID, productID))
	started := time.Now()

	snap, svcErr := o.takeSnapshot(ctx, tenantID, productID)
	if svcErr != nil {
		return nil, svcErr
	}

	result := &model.ValidationResult{ExecutionID: execCtx.ExecutionID}
	for _, layer := range snap.plan.layers {
		if ctx.Err() != nil {
			result.FailureReason = model.FailureReasonCancelled
			break
		}
		if err := o.runLayer(ctx, execCtx, snap, layer); err != nil {
			logger.Error("Node execution aborted", log.Error(err))
			return nil, &ErrorInternalServerError
		}
		if ctx.Err() != nil {
			result.FailureReason = model.FailureReasonCancelled
			break
		}
		if reason, failed := criticalFailure(snap.plan, layer, execCtx.Ledger); failed {
			result.FailureReason = reason
			break
		}
	}

	result.PerNodeResults = make([]model.ResponseRecord, 0, execCtx.Ledger.Len())
	for _, id := range snap.plan.order() {
		if record, ok := execCtx.Ledger.Get(id); ok {
			result.PerNodeResults = append(result.PerNodeResults, record)
		}
	}
	result.IsSuccess = result.FailureReason == "" && criticalNodesSucceeded(snap.plan, execCtx.Ledger)

	logger.Debug("Product validation completed", log.Bool("isSuccess", result.IsSuccess),
		log.Int("executedNodes", len(result.PerNodeResults)), log.Duration("duration", time.Since(started)))
	return result, nil
}

// ExecuteNode invokes a single node. Upstream bindings cannot resolve outside a product validation.
func (o *orchestrator) ExecuteNode(ctx context.Context, tenantID, nodeID string, protocol apidefinition.Protocol,
	callerKeyValues map[string]model.Value) (*model.ResponseRecord, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyNodeID, nodeID))

	if strings.TrimSpace(tenantID) == "" {
		return nil, &ErrorInvalidTenantID
	}
	if strings.TrimSpace(nodeID) == "" {
		return nil, &ErrorInvalidNodeID
	}

	def, svcErr := o.apiDefinitionService.GetDefinition(ctx, nodeID)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ClientErrorType {
			return nil, &ErrorAPIDefinitionNotFound
		}
		return nil, &ErrorInternalServerError
	}
	if def.Protocol != protocol {
		return nil, serviceerror.CustomServiceError(ErrorProtocolMismatch,
			fmt.Sprintf("The active API definition of the node uses %s", def.Protocol))
	}

	bindings, svcErr := o.bindingService.GetAllBindings(ctx, tenantID)
	if svcErr != nil {
		return nil, &ErrorInternalServerError
	}

	execCtx := &model.ExecutionContext{
		ExecutionID:     sysutils.GenerateUUID(),
		TenantID:        tenantID,
		CallerKeyValues: callerKeyValues,
		Ledger:          model.NewLedger(),
	}
	snap := &snapshot{
		plan:        &executionPlan{},
		definitions: map[string]*apidefinition.APIDefinition{nodeID: def},
		bindings:    parameterbinding.NewBindingSet(bindings),
	}

	record, err := o.runNode(ctx, execCtx, snap, nodeID)
	if err != nil {
		logger.Error("Node execution aborted", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	o.appendRecord(ctx, execCtx, record)
	return &record, nil
}

// GetExecutionRecords returns the persisted records of an execution.
func (o *orchestrator) GetExecutionRecords(ctx context.Context, tenantID,
	executionID string) ([]model.ResponseRecord, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyExecutionID, executionID))

	records, err := o.responseStore.GetRecordsByExecution(ctx, tenantID, executionID)
	if err != nil {
		logger.Error("Failed to read response records", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	if len(records) == 0 {
		return nil, &ErrorExecutionNotFound
	}
	return records, nil
}

// takeSnapshot loads the plan, the active definitions and the bindings an execution runs against.
func (o *orchestrator) takeSnapshot(ctx context.Context, tenantID, productID string) (*snapshot,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyProductID, productID))

	// A plan built from bindings read before a concurrent save is used once but not cached.
	ticket := o.planCache.Ticket(tenantID)
	bindings, svcErr := o.bindingService.GetAllBindings(ctx, tenantID)
	if svcErr != nil {
		return nil, &ErrorInternalServerError
	}

	key := cache.CacheKey{Key: planCacheKey(tenantID, productID)}
	plan, ok := o.planCache.Get(key)
	if !ok {
		nodes, svcErr := o.nodeService.GetNodesByProduct(ctx, productID)
		if svcErr != nil {
			if svcErr.Type == serviceerror.ClientErrorType {
				return nil, &ErrorInvalidProductID
			}
			return nil, &ErrorInternalServerError
		}
		if len(nodes) == 0 {
			return nil, &ErrorProductNotFound
		}

		var err error
		plan, err = buildPlan(ctx, o.apiDefinitionService, nodes, bindings)
		if err != nil {
			logger.Error("Failed to build execution plan", log.Error(err))
			return nil, &ErrorInternalServerError
		}
		if !o.planCache.SetIfCurrent(ticket, key, plan) {
			logger.Debug("Bindings changed while building the execution plan, not caching it")
		}
	}

	snap := &snapshot{
		plan:        plan,
		definitions: make(map[string]*apidefinition.APIDefinition, len(plan.nodes)),
		bindings:    parameterbinding.NewBindingSet(bindings),
	}
	for id := range plan.nodes {
		def, svcErr := o.apiDefinitionService.GetDefinition(ctx, id)
		if svcErr != nil {
			if svcErr.Type == serviceerror.ClientErrorType {
				continue
			}
			return nil, &ErrorInternalServerError
		}
		snap.definitions[id] = def
	}
	return snap, nil
}

// runLayer executes the nodes of a layer on a bounded pool. Nodes not yet started when the context
// is cancelled are skipped.
func (o *orchestrator) runLayer(ctx context.Context, execCtx *model.ExecutionContext, snap *snapshot,
	layer []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrency)

	for _, nodeID := range layer {
		log.GetLogger().Debug("Scheduling node", log.String(log.LoggerKeyExecutionID, execCtx.ExecutionID),
			log.String(log.LoggerKeyNodeID, nodeID), log.String("state", string(model.NodeStatePending)))
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			record, err := o.runNode(gctx, execCtx, snap, nodeID)
			if err != nil {
				return err
			}
			o.appendRecord(ctx, execCtx, record)
			return nil
		})
	}
	return g.Wait()
}

// runNode resolves and invokes one node. Resolution and protocol failures are reported in the record;
// only a definition no executor can serve is returned as an error.
func (o *orchestrator) runNode(ctx context.Context, execCtx *model.ExecutionContext, snap *snapshot,
	nodeID string) (model.ResponseRecord, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyExecutionID, execCtx.ExecutionID),
		log.String(log.LoggerKeyNodeID, nodeID))
	started := time.Now()

	logger.Debug("Resolving node", log.String("state", string(model.NodeStateResolving)))
	for _, upstreamID := range snap.plan.upstream[nodeID] {
		if record, ok := execCtx.Ledger.Get(upstreamID); !ok || !record.IsSuccess {
			notExecuted := &resolver.ResolutionError{Kind: resolver.ErrorKindUpstreamNotExecuted, NodeID: upstreamID}
			return resolutionFailed(execCtx, nodeID, started, notExecuted.Error()), nil
		}
	}

	def := snap.definitions[nodeID]
	if def == nil {
		return resolutionFailed(execCtx, nodeID, started, fmt.Sprintf("ApiDefinitionNotFound(%s)", nodeID)), nil
	}

	args, err := resolver.Resolve(def, snap.bindings, execCtx.CallerKeyValues, execCtx.Ledger)
	if err != nil {
		logger.Debug("Node resolution failed", log.Error(err))
		return resolutionFailed(execCtx, nodeID, started, err.Error()), nil
	}
	logger.Debug("Node resolved", log.String("state", string(model.NodeStateResolved)))

	exec, err := o.executors.GetExecutor(def.Protocol)
	if err != nil {
		return model.ResponseRecord{}, err
	}

	logger.Debug("Executing node", log.String("state", string(model.NodeStateExecuting)),
		log.String("protocol", string(def.Protocol)), log.Int("arguments", len(args)))
	record := exec.Execute(ctx, def, args)
	record.ExecutionID = execCtx.ExecutionID
	logger.Debug("Node finished", log.String("state", string(record.State)),
		log.Int("statusCode", record.StatusCode), log.Int64("durationMs", record.DurationMs))
	return record, nil
}

// appendRecord writes the record to the ledger and, when enabled, to the response store.
func (o *orchestrator) appendRecord(ctx context.Context, execCtx *model.ExecutionContext,
	record model.ResponseRecord) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Orchestrator"),
		log.String(log.LoggerKeyExecutionID, execCtx.ExecutionID),
		log.String(log.LoggerKeyNodeID, record.NodeID))

	if err := execCtx.Ledger.Append(record); err != nil {
		logger.Error("Failed to append response record", log.Error(err))
		return
	}
	if !o.persistResponses {
		return
	}
	if err := o.responseStore.SaveRecord(context.WithoutCancel(ctx), execCtx.TenantID, record); err != nil {
		logger.Warn("Failed to persist response record", log.Error(err))
	}
}

func resolutionFailed(execCtx *model.ExecutionContext, nodeID string, started time.Time,
	reason string) model.ResponseRecord {
	return model.ResponseRecord{
		ExecutionID:   execCtx.ExecutionID,
		NodeID:        nodeID,
		FailureReason: reason,
		State:         model.NodeStateResolutionFailed,
		Timestamp:     started.UTC(),
		DurationMs:    time.Since(started).Milliseconds(),
	}
}

// criticalFailure reports the first critical node of the layer whose record is a failure.
func criticalFailure(plan *executionPlan, layer []string, ledger *model.Ledger) (string, bool) {
	for _, id := range layer {
		if !plan.nodes[id].IsCritical {
			continue
		}
		if record, ok := ledger.Get(id); ok && !record.IsSuccess {
			return fmt.Sprintf("critical node %s failed: %s", id, record.FailureReason), true
		}
	}
	return "", false
}

func criticalNodesSucceeded(plan *executionPlan, ledger *model.Ledger) bool {
	for id, n := range plan.nodes {
		if !n.IsCritical {
			continue
		}
		if record, ok := ledger.Get(id); !ok || !record.IsSuccess {
			return false
		}
	}
	return true
}
