package letta

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/letta-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedResourceType  = errors.New("unsupported resource type")
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrInvalidDataTypeAgent     = errors.New("invalid data type for agent operation")
	ErrInvalidDataTypeBlock     = errors.New("invalid data type for block operation")
	ErrInvalidDataTypeTool      = errors.New("invalid data type for tool operation")
	ErrInvalidDataTypeSource    = errors.New("invalid data type for source operation")
	ErrInvalidDataTypeGroup     = errors.New("invalid data type for group operation")
	ErrMissingRunFunc           = errors.New("custom operation has no run function")
	ErrTransactionFailed        = errors.New("transaction failed")
)

// OperationType is the verb of a BatchOperation.
type OperationType string

// Operation types.
const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
	OperationGet    OperationType = "get"
)

// ResourceKind names the collection a BatchOperation targets.
type ResourceKind string

// Resource kinds. ResourceCustom operations call their Run function and
// never touch the executor's client.
const (
	ResourceAgent  ResourceKind = "agent"
	ResourceBlock  ResourceKind = "block"
	ResourceTool   ResourceKind = "tool"
	ResourceSource ResourceKind = "source"
	ResourceGroup  ResourceKind = "group"
	ResourceCustom ResourceKind = "custom"
)

// UpdateDataWrapper wraps update data with the id of the resource to change.
type UpdateDataWrapper[T any] struct {
	ID      string
	Request *T
}

// handleCrudOperation dispatches on the operation type.
func handleCrudOperation(
	operation BatchOperation,
	createFunc func() (interface{}, error),
	updateFunc func() (interface{}, error),
	deleteFunc func() (interface{}, error),
	getFunc func() (interface{}, error),
) *BatchResult {
	var run func() (interface{}, error)

	switch operation.Type {
	case OperationCreate:
		run = createFunc
	case OperationUpdate:
		run = updateFunc
	case OperationDelete:
		run = deleteFunc
	case OperationGet:
		run = getFunc
	default:
		return &BatchResult{
			ID:    operation.ID,
			Error: fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type),
		}
	}

	data, err := run()

	return &BatchResult{ID: operation.ID, Success: err == nil, Data: data, Error: err}
}

// CRUDOperationConfig holds configuration for CRUD operations.
type CRUDOperationConfig struct {
	InvalidDataTypeErr error
	CreateFunc         func(ctx context.Context, operation BatchOperation) (interface{}, error)
	UpdateFunc         func(ctx context.Context, operation BatchOperation) (interface{}, error)
	DeleteFunc         func(ctx context.Context, operation BatchOperation) (interface{}, error)
	GetFunc            func(ctx context.Context, operation BatchOperation) (interface{}, error)
}

// ResourceClientOps defines the operations available for a resource client.
type ResourceClientOps[TCreateRequest, TUpdateRequest, TResponse any] interface {
	Create(ctx context.Context, request *TCreateRequest) (*TResponse, error)
	Update(ctx context.Context, id string, request *TUpdateRequest) (*TResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*TResponse, error)
}

// createCRUDOperationConfig creates a generic CRUD operation configuration.
func createCRUDOperationConfig[TCreateRequest, TUpdateRequest, TResponse any](
	invalidDataTypeErr error,
	client ResourceClientOps[TCreateRequest, TUpdateRequest, TResponse],
) CRUDOperationConfig {
	return CRUDOperationConfig{
		InvalidDataTypeErr: invalidDataTypeErr,
		CreateFunc: func(ctx context.Context, operation BatchOperation) (interface{}, error) {
			if req, ok := operation.Data.(*TCreateRequest); ok {
				return client.Create(ctx, req)
			}

			return nil, fmt.Errorf("%w create", invalidDataTypeErr)
		},
		UpdateFunc: func(ctx context.Context, operation BatchOperation) (interface{}, error) {
			if data, ok := operation.Data.(*UpdateDataWrapper[TUpdateRequest]); ok {
				return client.Update(ctx, data.ID, data.Request)
			}

			return nil, fmt.Errorf("%w update", invalidDataTypeErr)
		},
		DeleteFunc: func(ctx context.Context, operation BatchOperation) (interface{}, error) {
			if id, ok := operation.Data.(string); ok {
				return nil, client.Delete(ctx, id)
			}

			return nil, fmt.Errorf("%w delete", invalidDataTypeErr)
		},
		GetFunc: func(ctx context.Context, operation BatchOperation) (interface{}, error) {
			if id, ok := operation.Data.(string); ok {
				return client.Get(ctx, id)
			}

			return nil, fmt.Errorf("%w get", invalidDataTypeErr)
		},
	}
}

// BatchOperation represents a single operation in a batch. Data is the
// create request, an *UpdateDataWrapper, or the id for delete and get.
type BatchOperation struct {
	ID       string
	Type     OperationType
	Resource ResourceKind
	Data     interface{}
	// Run performs a ResourceCustom operation.
	Run      func(ctx context.Context) (interface{}, error)
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs operations against a Client with bounded concurrency.
// Callbacks may run concurrently.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor. client may be nil when
// every operation is ResourceCustom.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations. Results are in operation order;
// failures are reported per result, never as the returned error.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results, nil
}

// executeOperation executes a single operation.
func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	if operation.Resource == ResourceCustom {
		return b.executeCustomOperation(ctx, operation)
	}

	config, ok := b.operationConfig(operation.Resource)
	if !ok {
		return &BatchResult{
			ID:    operation.ID,
			Error: fmt.Errorf("%w: %s", ErrUnsupportedResourceType, operation.Resource),
		}
	}

	return handleCrudOperation(operation,
		func() (interface{}, error) { return config.CreateFunc(ctx, operation) },
		func() (interface{}, error) { return config.UpdateFunc(ctx, operation) },
		func() (interface{}, error) { return config.DeleteFunc(ctx, operation) },
		func() (interface{}, error) { return config.GetFunc(ctx, operation) },
	)
}

func (b *BatchExecutor) operationConfig(resource ResourceKind) (CRUDOperationConfig, bool) {
	if b.client == nil {
		return CRUDOperationConfig{}, false
	}

	switch resource {
	case ResourceAgent:
		return createCRUDOperationConfig[CreateAgentRequest, UpdateAgentRequest, Agent](ErrInvalidDataTypeAgent, b.client.Agents()), true
	case ResourceBlock:
		return createCRUDOperationConfig[CreateBlockRequest, UpdateBlockRequest, Block](ErrInvalidDataTypeBlock, b.client.Blocks()), true
	case ResourceTool:
		return createCRUDOperationConfig[CreateToolRequest, UpdateToolRequest, Tool](ErrInvalidDataTypeTool, b.client.Tools()), true
	case ResourceSource:
		return createCRUDOperationConfig[CreateSourceRequest, UpdateSourceRequest, Source](ErrInvalidDataTypeSource, b.client.Sources()), true
	case ResourceGroup:
		return createCRUDOperationConfig[CreateGroupRequest, UpdateGroupRequest, Group](ErrInvalidDataTypeGroup, b.client.Groups()), true
	default:
		return CRUDOperationConfig{}, false
	}
}

func (b *BatchExecutor) executeCustomOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	if operation.Run == nil {
		return &BatchResult{ID: operation.ID, Error: ErrMissingRunFunc}
	}

	data, err := operation.Run(ctx)

	return &BatchResult{ID: operation.ID, Success: err == nil, Data: data, Error: err}
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

func (b *BatchBuilder) add(id string, opType OperationType, resource ResourceKind, data interface{}) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     opType,
		Resource: resource,
		Data:     data,
	})

	return b
}

// AddCreateAgent adds an agent creation operation.
func (b *BatchBuilder) AddCreateAgent(id string, request *CreateAgentRequest) *BatchBuilder {
	return b.add(id, OperationCreate, ResourceAgent, request)
}

// AddUpdateAgent adds an agent update operation.
func (b *BatchBuilder) AddUpdateAgent(id, agentID string, request *UpdateAgentRequest) *BatchBuilder {
	return b.add(id, OperationUpdate, ResourceAgent, &UpdateDataWrapper[UpdateAgentRequest]{ID: agentID, Request: request})
}

// AddDeleteAgent adds an agent deletion operation.
func (b *BatchBuilder) AddDeleteAgent(id, agentID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceAgent, agentID)
}

// AddGetAgent adds an agent get operation.
func (b *BatchBuilder) AddGetAgent(id, agentID string) *BatchBuilder {
	return b.add(id, OperationGet, ResourceAgent, agentID)
}

// AddCreateBlock adds a block creation operation.
func (b *BatchBuilder) AddCreateBlock(id string, request *CreateBlockRequest) *BatchBuilder {
	return b.add(id, OperationCreate, ResourceBlock, request)
}

// AddUpdateBlock adds a block update operation.
func (b *BatchBuilder) AddUpdateBlock(id, blockID string, request *UpdateBlockRequest) *BatchBuilder {
	return b.add(id, OperationUpdate, ResourceBlock, &UpdateDataWrapper[UpdateBlockRequest]{ID: blockID, Request: request})
}

// AddDeleteBlock adds a block deletion operation.
func (b *BatchBuilder) AddDeleteBlock(id, blockID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceBlock, blockID)
}

// AddCreateTool adds a tool creation operation.
func (b *BatchBuilder) AddCreateTool(id string, request *CreateToolRequest) *BatchBuilder {
	return b.add(id, OperationCreate, ResourceTool, request)
}

// AddDeleteTool adds a tool deletion operation.
func (b *BatchBuilder) AddDeleteTool(id, toolID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceTool, toolID)
}

// AddCreateSource adds a source creation operation.
func (b *BatchBuilder) AddCreateSource(id string, request *CreateSourceRequest) *BatchBuilder {
	return b.add(id, OperationCreate, ResourceSource, request)
}

// AddDeleteSource adds a source deletion operation.
func (b *BatchBuilder) AddDeleteSource(id, sourceID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceSource, sourceID)
}

// AddCreateGroup adds a group creation operation.
func (b *BatchBuilder) AddCreateGroup(id string, request *CreateGroupRequest) *BatchBuilder {
	return b.add(id, OperationCreate, ResourceGroup, request)
}

// AddDeleteGroup adds a group deletion operation.
func (b *BatchBuilder) AddDeleteGroup(id, groupID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceGroup, groupID)
}

// AddCustom adds an operation that calls run.
func (b *BatchBuilder) AddCustom(id string, run func(ctx context.Context) (interface{}, error)) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     OperationGet,
		Resource: ResourceCustom,
		Run:      run,
	})

	return b
}

// AddOperation adds a prepared operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}

// BatchTransaction runs operations and, when any fails, deletes what the
// successful create operations made. Updates and deletes are not undone.
type BatchTransaction struct {
	operations []BatchOperation
	results    []BatchResult
	executor   *BatchExecutor
	rollback   bool
}

// NewBatchTransaction creates a new batch transaction.
func NewBatchTransaction(executor *BatchExecutor) *BatchTransaction {
	return &BatchTransaction{
		executor:   executor,
		operations: make([]BatchOperation, 0),
		rollback:   true,
	}
}

// Add adds an operation to the transaction.
func (t *BatchTransaction) Add(operation BatchOperation) *BatchTransaction {
	t.operations = append(t.operations, operation)

	return t
}

// SetRollback sets whether to roll back on failure.
func (t *BatchTransaction) SetRollback(rollback bool) *BatchTransaction {
	t.rollback = rollback

	return t
}

// Execute executes the transaction. The returned results are those of the
// forward operations.
func (t *BatchTransaction) Execute(ctx context.Context) ([]BatchResult, error) {
	results, err := t.executor.Execute(ctx, t.operations)
	t.results = results

	var failedOps []string

	for _, result := range results {
		if !result.Success {
			failedOps = append(failedOps, result.ID)
		}
	}

	if len(failedOps) > 0 && t.rollback {
		t.performRollback(ctx)

		return results, fmt.Errorf("%w, %d operations failed: %v", ErrTransactionFailed, len(failedOps), failedOps)
	}

	return results, err
}

// performRollback deletes the resources made by successful creates.
func (t *BatchTransaction) performRollback(ctx context.Context) {
	var rollbackOps []BatchOperation

	for i, result := range t.results {
		original := t.operations[i]
		if !result.Success || original.Type != OperationCreate {
			continue
		}

		id := createdID(result.Data)
		if id == "" {
			continue
		}

		rollbackOps = append(rollbackOps, BatchOperation{
			ID:       "rollback_" + original.ID,
			Type:     OperationDelete,
			Resource: original.Resource,
			Data:     id,
		})
	}

	if len(rollbackOps) > 0 {
		_, _ = t.executor.Execute(ctx, rollbackOps)
	}
}

// createdID extracts the id from a create result.
func createdID(data interface{}) string {
	switch created := data.(type) {
	case *Agent:
		return created.ID
	case *Block:
		return created.ID
	case *Tool:
		return created.ID
	case *Source:
		return created.ID
	case *Group:
		return created.ID
	default:
		return ""
	}
}
