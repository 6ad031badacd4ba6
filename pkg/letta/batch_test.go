package letta_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// MockClient implements letta.Client for testing. Accessors that a test
// does not stub panic through the nil embedded interface.
type MockClient struct {
	mock.Mock
	letta.Client
}

func (m *MockClient) Agents() letta.AgentsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(letta.AgentsClient)
}

func (m *MockClient) Blocks() letta.BlocksClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(letta.BlocksClient)
}

// MockAgentsClient implements the CRUD subset of letta.AgentsClient.
type MockAgentsClient struct {
	mock.Mock
	letta.AgentsClient
}

func (m *MockAgentsClient) Create(ctx context.Context, request *letta.CreateAgentRequest) (*letta.Agent, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*letta.Agent), args.Error(1)
}

func (m *MockAgentsClient) Update(ctx context.Context, id string, request *letta.UpdateAgentRequest) (*letta.Agent, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*letta.Agent), args.Error(1)
}

func (m *MockAgentsClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockAgentsClient) Get(ctx context.Context, id string) (*letta.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*letta.Agent), args.Error(1)
}

// MockBlocksClient implements the CRUD subset of letta.BlocksClient.
type MockBlocksClient struct {
	mock.Mock
	letta.BlocksClient
}

func (m *MockBlocksClient) Create(ctx context.Context, request *letta.CreateBlockRequest) (*letta.Block, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*letta.Block), args.Error(1)
}

func (m *MockBlocksClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func TestBatchExecutor_AgentOperations(t *testing.T) {
	t.Parallel()

	agents := &MockAgentsClient{}
	client := &MockClient{}
	client.On("Agents").Return(agents)

	createRequest := &letta.CreateAgentRequest{Name: "helper"}
	updateRequest := &letta.UpdateAgentRequest{Description: "v2"}

	agents.On("Create", mock.Anything, createRequest).Return(&letta.Agent{ID: "agent-1", Name: "helper"}, nil)
	agents.On("Get", mock.Anything, "agent-1").Return(&letta.Agent{ID: "agent-1"}, nil)
	agents.On("Update", mock.Anything, "agent-1", updateRequest).Return(&letta.Agent{ID: "agent-1", Description: "v2"}, nil)
	agents.On("Delete", mock.Anything, "agent-2").Return(nil)

	operations := letta.NewBatchBuilder().
		AddCreateAgent("create", createRequest).
		AddGetAgent("get", "agent-1").
		AddUpdateAgent("update", "agent-1", updateRequest).
		AddDeleteAgent("delete", "agent-2").
		Build()

	results, err := letta.NewBatchExecutor(client, 2).Execute(context.Background(), operations)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, result := range results {
		assert.Equal(t, operations[i].ID, result.ID)
		assert.True(t, result.Success, result.ID)
		assert.NoError(t, result.Error)
	}

	assert.Equal(t, "helper", results[0].Data.(*letta.Agent).Name)
	assert.Equal(t, "v2", results[2].Data.(*letta.Agent).Description)
	assert.Nil(t, results[3].Data)

	agents.AssertExpectations(t)
}

func TestBatchExecutor_Failures(t *testing.T) {
	t.Parallel()

	errGone := errors.New("gone")

	agents := &MockAgentsClient{}
	agents.On("Delete", mock.Anything, "agent-9").Return(errGone)

	client := &MockClient{}
	client.On("Agents").Return(agents)

	operations := []letta.BatchOperation{
		{ID: "wrong data", Type: letta.OperationCreate, Resource: letta.ResourceAgent, Data: "not a request"},
		{ID: "unknown resource", Type: letta.OperationGet, Resource: "mcp_server", Data: "x"},
		{ID: "unknown verb", Type: "archive", Resource: letta.ResourceAgent, Data: "agent-1"},
		{ID: "server error", Type: letta.OperationDelete, Resource: letta.ResourceAgent, Data: "agent-9"},
		{ID: "custom without run", Type: letta.OperationGet, Resource: letta.ResourceCustom},
	}

	results, err := letta.NewBatchExecutor(client, 0).Execute(context.Background(), operations)
	require.NoError(t, err)
	require.Len(t, results, len(operations))

	for _, result := range results {
		assert.False(t, result.Success, result.ID)
	}

	require.ErrorIs(t, results[0].Error, letta.ErrInvalidDataTypeAgent)
	require.ErrorIs(t, results[1].Error, letta.ErrUnsupportedResourceType)
	require.ErrorIs(t, results[2].Error, letta.ErrUnsupportedOperationType)
	require.ErrorIs(t, results[3].Error, errGone)
	require.ErrorIs(t, results[4].Error, letta.ErrMissingRunFunc)
}

func TestBatchExecutor_CustomOperations(t *testing.T) {
	t.Parallel()

	t.Run("concurrency is bounded", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32

		builder := letta.NewBatchBuilder()
		for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
			builder.AddCustom(id, func(context.Context) (interface{}, error) {
				current := inFlight.Add(1)
				defer inFlight.Add(-1)

				for {
					seen := peak.Load()
					if current <= seen || peak.CompareAndSwap(seen, current) {
						break
					}
				}

				time.Sleep(20 * time.Millisecond)

				return id, nil
			})
		}

		results, err := letta.NewBatchExecutor(nil, 2).Execute(context.Background(), builder.Build())
		require.NoError(t, err)
		require.Len(t, results, 6)
		assert.Equal(t, "f", results[5].Data)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("each operation gets its own timeout", func(t *testing.T) {
		t.Parallel()

		executor := letta.NewBatchExecutor(nil, 1)
		executor.SetTimeout(10 * time.Millisecond)

		operations := letta.NewBatchBuilder().
			AddCustom("slow", func(ctx context.Context) (interface{}, error) {
				<-ctx.Done()

				return nil, ctx.Err()
			}).
			Build()

		results, err := executor.Execute(context.Background(), operations)
		require.NoError(t, err)
		require.ErrorIs(t, results[0].Error, context.DeadlineExceeded)
	})

	t.Run("callbacks see every result", func(t *testing.T) {
		t.Parallel()

		var (
			mu   sync.Mutex
			seen []string
		)

		record := func(result *letta.BatchResult) {
			mu.Lock()
			defer mu.Unlock()

			seen = append(seen, result.ID)
		}

		operations := []letta.BatchOperation{
			{ID: "one", Resource: letta.ResourceCustom, Run: func(context.Context) (interface{}, error) { return 1, nil }, Callback: record},
			{ID: "two", Resource: letta.ResourceCustom, Run: func(context.Context) (interface{}, error) { return 2, nil }, Callback: record},
		}

		_, err := letta.NewBatchExecutor(nil, 2).Execute(context.Background(), operations)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.ElementsMatch(t, []string{"one", "two"}, seen)
	})
}

func TestBatchTransaction(t *testing.T) {
	t.Parallel()

	t.Run("failure deletes what was created", func(t *testing.T) {
		t.Parallel()

		errQuota := errors.New("block quota exceeded")

		agents := &MockAgentsClient{}
		blocks := &MockBlocksClient{}
		client := &MockClient{}
		client.On("Agents").Return(agents)
		client.On("Blocks").Return(blocks)

		agentRequest := &letta.CreateAgentRequest{Name: "helper"}
		blockRequest := &letta.CreateBlockRequest{Label: "human", Value: "Ada"}

		agents.On("Create", mock.Anything, agentRequest).Return(&letta.Agent{ID: "agent-1"}, nil)
		agents.On("Delete", mock.Anything, "agent-1").Return(nil).Once()
		blocks.On("Create", mock.Anything, blockRequest).Return(nil, errQuota)

		operations := letta.NewBatchBuilder().
			AddCreateAgent("agent", agentRequest).
			AddCreateBlock("block", blockRequest).
			Build()

		transaction := letta.NewBatchTransaction(letta.NewBatchExecutor(client, 2))
		for _, operation := range operations {
			transaction.Add(operation)
		}

		results, err := transaction.Execute(context.Background())
		require.Error(t, err)
		require.ErrorIs(t, err, letta.ErrTransactionFailed)
		assert.Contains(t, err.Error(), "block")
		require.Len(t, results, 2)
		assert.True(t, results[0].Success)
		require.ErrorIs(t, results[1].Error, errQuota)

		agents.AssertExpectations(t)
		blocks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("rollback can be disabled", func(t *testing.T) {
		t.Parallel()

		agents := &MockAgentsClient{}
		client := &MockClient{}
		client.On("Agents").Return(agents)

		agentRequest := &letta.CreateAgentRequest{Name: "helper"}
		agents.On("Create", mock.Anything, agentRequest).Return(&letta.Agent{ID: "agent-1"}, nil)

		transaction := letta.NewBatchTransaction(letta.NewBatchExecutor(client, 1)).
			SetRollback(false).
			Add(letta.BatchOperation{ID: "agent", Type: letta.OperationCreate, Resource: letta.ResourceAgent, Data: agentRequest}).
			Add(letta.BatchOperation{ID: "broken", Type: letta.OperationCreate, Resource: letta.ResourceAgent, Data: 42})

		results, err := transaction.Execute(context.Background())
		require.NoError(t, err)
		assert.False(t, results[1].Success)
		agents.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
