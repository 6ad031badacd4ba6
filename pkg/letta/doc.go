// Package letta provides types, interfaces, and helpers for working with the
// Letta agent-management REST API.
//
// # Overview
//
// The letta package defines the domain types (Agent, Block, Tool, Source,
// Job, Step, ...) and the interfaces of the resource clients (AgentsClient,
// ToolsClient, ...). A concrete implementation is provided by the
// lettaclient package, which wires configuration, transport and
// authentication. Most consumers import lettaclient to construct a client
// and then use the interfaces exposed here.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/letta-client/pkg/letta"
//	  "github.com/fivetwenty-io/letta-client/pkg/lettaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := lettaclient.Cloud("sk-...")
//	  if err != nil { log.Fatal(err) }
//
//	  agents, err := cli.Agents().List(ctx, &letta.ListAgentsParams{
//	    ListParams: letta.ListParams{Limit: letta.Int(10)},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = agents
//	}
//
// # Configuration
//
// ClientConfig is immutable. NewClientConfig validates the base URL and each
// With method returns a modified copy:
//
//	cfg, err := letta.NewClientConfig("http://localhost:8283")
//	cfg = cfg.WithAuth(letta.BearerAuth(token)).WithTimeout(10 * time.Second)
//
// # Pagination
//
// List endpoints take a ListParams cursor (Limit, Before, After, Order).
// ListStream methods wrap them in a Stream that fetches pages lazily:
//
//	stream := cli.Agents().ListStream(&letta.ListAgentsParams{
//	  ListParams: letta.ListParams{Limit: letta.Int(50)},
//	})
//	for agent, err := range stream.All(ctx) {
//	  if err != nil { /* handle error */ }
//	  _ = agent
//	}
//
// Breaking out of the loop stops the stream without further requests.
//
// # Errors
//
// Every failure is one of ConnectionError, TimeoutError, APIError,
// NotFoundError, DecodeError or InvalidConfigError. KindOf and the Is*
// helpers branch on them without type assertions; NotFoundError carries the
// resource type and id that produced the 404.
//
// # Interceptors
//
// An InterceptorChain runs request and response hooks around every call.
// Ready-made interceptors cover logging, static headers, request ids, rate
// limiting (golang.org/x/time/rate), Prometheus metrics and OpenTelemetry
// tracing.
package letta
