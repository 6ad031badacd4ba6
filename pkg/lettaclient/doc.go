// Package lettaclient provides the primary entry point for constructing a
// Letta API client that implements the letta.Client interface.
//
// It layers configuration and HTTP transport on top of the resource
// interfaces and types defined in the letta package. Most applications
// import lettaclient to build a client, then use the returned letta.Client
// to reach resource-specific clients such as Agents(), Tools() or Jobs().
//
// # Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/letta-client/pkg/lettaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // A local server on http://localhost:8283 without auth.
//	  cli, err := lettaclient.Local()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or Letta Cloud with an API key:
//	  cli, err = lettaclient.Cloud("sk-let-...")
//	  if err != nil { log.Fatal(err) }
//
//	  health, err := cli.Health().Check(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(health.Version)
//	}
//
// # Environment
//
// NewFromEnv reads LETTA_BASE_URL, LETTA_PROJECT and the first of
// LETTA_API_KEY, LETTA_TOKEN or LETTA_AUTH_TOKEN.
//
// # Custom configuration
//
// For timeouts, retries, headers, logging or interceptors build a
// letta.ClientConfig and pass it to New:
//
//	cfg, err := letta.NewClientConfig("https://letta.internal.example.com")
//	if err != nil { log.Fatal(err) }
//	cli, err := lettaclient.New(cfg.
//	  WithAuth(letta.BearerAuth(token)).
//	  WithTimeout(10 * time.Second).
//	  WithRetryOn5xx(true))
package lettaclient
