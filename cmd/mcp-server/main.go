package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/simplefin-mcp/simplefin-go/pkg/simplefin"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// The access URL is re-read from the environment on every call, so the
	// client can start before claim_setup_token has ever been run.
	client, err := simplefin.NewClient(&simplefin.ClientOptions{
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to initialize SimpleFIN client: %v", err)
	}
	defer client.Close()

	impl := &mcp.Implementation{
		Name:    "simplefin",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	registerTools(server, client)
	registerResources(server)

	// PORT selects the stateless HTTP binding; without it the server speaks
	// stdio (for Claude Desktop and similar hosts).
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if err := serveHTTP(server, port); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func serveHTTP(server *mcp.Server, port string) error {
	apiKey, err := resolveAPIKey()
	if err != nil {
		return err
	}

	var handler http.Handler = mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return server },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)
	if apiKey != "" {
		handler = requireBearer(apiKey, handler)
	}

	addr := ":" + port
	log.Printf("Starting SimpleFIN MCP server on %s", addr)
	return http.ListenAndServe(addr, handler)
}

// resolveAPIKey returns the static bearer token guarding the HTTP binding.
// An empty key is allowed outside production.
func resolveAPIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("SIMPLEFIN_MCP_API_KEY"))
	if key == "" {
		key = strings.TrimSpace(os.Getenv("SIMPLEFIN_MCP_TOKEN"))
	}
	if key != "" {
		return key, nil
	}

	environment := strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT")))
	if environment == "production" {
		return "", errors.New("SIMPLEFIN_MCP_API_KEY is not set. " +
			"Set it to a strong random value and provide it as a Bearer token.")
	}
	return "", nil
}

func requireBearer(token string, next http.Handler) http.Handler {
	expected := []byte("Bearer " + token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), expected) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
