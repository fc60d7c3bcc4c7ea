package integration

import (
	"context"
	"os"
	"testing"

	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/models"
)

// Runs against a real backend, e.g.
// RAG_BACKEND_URL=http://localhost:8000 go test ./integration

func TestQueryPost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	url := os.Getenv("RAG_BACKEND_URL")
	if url == "" {
		t.Skip("RAG_BACKEND_URL not set")
	}
	c := client.New(url, os.Getenv("RAG_BACKEND_API_KEY"))

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("failed to get health: %v", err)
	}
	if health.Status != models.HealthStatusOK {
		t.Fatalf("backend is not healthy: %s %s", health.Status, health.Detail)
	}

	resp, err := c.QueryPost(context.Background(), models.QueryPostRequest{
		Query: "This is a test query.",
		TopK:  1,
	})
	if err != nil {
		t.Fatalf("failed to post query: %v", err)
	}
	if resp.Answer == "" {
		t.Error("expected an answer")
	}
}
