//go:build integration

package lexicon

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestMongoSource_Integration requires a running MongoDB with a seeded
// words collection. Point ETYMOSCOPE_MONGO_URI at it, e.g.
//
//	ETYMOSCOPE_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/lexicon
func TestMongoSource_Integration(t *testing.T) {
	uri := os.Getenv("ETYMOSCOPE_MONGO_URI")
	if uri == "" {
		t.Skip("ETYMOSCOPE_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	src := &MongoSource{
		URI:        uri,
		Database:   "etymoscope",
		Collection: "words",
	}

	ix, err := Load(ctx, src)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ix.Len() == 0 {
		t.Error("index should not be empty")
	}
}
