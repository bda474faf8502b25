package lexicon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/httputil"
	"github.com/tetraptych/etymoscope-kiro/pkg/observability"
)

// Source retrieves the raw word table from wherever it lives.
//
// Implementations return coded errors: ErrCodeDataUnavailable when the
// source cannot be reached or read, ErrCodeDataFormat when the payload does
// not decode into the expected word → entry shape.
type Source interface {
	// Fetch retrieves the raw word table.
	Fetch(ctx context.Context) (map[string]Entry, error)

	// String describes the source for logging.
	String() string
}

// Load fetches the word table from src and builds the immutable index.
func Load(ctx context.Context, src Source) (*Index, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Build(raw), nil
}

// Decode reads a JSON word table from r.
//
// The input must be a JSON object mapping words to entries:
//
//	{
//	  "water": {"definition": "a clear liquid", "relatedWords": ["aqua"]},
//	  "aqua": {"definition": "water (Latin)", "relatedWords": ["water"]}
//	}
//
// Unknown fields inside entries are ignored. Decode returns a
// DATA_FORMAT error if the JSON is malformed or not an object of entries.
func Decode(r io.Reader) (map[string]Entry, error) {
	var raw map[string]Entry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataFormat, err, "word table is not a valid word to entry mapping")
	}
	return raw, nil
}

// =============================================================================
// File Source
// =============================================================================

// FileSource reads the word table from a local JSON file.
type FileSource struct {
	Path string
}

// Fetch opens and decodes the file.
func (s FileSource) Fetch(ctx context.Context) (map[string]Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "cannot read word table %s", s.Path)
	}
	defer f.Close()
	return Decode(f)
}

func (s FileSource) String() string {
	return s.Path
}

// =============================================================================
// HTTP Source
// =============================================================================

// HTTPSource fetches the word table from a remote URL.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; 4xx responses fail immediately. When Cache is set,
// successful downloads are cached so repeated invocations skip the network.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Cache  *httputil.Cache
}

// Fetch downloads and decodes the word table.
func (s *HTTPSource) Fetch(ctx context.Context) (map[string]Entry, error) {
	if err := errors.ValidateURL(s.URL); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		var raw map[string]Entry
		if ok, err := s.Cache.Get("words:"+s.URL, &raw); ok && err == nil {
			return raw, nil
		}
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		data, err := s.fetchOnce(ctx, client)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "cannot fetch word table from %s", s.URL)
	}

	raw, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		_ = s.Cache.Set("words:"+s.URL, raw)
	}
	return raw, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, client *http.Client) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	resp, err := client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: fmt.Errorf("server error: %s", resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (s *HTTPSource) String() string {
	return s.URL
}

// =============================================================================
// Mongo Source
// =============================================================================

// MongoSource reads the word table from a MongoDB collection.
//
// Each document carries one word:
//
//	{"word": "water", "definition": "a clear liquid", "relatedWords": ["aqua"]}
type MongoSource struct {
	URI        string
	Database   string
	Collection string
}

type wordDoc struct {
	Word         string   `bson:"word"`
	Definition   string   `bson:"definition"`
	RelatedWords []string `bson:"relatedWords"`
}

// Fetch connects, reads every word document, and disconnects.
func (s *MongoSource) Fetch(ctx context.Context) (map[string]Entry, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "cannot connect to %s", s.URI)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	coll := client.Database(s.Database).Collection(s.Collection)
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "cannot read collection %s.%s", s.Database, s.Collection)
	}
	defer cur.Close(ctx)

	raw := make(map[string]Entry)
	for cur.Next(ctx) {
		var doc wordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataFormat, err, "malformed word document in %s.%s", s.Database, s.Collection)
		}
		if doc.Word == "" {
			continue
		}
		raw[doc.Word] = Entry{Definition: doc.Definition, RelatedWords: doc.RelatedWords}
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "cursor error reading %s.%s", s.Database, s.Collection)
	}

	return raw, nil
}

func (s *MongoSource) String() string {
	return fmt.Sprintf("mongodb %s.%s", s.Database, s.Collection)
}
