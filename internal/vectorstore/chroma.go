// Package vectorstore provides a ChromaDB-backed nearest-neighbor search
// client for the match engine.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jonathan/talent-match/internal/embeddings"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

// QueryResponse mirrors the Chroma query payload: one nested level per
// submitted query. Fields are deliberately untyped because the service may
// return missing or malformed arrays; callers must type-check rather than
// trust the shape.
type QueryResponse struct {
	IDs       any `json:"ids"`
	Metadatas any `json:"metadatas"`
	Distances any `json:"distances"`
}

// Client queries ChromaDB collections over the v2 HTTP API. Query text is
// embedded through the configured provider before being submitted.
type Client struct {
	httpClient *http.Client
	baseURL    string
	embedder   embeddings.Provider
	log        *zap.Logger

	mu            sync.Mutex
	collectionIDs map[string]string
}

// NewClient creates a Chroma client against the given base URL, such as
// "http://localhost:8000".
func NewClient(baseURL string, embedder embeddings.Provider, log *zap.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: defaultRequestTimeout},
		baseURL:       baseURL,
		embedder:      embedder,
		log:           log,
		collectionIDs: make(map[string]string),
	}
}

type queryRequest struct {
	QueryEmbeddings [][]float32       `json:"query_embeddings"`
	NResults        int               `json:"n_results"`
	Where           map[string]string `json:"where,omitempty"`
	Include         []string          `json:"include"`
}

// Query embeds queryText and runs a nearest-neighbor search over the named
// collection, optionally filtered by metadata equality.
func (c *Client) Query(ctx context.Context, collection, queryText string, limit int, where map[string]string) (*QueryResponse, error) {
	embedding, err := c.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	collectionID, err := c.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}

	reqBody := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        limit,
		Where:           where,
		Include:         []string{"metadatas", "distances"},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/tenants/default_tenant/databases/default_database/collections/%s/query",
		c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query chroma: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chroma API returned status %d: %s", resp.StatusCode, string(body))
	}

	var out QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &out, nil
}

type upsertRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Metadatas  []map[string]any `json:"metadatas"`
	Documents  []string         `json:"documents"`
}

// Upsert embeds the document text and writes it into the named collection,
// replacing any existing entry with the same ID.
func (c *Client) Upsert(ctx context.Context, collection, id, document string, metadata map[string]any) error {
	embedding, err := c.embedder.Embed(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	collectionID, err := c.collectionID(ctx, collection)
	if err != nil {
		return err
	}

	data, err := json.Marshal(upsertRequest{
		IDs:        []string{id},
		Embeddings: [][]float32{embedding},
		Metadatas:  []map[string]any{metadata},
		Documents:  []string{document},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal upsert: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/tenants/default_tenant/databases/default_database/collections/%s/upsert",
		c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upsert into chroma: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chroma upsert returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// EnsureCollection creates the collection if it does not already exist and
// caches its ID.
func (c *Client) EnsureCollection(ctx context.Context, collection string) error {
	data, err := json.Marshal(map[string]any{
		"name":          collection,
		"get_or_create": true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal collection request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/tenants/default_tenant/databases/default_database/collections", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create collection %s, status %d: %s", collection, resp.StatusCode, string(body))
	}

	var info struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to parse collection response: %w", err)
	}
	if info.ID != "" {
		c.mu.Lock()
		c.collectionIDs[collection] = info.ID
		c.mu.Unlock()
	}
	return nil
}

// collectionID resolves a collection name to its ID, caching the result.
func (c *Client) collectionID(ctx context.Context, collection string) (string, error) {
	c.mu.Lock()
	if id, ok := c.collectionIDs[collection]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/api/v2/tenants/default_tenant/databases/default_database/collections/%s",
		c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build collection request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to look up collection %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("collection %s not found", collection)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to fetch collection %s, status %d: %s", collection, resp.StatusCode, string(body))
	}

	var info struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to parse collection response: %w", err)
	}
	if info.ID == "" {
		return "", fmt.Errorf("collection %s has an empty ID", collection)
	}

	c.mu.Lock()
	c.collectionIDs[collection] = info.ID
	c.mu.Unlock()
	c.log.Debug("resolved chroma collection", zap.String("collection", collection), zap.String("id", info.ID))
	return info.ID, nil
}
