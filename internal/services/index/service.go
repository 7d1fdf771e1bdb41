package index

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Logger is the logging interface used by the index service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Embedder produces a vector for a piece of text. Satisfied by
// ai.EmbeddingProvider.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Service builds, loads and deletes per-user vector indexes. All operations
// on one user's index are serialized through a per-user mutex so a query can
// never observe a half-replaced index.
type Service struct {
	config   *Config
	store    *Store
	embedder Embedder
	logger   Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(config *Config, embedder Embedder, logger Logger) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("index config: %w", err)
	}
	if embedder == nil {
		return nil, fmt.Errorf("index service requires an embedder")
	}

	return &Service{
		config:   config,
		store:    NewStore(config.Dir),
		embedder: embedder,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

func (s *Service) lockFor(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	if !ok {
		l = &sync.Mutex{}
		s.locks[username] = l
	}
	return l
}

// Build parses raw PDF bytes, chunks the surviving page text, embeds every
// chunk and persists the resulting index for username, fully replacing any
// prior index. Source names the uploaded file and is carried as chunk
// metadata.
func (s *Service) Build(ctx context.Context, raw []byte, username, source string) (*Index, error) {
	lock := s.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	pages, err := extractPages(raw)
	if err != nil {
		return nil, err
	}

	if replacing, err := s.store.Exists(username); err == nil && replacing {
		s.logger.Info("replacing existing index", "username", username)
	}

	s.logger.Info("indexing document",
		"username", username, "source", source, "pages", len(pages))

	idx := &Index{
		Username:  username,
		Source:    source,
		PageCount: len(pages),
		CreatedAt: time.Now().UTC(),
	}

	for _, p := range pages {
		for ordinal, part := range chunkText(p.Text, s.config.ChunkSize, s.config.ChunkOverlap) {
			vector, err := s.embedder.CreateEmbedding(ctx, part)
			if err != nil {
				return nil, fmt.Errorf("embed chunk (page %d, chunk %d): %w", p.Number, ordinal, err)
			}
			if idx.Dim == 0 {
				idx.Dim = len(vector)
			}
			idx.Chunks = append(idx.Chunks, Chunk{
				Content: part,
				Source:  source,
				Page:    p.Number,
				Ordinal: ordinal,
				Vector:  vector,
			})
		}
	}

	if len(idx.Chunks) == 0 {
		return nil, ErrEmptyDocument
	}

	if err := s.store.Save(username, idx); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}

	s.logger.Info("index built",
		"username", username, "chunks", len(idx.Chunks), "dim", idx.Dim)
	return idx, nil
}

// Load returns the persisted index for username; ErrIndexNotFound if the
// user has never uploaded a document.
func (s *Service) Load(username string) (*Index, error) {
	lock := s.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Load(username)
}

// Delete removes the persisted index; ErrIndexNotFound if absent.
func (s *Service) Delete(username string) error {
	lock := s.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(username); err != nil {
		return err
	}
	s.logger.Info("index deleted", "username", username)
	return nil
}

// Retrieve embeds the query and returns the topK most similar chunks from
// the user's index.
func (s *Service) Retrieve(ctx context.Context, username, query string, topK int) ([]Match, error) {
	idx, err := s.Load(username)
	if err != nil {
		return nil, err
	}

	vector, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches := idx.Search(vector, topK)
	s.logger.Debug("retrieval complete",
		"username", username, "top_k", topK, "matches", len(matches))
	return matches, nil
}
