package index

import "fmt"

type Config struct {
	// Dir is the root directory for per-user index files.
	Dir string
	// ChunkSize and ChunkOverlap control text splitting, in runes. Larger
	// overlap preserves more cross-chunk context at the cost of index size.
	ChunkSize    int
	ChunkOverlap int
}

func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("index directory is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap cannot be negative")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be smaller than chunk_size")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Dir:          "vector_stores",
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}
