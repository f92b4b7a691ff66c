// Package generator produces the synthetic source tables for the
// extract stage. Each producer draws from a fixed-seed random stream,
// so every producer is reproducible in isolation.
package generator

import (
	"time"

	"github.com/dbsmedya/gopipeline/internal/config"
	"github.com/dbsmedya/gopipeline/internal/table"
)

// Fixed per-producer seeds. Not shared: each producer owns its stream.
const (
	seedWebScraped = 42
	seedAPI        = 43
	seedDatabase   = 44
	seedStreaming  = 45
)

// Source table keys produced by Extract.
const (
	KeyWebScraped = "web_scraped"
	KeyAPIData    = "api_data"
	KeyDatabase   = "database_data"
	KeyStreaming  = "streaming_data"
)

// Extract generates the four synthetic source tables with record
// counts taken from the configuration. Generation cannot fail for any
// non-negative count; a count of zero yields an empty table with the
// full column schema.
func Extract(cfg *config.SourcesConfig) *table.Set {
	now := time.Now()

	raw := table.NewSet()
	raw.Put(KeyWebScraped, generateWebScraped(cfg.WebScrapedRecords, now))
	raw.Put(KeyAPIData, generateAPIData(cfg.APIRecords, now))
	raw.Put(KeyDatabase, generateDatabaseData(cfg.DatabaseRecords, now))
	raw.Put(KeyStreaming, generateStreamingData(cfg.StreamingRecords, now))
	return raw
}
