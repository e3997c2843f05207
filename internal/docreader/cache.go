package docreader

import (
	"sync"
)

// pageCache memoizes page text and table extraction per document. Keys
// are page numbers; entries live for the document's lifetime. The cache
// is shared by every extraction rule run against the document, so
// repeated requests for the same page never re-invoke the backend.
type pageCache struct {
	mu     sync.RWMutex
	text   map[int]string
	tables map[int][]RawTable
	stats  CacheStats
}

// CacheStats provides cache performance counters
type CacheStats struct {
	TextHits    int64 `json:"text_hits"`
	TextMisses  int64 `json:"text_misses"`
	TableHits   int64 `json:"table_hits"`
	TableMisses int64 `json:"table_misses"`
}

func newPageCache() *pageCache {
	return &pageCache{
		text:   make(map[int]string),
		tables: make(map[int][]RawTable),
	}
}

// getText serves page text from cache, invoking fill on first request.
// fill errors are not cached; a transiently unreadable page may be
// retried on the next request.
func (c *pageCache) getText(page int, fill func() (string, error)) (string, error) {
	c.mu.RLock()
	if text, ok := c.text[page]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.stats.TextHits++
		c.mu.Unlock()
		return text, nil
	}
	c.mu.RUnlock()

	text, err := fill()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.text[page] = text
	c.stats.TextMisses++
	c.mu.Unlock()
	return text, nil
}

// getTables serves a page's tables from cache, invoking fill on first
// request
func (c *pageCache) getTables(page int, fill func() ([]RawTable, error)) ([]RawTable, error) {
	c.mu.RLock()
	if tables, ok := c.tables[page]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.stats.TableHits++
		c.mu.Unlock()
		return tables, nil
	}
	c.mu.RUnlock()

	tables, err := fill()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tables[page] = tables
	c.stats.TableMisses++
	c.mu.Unlock()
	return tables, nil
}

// Stats returns a snapshot of the cache counters
func (c *pageCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
