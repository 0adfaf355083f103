package docstore

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/studypdf/studypdf/internal/chunker"
)

// Document is one uploaded file's extracted text plus display metadata.
// Documents live only in memory for the duration of a session; nothing is
// persisted.
type Document struct {
	ID         string
	Filename   string
	Title      string
	Text       string
	Words      int
	Tokens     int
	UploadedAt time.Time
}

// NewDocument builds a Document from extracted text, deriving the word count
// and token estimate once at upload time.
func NewDocument(id, filename, title, text string) *Document {
	if title == "" {
		title = strings.TrimSuffix(filename, extOf(filename))
	}
	return &Document{
		ID:         id,
		Filename:   filename,
		Title:      title,
		Text:       text,
		Words:      len(strings.Fields(text)),
		Tokens:     chunker.EstimateTokens(text),
		UploadedAt: time.Now(),
	}
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

// Size classification thresholds, in estimated tokens.
const (
	smallDocTokens  = 3000
	mediumDocTokens = 5000
)

// SizeClass buckets a document by estimated tokens: "small" fits a request
// comfortably, "medium" fits with room to spare, "large" will need reduction.
func SizeClass(tokens int) string {
	switch {
	case tokens <= smallDocTokens:
		return "small"
	case tokens <= mediumDocTokens:
		return "medium"
	default:
		return "large"
	}
}

// ContentID derives a short stable document ID from the file bytes.
func ContentID(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])[:16]
}

// Store is a thread-safe in-memory document registry with TTL eviction.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Document
	ttl  time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		docs: make(map[string]*Document),
		ttl:  ttl,
	}
}

func (s *Store) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *Store) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// Cleanup removes documents past their TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, doc := range s.docs {
		if doc.UploadedAt.Before(cutoff) {
			delete(s.docs, id)
		}
	}
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
