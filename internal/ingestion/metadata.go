package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes an ingested document (a resume or a job description).
type Metadata struct {
	URL        string `json:"url,omitempty"`
	SourceType string `json:"source_type,omitempty"` // txt, md, pdf, docx, url
	Platform   string `json:"platform,omitempty"`    // detected job board platform, URL sources only
	Timestamp  string `json:"timestamp"`             // RFC3339
	Hash       string `json:"hash"`                  // SHA256 hex digest of the cleaned text
	Chars      int    `json:"chars"`                 // length of the cleaned text
}

// NewMetadata creates a Metadata for cleaned content with the current timestamp.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
