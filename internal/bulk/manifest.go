package bulk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StaleAfter is the upstream republish cadence: a manifest at least this old
// means the payload must be re-downloaded.
const StaleAfter = 24 * time.Hour

// ErrManifestIncomplete indicates a manifest document without the fields the
// pipeline depends on.
var ErrManifestIncomplete = errors.New("bulk: manifest missing required fields")

// Manifest is the small upstream metadata document describing where and when
// the full card payload was last refreshed.
type Manifest struct {
	Type        string    `json:"type"`
	UpdatedAt   time.Time `json:"updated_at"`
	DownloadURI string    `json:"download_uri"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
}

// Stale reports whether the manifest is old enough to require a re-download.
func (m *Manifest) Stale(now time.Time) bool {
	return now.Sub(m.UpdatedAt) >= StaleAfter
}

// LoadManifest reads a persisted manifest snapshot. A missing or unparsable
// file is an error; callers treat any error as stale.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return parseManifest(data)
}

func parseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if manifest.UpdatedAt.IsZero() {
		return nil, fmt.Errorf("%w: updated_at", ErrManifestIncomplete)
	}
	return &manifest, nil
}

// IsFresh reports whether the manifest snapshot at path exists, parses, and
// is within the staleness window.
func IsFresh(path string, now time.Time) bool {
	manifest, err := LoadManifest(path)
	if err != nil {
		return false
	}
	return !manifest.Stale(now)
}
