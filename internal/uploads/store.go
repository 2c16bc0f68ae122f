package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists uploaded images under a single server-controlled
// directory, referenced by stored filename only.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under a collision-resistant name derived from the
// client filename and returns the stored name.
func (s *Store) Save(name string, data []byte) (string, error) {
	stored := fmt.Sprintf("%d_%s_%s", time.Now().Unix(), uuid.NewString()[:8], Sanitize(name))
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", err
	}
	return stored, nil
}

// Sanitize strips path components and anything outside a conservative
// character set.
func Sanitize(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := b.String()
	if strings.Trim(cleaned, "._-") == "" {
		return "upload"
	}
	return cleaned
}
