package api

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the project content. Document
// fields are hashed through their JSON encoding, which orders object keys.
func (p Project) Hash() string {
	h := blake3.New()

	for _, s := range []string{p.ID, p.Title, p.Slug, p.Category, p.TechStack, p.ProjectURL, p.GithubURL} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	for _, doc := range []any{p.DevelopmentProcess, p.DesignInspiration} {
		if doc != nil {
			b, err := json.Marshal(doc)
			if err != nil {
				// Unencodable values only come from callers building projects by hand.
				b = []byte("!")
			}
			h.Write(b)
		}
		h.Write([]byte{0})
	}

	for _, media := range [][]MediaItem{p.DemoMedia, p.InspirationMedia} {
		for _, m := range media {
			for _, s := range []string{m.ID, m.Title, string(m.Type), m.File.URL, m.Caption, m.AltText} {
				h.Write([]byte(s))
				h.Write([]byte{0})
			}
		}
		h.Write([]byte{0}) // end of media list
	}

	// Timestamps in RFC3339Nano (UTC)
	if !p.CreatedAt.IsZero() {
		h.Write([]byte(p.CreatedAt.UTC().Format(timeRFC3339Nano)))
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

const timeRFC3339Nano = "2006-01-02T15:04:05.999999999Z07:00"
