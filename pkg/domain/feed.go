package domain

// SourceKind defines how a source is fetched and decoded
type SourceKind string

const (
	SourceRSS      SourceKind = "rss"      // RSS/Atom document parsed directly
	SourceRSS2JSON SourceKind = "rss2json" // rss2json.com-style JSON proxy
)

// Source represents a news feed source polled by the aggregator
type Source struct {
	ID   string     `yaml:"id" json:"id,omitempty"`
	URL  string     `yaml:"url" json:"url"`
	Name string     `yaml:"name" json:"name,omitempty"` // display name, also the reputation lookup key
	Kind SourceKind `yaml:"kind" json:"kind,omitempty" jsonschema:"enum=rss,enum=rss2json"`
}

// DisplayName returns the configured name or the fallback, usually the feed title
func (s Source) DisplayName(fallback string) string {
	if s.Name != "" {
		return s.Name
	}
	if fallback != "" {
		return fallback
	}
	return "Unknown"
}
