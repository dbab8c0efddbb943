package internal

// Preferences holds user-tunable settings persisted alongside sessions.
// Loading merges stored values over these defaults field-by-field.
type Preferences struct {
	Theme               string `json:"theme" yaml:"theme"`
	DefaultExportFormat string `json:"default_export_format" yaml:"default_export_format"`
	IncludeSources      bool   `json:"include_sources" yaml:"include_sources"`
	IncludeEntities     bool   `json:"include_entities" yaml:"include_entities"`
	Endpoint            string `json:"endpoint" yaml:"endpoint"`
}

// DefaultPreferences returns the built-in defaults
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:               "dark",
		DefaultExportFormat: "json",
		IncludeSources:      true,
		IncludeEntities:     true,
		Endpoint:            "http://localhost:8000",
	}
}
