package models

// Asset is one retrieved, or attempted, JavaScript resource.
// Content is nil when the retrieval failed.
type Asset struct {
	URL        string  `json:"url"`
	Content    *string `json:"-"`
	Size       int     `json:"size"`
	StatusCode int     `json:"status,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// NewLocalAsset wraps in-hand content as a successful asset.
func NewLocalAsset(source, content string) Asset {
	return Asset{
		URL:        source,
		Content:    &content,
		Size:       len(content),
		StatusCode: 200,
	}
}

// HasContent reports whether the asset carries a non-empty body.
func (a Asset) HasContent() bool {
	return a.Content != nil && *a.Content != ""
}

// Body returns the content or an empty string.
func (a Asset) Body() string {
	if a.Content == nil {
		return ""
	}
	return *a.Content
}

// Success reports whether content is present and the status was 200.
func (a Asset) Success() bool {
	return a.Content != nil && a.StatusCode == 200
}
