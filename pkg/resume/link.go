package resume

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Link is a URL with a display name.
type Link struct {
	URL         string `yaml:"url" json:"url"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name,omitempty"`
}

// linkDoc avoids recursion into Link.UnmarshalYAML.
type linkDoc Link

// UnmarshalYAML accepts either a bare URL string or a {url, display_name}
// mapping.
func (l *Link) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = Link{URL: value.Value}
		return nil

	case yaml.MappingNode:
		var doc linkDoc
		if err := value.Decode(&doc); err != nil {
			return fmt.Errorf("decode link: %w", err)
		}
		*l = Link(doc)
		return nil

	default:
		return fmt.Errorf("line %d: link must be a URL string or a {url, display_name} mapping", value.Line)
	}
}

// normalize trims both fields and derives DisplayName from the URL when it
// is empty.
func (l *Link) normalize() {
	l.URL = strings.TrimSpace(l.URL)
	l.DisplayName = strings.TrimSpace(l.DisplayName)
	if l.DisplayName == "" {
		l.DisplayName = DisplayName(l.URL)
	}
}

// DisplayName strips the http:// or https:// scheme from url.
func DisplayName(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return url[len("https://"):]
	case strings.HasPrefix(url, "http://"):
		return url[len("http://"):]
	default:
		return url
	}
}

// String returns the display name.
func (l Link) String() string {
	return l.DisplayName
}
