package vault

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectNamesFor returns the project name(s) declared in a document's
// YAML front matter, used as the fallback when a task line carries no
// explicit project annotation. Returns nil when the document has no
// front matter, no project key, or cannot be read.
func (s *Store) ProjectNamesFor(id string) []string {
	text, err := s.ReadText(id)
	if err != nil {
		return nil
	}
	props := parseFrontMatter(text)
	if props == nil {
		return nil
	}
	switch v := props["project"].(type) {
	case string:
		if name := strings.TrimSpace(v); name != "" {
			return []string{name}
		}
	case []any:
		var names []string
		for _, item := range v {
			if name, ok := item.(string); ok {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
		}
		return names
	}
	return nil
}

// parseFrontMatter extracts the YAML front matter block, if present.
// Malformed YAML is treated as no front matter.
func parseFrontMatter(text string) map[string]any {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return nil
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil
	}
	var props map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &props); err != nil {
		return nil
	}
	return props
}
