// Package docs serves the embedded help pages behind `remind docs`.
package docs

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one help page: the lookup name (the file's basename) and the
// page's leading markdown heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists every embedded page, sorted by name.
func Topics() []Topic {
	paths, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	topics := make([]Topic, 0, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "content/"), ".md")
		if name == "" {
			continue
		}
		body, err := contentFS.ReadFile(path)
		if err != nil {
			continue
		}
		topics = append(topics, Topic{Name: name, Title: heading(string(body), name)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Get returns the markdown body for a topic name. Lookup is
// case-insensitive and ignores surrounding whitespace.
func Get(topic string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(topic))
	if name == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

// heading extracts the first markdown heading, falling back to the topic
// name for pages without one.
func heading(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			if h := strings.TrimSpace(strings.TrimLeft(line, "#")); h != "" {
				return h
			}
		}
	}
	return fallback
}
