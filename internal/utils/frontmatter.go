package utils

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// ParseFrontmatter decodes the YAML block of a document into out and returns
// the markdown body that follows it.
// Expected format:
// ---
// title: Hello
// tags: [news]
// ---
// Markdown content here
func ParseFrontmatter(content []byte, out any) (string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return "", errors.New("missing frontmatter: document must start with '---'")
	}

	lines := bytes.Split(content, []byte("\n"))

	// Skip the opening "---" line
	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return "", errors.New("missing closing frontmatter delimiter '---'")
	}

	yamlContent := bytes.Join(lines[1:closingDelim], []byte("\n"))
	if err := yaml.Unmarshal(yamlContent, out); err != nil {
		return "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := bytes.Join(lines[closingDelim+1:], []byte("\n"))
	return string(bytes.TrimLeft(body, "\r\n")), nil
}

// RenderFrontmatter encodes meta as a delimited YAML block followed by body
func RenderFrontmatter(meta any, body string) ([]byte, error) {
	yamlContent, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(frontmatterDelim)
	buf.WriteByte('\n')
	buf.Write(yamlContent)
	buf.Write(frontmatterDelim)
	buf.WriteString("\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}
