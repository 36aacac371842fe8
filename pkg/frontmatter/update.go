package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SetLabels replaces the `labels` field of a note while preserving the rest
// of the frontmatter. The `tags` field is cleared of any label that is no
// longer present so that RawLabels returns exactly labels afterwards.
// Content without frontmatter gets a new block.
func SetLabels(content []byte, labels []string) ([]byte, error) {
	if labels == nil {
		labels = []string{}
	}

	yamlStr, body, err := extractFrontmatterString(content)
	if err != nil {
		return nil, err
	}

	if yamlStr == "" {
		var result bytes.Buffer
		result.WriteString("---\n")
		result.WriteString("labels: " + flowList(labels) + "\n")
		result.WriteString("---\n")
		result.Write(body)
		return result.Bytes(), nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(yamlStr), &root); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a mapping")
	}
	doc := root.Content[0]

	keep := make(map[string]bool, len(labels))
	for _, l := range labels {
		keep[l] = true
	}
	setSequence(doc, "labels", labels)
	if tags, ok := sequenceValues(doc, "tags"); ok {
		var kept []string
		for _, t := range tags {
			if keep[t] {
				kept = append(kept, t)
			}
		}
		setSequence(doc, "tags", kept)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}

	var result bytes.Buffer
	result.WriteString("---\n")
	result.WriteString(strings.TrimSpace(buf.String()))
	result.WriteString("\n---\n")
	result.Write(body)
	return result.Bytes(), nil
}

func flowList(values []string) string {
	node := sequenceNode(values)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "[]"
	}
	return strings.TrimSpace(string(out))
}

func sequenceNode(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	return seq
}

// setSequence sets key to a flow sequence, adding the key when missing.
func setSequence(node *yaml.Node, key string, values []string) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = sequenceNode(values)
			return
		}
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		sequenceNode(values),
	)
}

func sequenceValues(node *yaml.Node, key string) ([]string, bool) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value != key {
			continue
		}
		value := node.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			return nil, false
		}
		var out []string
		for _, item := range value.Content {
			out = append(out, item.Value)
		}
		return out, true
	}
	return nil, false
}

// extractFrontmatterString extracts the raw YAML string between delimiters.
func extractFrontmatterString(content []byte) (string, []byte, error) {
	contentStr := string(content)

	if !strings.HasPrefix(contentStr, "---\n") && !strings.HasPrefix(contentStr, "---\r\n") {
		return "", content, nil
	}

	startIdx := strings.Index(contentStr, "\n") + 1

	endIdx := strings.Index(contentStr[startIdx:], "\n---\n")
	if endIdx == -1 {
		endIdx = strings.Index(contentStr[startIdx:], "\r\n---\r\n")
		if endIdx == -1 {
			return "", nil, fmt.Errorf("invalid frontmatter: no closing delimiter found")
		}
	}
	endIdx += startIdx

	yamlContent := contentStr[startIdx:endIdx]

	bodyStart := endIdx + 5 // length of "\n---\n"
	if bodyStart > len(contentStr) {
		bodyStart = len(contentStr)
	}

	return yamlContent, []byte(contentStr[bodyStart:]), nil
}
