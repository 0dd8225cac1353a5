package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"news-crawler/pkg/domain"
)

// ParseSourcesFile reads sources from a .yaml/.yml list or a plain text file
func ParseSourcesFile(path string) ([]domain.Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sources file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSourcesYAML(file)
	default:
		return ParseSourcesText(file)
	}
}

// ParseSourcesText reads one source per line as url[,spiderType[,industry]].
// Blank lines and lines starting with # are skipped.
func ParseSourcesText(r io.Reader) ([]domain.Source, error) {
	var sources []domain.Source
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(strings.TrimRight(line, ", \t"), ",")
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		if strings.TrimSpace(fields[0]) == "" {
			continue
		}
		sources = append(sources, domain.NewSource(fields[0], fields[1], fields[2]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sources at line %d: %w", lineNum, err)
	}
	if len(sources) == 0 {
		return nil, ErrNoItems
	}
	return sources, nil
}

// yamlSource accepts either a bare URL string or a mapping
type yamlSource struct {
	domain.Source
}

func (s *yamlSource) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Source = domain.NewSource(node.Value, "", "")
		return nil
	}
	var src domain.Source
	if err := node.Decode(&src); err != nil {
		return err
	}
	s.Source = domain.NewSource(src.URL, src.SpiderType, src.Industry)
	return nil
}

// ParseSourcesYAML reads a YAML sequence of sources
func ParseSourcesYAML(r io.Reader) ([]domain.Source, error) {
	var raw []yamlSource
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, ErrNoItems
		}
		return nil, fmt.Errorf("failed to decode sources YAML: %w", err)
	}

	sources := make([]domain.Source, 0, len(raw))
	for _, s := range raw {
		if s.URL == "" {
			continue
		}
		sources = append(sources, s.Source)
	}
	if len(sources) == 0 {
		return nil, ErrNoItems
	}
	return sources, nil
}
