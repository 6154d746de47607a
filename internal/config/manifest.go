package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes a workspace in a YAML file, for import and export.
type Manifest struct {
	Name   string         `yaml:"name"`
	Branch string         `yaml:"branch,omitempty"`
	Repos  []ManifestRepo `yaml:"repos"`
}

// ManifestRepo is one repository of a manifest. Relative paths are resolved
// against the manifest's directory.
type ManifestRepo struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// Validate checks the manifest for missing fields.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("manifest: name is required")
	}
	if len(m.Repos) == 0 {
		return errors.New("manifest: at least one repo is required")
	}
	for i, r := range m.Repos {
		if strings.TrimSpace(r.Path) == "" {
			return fmt.Errorf("manifest: repo %d: path is required", i)
		}
	}
	return nil
}

// LoadManifest reads and validates the manifest at path. Repository paths
// come back absolute.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, err
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Manifest{}, fmt.Errorf("resolving manifest directory: %w", err)
	}
	for i, r := range m.Repos {
		p := expandHome(r.Path)
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		m.Repos[i].Path = filepath.Clean(p)
	}
	return m, nil
}

// ParseManifest decodes and validates manifest YAML. Unknown keys are
// rejected so typos surface instead of being ignored.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// SaveManifest writes m to path. When the file already exists its comments
// and unrelated keys are kept by editing the yaml.Node tree in place.
func SaveManifest(path string, m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading manifest: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]

	var fresh yaml.Node
	if err := fresh.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	for i := 0; i < len(fresh.Content)-1; i += 2 {
		setKey(root, fresh.Content[i].Value, fresh.Content[i+1])
	}
	if m.Branch == "" {
		deleteKey(root, "branch")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(path, buf.Bytes())
}

// setKey replaces the value of key in a mapping node, or appends the pair.
func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			value.HeadComment = mapping.Content[i+1].HeadComment
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

func deleteKey(mapping *yaml.Node, key string) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return
		}
	}
}

// writeAtomic writes data to a temp file next to path and renames it over
// path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vibekanban.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
