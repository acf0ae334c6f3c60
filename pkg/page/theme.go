package page

import (
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// StylesheetAsset is the manifest asset key that replaces the built-in
// stylesheet when a theme provides one.
const StylesheetAsset = "loginform.stylesheet"

var (
	tokenKeyPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	tokenValuePattern = regexp.MustCompile(`^[#(),.%\sa-zA-Z0-9_-]+$`)
)

// Theme is the resolved view of a go-theme manifest used by the templates.
type Theme struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"css_vars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
}

// ResolveTheme merges the base manifest tokens and assets with the named
// variant. Tokens that could break out of a style declaration are dropped.
func ResolveTheme(manifest *theme.Manifest, variant string) Theme {
	if manifest == nil {
		return Theme{}
	}

	resolved := Theme{
		Name:    manifest.Name,
		Variant: strings.TrimSpace(variant),
		Tokens:  map[string]string{},
	}
	for key, value := range manifest.Tokens {
		resolved.Tokens[key] = value
	}

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}

	if v, ok := manifest.Variants[resolved.Variant]; ok {
		for key, value := range v.Tokens {
			resolved.Tokens[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
	}

	resolved.CSSVars = cssVars(resolved.Tokens)
	resolved.CSSVarsStyle = cssVarsStyle(resolved.CSSVars)
	if file := strings.TrimSpace(files[StylesheetAsset]); file != "" {
		resolved.Stylesheet = assetURL(prefix, file)
	}
	if len(resolved.Tokens) == 0 {
		resolved.Tokens = nil
	}
	return resolved
}

// LoadManifest decodes a YAML theme manifest.
func LoadManifest(r io.Reader) (*theme.Manifest, error) {
	var manifest theme.Manifest
	if err := yaml.NewDecoder(r).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("page: decode theme manifest: %w", err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("%w: manifest has no name", ErrThemeNotFound)
	}
	return &manifest, nil
}

// LoadManifestFile reads a manifest from disk.
func LoadManifestFile(filename string) (*theme.Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("page: open theme manifest: %w", err)
	}
	defer f.Close()
	return LoadManifest(f)
}

func selectTheme(selector theme.ThemeSelector, name, variant string) (Theme, error) {
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %s: %v", ErrThemeNotFound, name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return Theme{}, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	resolved := ResolveTheme(selection.Manifest, selection.Variant)
	if selection.Theme != "" {
		resolved.Name = selection.Theme
	}
	return resolved, nil
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimPrefix(strings.TrimSpace(key), "--")
		value = strings.TrimSpace(value)
		if !tokenKeyPattern.MatchString(key) || !tokenValuePattern.MatchString(value) {
			continue
		}
		out["--"+key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key]+";")
	}
	return strings.Join(parts, " ")
}

func assetURL(prefix, file string) string {
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	if prefix == "" {
		return "/" + strings.TrimPrefix(file, "/")
	}
	if strings.Contains(prefix, "://") {
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
	return path.Join("/", prefix, file)
}
