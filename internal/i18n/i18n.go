// Package i18n translates error keys into the caller's language.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

const (
	LangPT = "pt"
	LangEN = "en"
)

// Every deployment ships both catalogs; pt is the fallback.
var requiredLanguages = []string{LangPT, LangEN}

//go:embed locales/*.json
var embeddedLocales embed.FS

type catalog map[string]string

type Manager struct {
	defaultLanguage string
	catalogs        map[string]catalog
}

// NewEmbeddedManager loads the catalogs compiled into the binary.
func NewEmbeddedManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManager(defaultLanguage, locales)
}

// NewManager reads one <lang>.json catalog per language from locales.
func NewManager(defaultLanguage string, locales fs.FS) (*Manager, error) {
	files, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	catalogs := make(map[string]catalog, len(files))
	for _, file := range files {
		language := strings.ToLower(strings.TrimSuffix(file, path.Ext(file)))
		messages, err := readCatalog(locales, file)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", language, err)
		}
		catalogs[language] = messages
	}

	for _, language := range requiredLanguages {
		if _, ok := catalogs[language]; !ok {
			return nil, fmt.Errorf("required locale %q missing", language)
		}
	}

	manager := &Manager{defaultLanguage: LangPT, catalogs: catalogs}
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func readCatalog(locales fs.FS, file string) (catalog, error) {
	content, err := fs.ReadFile(locales, file)
	if err != nil {
		return nil, err
	}
	messages := catalog{}
	if err := json.Unmarshal(content, &messages); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(messages) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return messages, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	languages := make([]string, 0, len(manager.catalogs))
	for language := range manager.catalogs {
		languages = append(languages, language)
	}
	slices.Sort(languages)
	return languages
}

// NormalizeLanguage maps a tag such as "pt_BR" to a supported base language,
// or to the default.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := baseLanguage(raw); manager.supports(language) {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage picks the supported language with the highest
// q-value. Ties keep header order.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	best := ""
	bestWeight := 0.0
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		language := baseLanguage(tag)
		if !manager.supports(language) {
			continue
		}
		weight := qualityWeight(params)
		if weight > bestWeight {
			best, bestWeight = language, weight
		}
	}
	if best == "" {
		return manager.defaultLanguage
	}
	return best
}

// Translate falls back to the default language and then to the key itself.
func (manager *Manager) Translate(language string, key string) string {
	for _, candidate := range []string{manager.NormalizeLanguage(language), manager.defaultLanguage} {
		if message := strings.TrimSpace(manager.catalogs[candidate][key]); message != "" {
			return message
		}
	}
	return key
}

func (manager *Manager) supports(language string) bool {
	_, ok := manager.catalogs[language]
	return language != "" && ok
}

func baseLanguage(tag string) string {
	language := strings.ToLower(strings.TrimSpace(tag))
	language, _, _ = strings.Cut(strings.ReplaceAll(language, "_", "-"), "-")
	return language
}

// qualityWeight parses "q=0.8"; a missing or malformed q counts as 1.
func qualityWeight(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || strings.TrimSpace(name) != "q" {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || weight > 1 {
			return 1
		}
		return weight
	}
	return 1
}
