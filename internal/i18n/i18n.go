package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// ErrUnsupportedLocale is returned when a configured locale has no catalog.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Bundle holds the immutable message catalog for every supported locale.
// It is safe for concurrent use.
type Bundle struct {
	catalog  *catalog.Builder
	matcher  language.Matcher
	tags     []language.Tag
	keys     map[string]struct{}
	fallback language.Tag
}

// NewBundle loads the embedded catalogs for the supported locales. The
// default locale is matched when a request names nothing supported, and its
// text stands in for keys another locale does not translate.
func NewBundle(defaultLocale string, supported []string) (*Bundle, error) {
	return newBundle(localesFS, "locales", defaultLocale, supported)
}

func newBundle(fsys fs.FS, dir, defaultLocale string, supported []string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, defaultLocale, err)
	}

	// The default goes first so the matcher falls back to it.
	tags := []language.Tag{fallback}
	for _, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, locale, err)
		}
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	messages := make(map[language.Tag]map[string]string, len(tags))
	for _, tag := range tags {
		loaded, err := loadLocale(fsys, dir, tag)
		if err != nil {
			return nil, err
		}
		messages[tag] = loaded
	}

	b := &Bundle{
		catalog:  catalog.NewBuilder(catalog.Fallback(fallback)),
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		keys:     make(map[string]struct{}, len(messages[fallback])),
		fallback: fallback,
	}
	for key := range messages[fallback] {
		b.keys[key] = struct{}{}
	}

	for _, tag := range tags {
		for key := range b.keys {
			text, ok := messages[tag][key]
			if !ok {
				text = messages[fallback][key]
			}
			if err := b.catalog.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("registering %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func loadLocale(fsys fs.FS, dir string, tag language.Tag) (map[string]string, error) {
	path := dir + "/" + tag.String() + ".yaml"
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedLocale, tag, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return flatten(raw, ""), nil
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		case string:
			result[fullKey] = v
		default:
			result[fullKey] = fmt.Sprint(v)
		}
	}
	return result
}

// Locales returns the supported locales, default first.
func (b *Bundle) Locales() []string {
	locales := make([]string, len(b.tags))
	for i, tag := range b.tags {
		locales[i] = tag.String()
	}
	return locales
}

// Match picks the supported locale that best serves an Accept-Language
// header. Empty or unparseable headers get the default locale.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return b.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return b.fallback
	}
	_, index, confidence := b.matcher.Match(desired...)
	if confidence == language.No {
		return b.fallback
	}
	return b.tags[index]
}

// Localizer returns a Localizer for tag.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		bundle:  b,
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
	}
}

// LocalizerFor is Localizer(Match(acceptLanguage)).
func (b *Bundle) LocalizerFor(acceptLanguage string) *Localizer {
	return b.Localizer(b.Match(acceptLanguage))
}

// Has reports whether key is a known translation key.
func (b *Bundle) Has(key string) bool {
	_, ok := b.keys[key]
	return ok
}

// Localizer translates keys into one locale.
type Localizer struct {
	bundle  *Bundle
	tag     language.Tag
	printer *message.Printer
}

// T returns the message for key formatted with args. Unknown keys are
// returned unchanged, as is every key on a nil Localizer.
func (l *Localizer) T(key string, args ...any) string {
	if l == nil || !l.bundle.Has(key) {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// Locale returns the locale the Localizer translates into.
func (l *Localizer) Locale() string {
	return l.tag.String()
}
