package match

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// AliasDomain identifies which alias table a lookup targets.
type AliasDomain string

// AliasDomain constants.
const (
	AliasDomainRoom       AliasDomain = "room"
	AliasDomainFloor      AliasDomain = "floor"
	AliasDomainDeviceType AliasDomain = "device_type"
)

// minContainmentRunes gates the substring fallback in Canonicalize.
// Short tokens (one or two runes) produce too many spurious containment
// hits ("a" is contained in almost everything), so both sides must be at
// least this long before containment counts as a match.
const minContainmentRunes = 3

// AliasConfig is the YAML shape of the alias tables: canonical key to
// accepted variants (any language, spelling or case), one map per domain,
// plus the per-device-type generic-name sets used to suppress name
// filtering on non-distinguishing tokens like "light" or "灯".
type AliasConfig struct {
	Rooms        map[string][]string `yaml:"rooms"`
	Floors       map[string][]string `yaml:"floors"`
	DeviceTypes  map[string][]string `yaml:"device_types"`
	GenericNames map[string][]string `yaml:"generic_names"`
}

// LoadAliasConfig reads and validates an alias configuration from a YAML
// file.
//
// Parameters:
//   - path: Path to the aliases YAML file
//
// Returns:
//   - *AliasConfig: Parsed configuration
//   - error: If the file cannot be read, parsed, or validation fails
func LoadAliasConfig(path string) (*AliasConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("reading alias config: %w", err)
	}

	var cfg AliasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing alias config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the alias-table invariant: every canonical key owns a
// non-empty variant set.
func (c *AliasConfig) Validate() error {
	for domain, table := range map[string]map[string][]string{
		"rooms":         c.Rooms,
		"floors":        c.Floors,
		"device_types":  c.DeviceTypes,
		"generic_names": c.GenericNames,
	} {
		for key, variants := range table {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("%w: %s has an empty canonical key", ErrInvalidAliasConfig, domain)
			}
			if len(variants) == 0 {
				return fmt.Errorf("%w: %s key %q has no variants", ErrInvalidAliasConfig, domain, key)
			}
		}
	}
	return nil
}

// variantEntry pairs a normalised variant token with its canonical key,
// for the containment fallback scan.
type variantEntry struct {
	token     string
	canonical string
}

// AliasTable is the compiled, immutable lookup structure built from an
// AliasConfig.
//
// Exact lookups go through a reverse index (normalised variant → canonical
// key, O(1)); misses fall back to a length-gated containment scan. The
// table is never mutated after construction — updating aliases means
// building a new table and swapping it in (see Engine.SetAliases), so
// in-flight matches never observe a half-updated table.
type AliasTable struct {
	exact    map[AliasDomain]map[string]string
	variants map[AliasDomain][]variantEntry

	// generic holds the normalised generic-name set per device type,
	// genericAll their union for queries with no resolved type.
	generic    map[string]map[string]struct{}
	genericAll map[string]struct{}
}

// NewAliasTable compiles an AliasConfig into an AliasTable.
// A nil config yields an empty table: every Canonicalize call misses and
// callers fall back to raw-string comparison.
func NewAliasTable(cfg *AliasConfig) *AliasTable {
	t := &AliasTable{
		exact:      make(map[AliasDomain]map[string]string),
		variants:   make(map[AliasDomain][]variantEntry),
		generic:    make(map[string]map[string]struct{}),
		genericAll: make(map[string]struct{}),
	}
	if cfg == nil {
		return t
	}

	t.compileDomain(AliasDomainRoom, cfg.Rooms)
	t.compileDomain(AliasDomainFloor, cfg.Floors)
	t.compileDomain(AliasDomainDeviceType, cfg.DeviceTypes)

	for deviceType, names := range cfg.GenericNames {
		key := NormalizeToken(deviceType)
		if key == "" {
			continue
		}
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			if tok := NormalizeToken(n); tok != "" {
				set[tok] = struct{}{}
				t.genericAll[tok] = struct{}{}
			}
		}
		t.generic[key] = set
	}

	return t
}

// compileDomain builds the reverse index for one domain. The canonical key
// itself is indexed alongside its variants, so a query that already uses
// the canonical spelling hits directly.
func (t *AliasTable) compileDomain(domain AliasDomain, table map[string][]string) {
	exact := make(map[string]string)
	var entries []variantEntry

	for canonical, aliases := range table {
		canonTok := NormalizeToken(canonical)
		if canonTok == "" {
			continue
		}
		if _, seen := exact[canonTok]; !seen {
			exact[canonTok] = canonical
			entries = append(entries, variantEntry{token: canonTok, canonical: canonical})
		}
		for _, alias := range aliases {
			tok := NormalizeToken(alias)
			if tok == "" {
				continue
			}
			if _, seen := exact[tok]; !seen {
				exact[tok] = canonical
				entries = append(entries, variantEntry{token: tok, canonical: canonical})
			}
		}
	}

	t.exact[domain] = exact
	t.variants[domain] = entries
}

// Canonicalize maps a raw token onto the canonical key of its equivalence
// class within a domain.
//
// Lookup path: normalise the token, try the exact reverse index, then a
// containment fallback (token contains a variant or vice versa, both sides
// at least minContainmentRunes long). A miss returns ("", false); the
// caller then treats the field as unconstrained or falls back to raw-string
// comparison.
func (t *AliasTable) Canonicalize(domain AliasDomain, raw string) (string, bool) {
	tok := NormalizeToken(raw)
	if tok == "" {
		return "", false
	}

	if canonical, ok := t.exact[domain][tok]; ok {
		return canonical, true
	}

	if utf8.RuneCountInString(tok) < minContainmentRunes {
		return "", false
	}
	for _, v := range t.variants[domain] {
		if utf8.RuneCountInString(v.token) < minContainmentRunes {
			continue
		}
		if strings.Contains(tok, v.token) || strings.Contains(v.token, tok) {
			return v.canonical, true
		}
	}

	return "", false
}

// IsGeneric reports whether token is a generic (non-distinguishing) name
// for the given device type — e.g. "light", "lamp" or "灯" for type
// "light". When the device type is empty or has no generic set of its own,
// the union of all generic sets is consulted instead.
func (t *AliasTable) IsGeneric(deviceType, token string) bool {
	tok := NormalizeToken(token)
	if tok == "" {
		return false
	}

	if key := NormalizeToken(deviceType); key != "" {
		if set, ok := t.generic[key]; ok {
			_, generic := set[tok]
			return generic
		}
	}

	_, generic := t.genericAll[tok]
	return generic
}
