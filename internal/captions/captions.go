package captions

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Caption keys used by the plot orchestration layer.
const (
	Prefix            = "prefix"
	ClearingDone      = "clearing_done"
	WaitForTimer      = "wait_for_timer"
	CannotAffordMerge = "cannot_afford_merge"
	RemovedBalance    = "removed_balance"
	MergeDone         = "merge_done"
	MergeFailed       = "merge_failed"
)

type entry struct {
	text      string
	usePrefix bool
}

// Catalog resolves caption keys to display templates. Unknown keys
// resolve to an empty template, which downstream delivery suppresses.
type Catalog struct {
	entries map[string]entry
}

// Override adjusts one caption from a yaml file. A nil use_prefix keeps
// the built-in prefix behavior.
type Override struct {
	Text      string `yaml:"text"`
	UsePrefix *bool  `yaml:"use_prefix"`
}

func defaults() map[string]entry {
	return map[string]entry{
		Prefix:            {text: "&c[&6Plots&c] ", usePrefix: false},
		ClearingDone:      {text: "&aClear completed. Took &6%s&a ms.", usePrefix: true},
		WaitForTimer:      {text: "&cA clear is already running on that plot. Please wait.", usePrefix: true},
		CannotAffordMerge: {text: "&cYou cannot afford to merge the plots. It costs &6%s", usePrefix: true},
		RemovedBalance:    {text: "&6%s &chas been taken from your balance", usePrefix: true},
		MergeDone:         {text: "&6Plots have been merged", usePrefix: true},
		MergeFailed:       {text: "&cMerging the plots failed", usePrefix: true},
	}
}

// New returns the built-in catalog.
func New() *Catalog {
	return &Catalog{entries: defaults()}
}

// Load returns the built-in catalog overlaid with the yaml file at path.
// An empty path yields the defaults unchanged.
func Load(path string) (*Catalog, error) {
	c := New()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	var overrides map[string]Override
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return c, fmt.Errorf("captions.yaml: %w", err)
	}
	for key, o := range overrides {
		e, ok := c.entries[key]
		if !ok {
			e = entry{usePrefix: true}
		}
		if o.Text != "" {
			e.text = o.Text
		}
		if o.UsePrefix != nil {
			e.usePrefix = *o.UsePrefix
		}
		c.entries[key] = e
	}
	return c, nil
}

// Template returns the raw template for a caption key.
func (c *Catalog) Template(key string) string {
	return c.entries[key].text
}

// UsesPrefix reports whether deliveries of this caption carry the chat
// prefix.
func (c *Catalog) UsesPrefix(key string) bool {
	return c.entries[key].usePrefix
}

// Fill substitutes positional %s placeholders: the Nth placeholder in
// the template takes the Nth argument. Substituted text is never
// rescanned, so an argument containing "%s" cannot consume a later
// placeholder. Surplus placeholders remain when arguments run out.
func Fill(template string, args ...string) string {
	if len(args) == 0 || !strings.Contains(template, "%s") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	next := 0
	for i := 0; i < len(template); {
		if next < len(args) && strings.HasPrefix(template[i:], "%s") {
			b.WriteString(args[next])
			next++
			i += 2
			continue
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}
