package municipality

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Catalog indexes municipalities by state. It is read-only after NewCatalog.
type Catalog struct {
	byState map[string][]entry
}

type entry struct {
	Municipality
	folded string
}

func NewCatalog(rows []Municipality) *Catalog {
	c := &Catalog{byState: map[string][]entry{}}
	for _, m := range lo.UniqBy(rows, func(m Municipality) string { return m.Code }) {
		c.byState[m.State] = append(c.byState[m.State], entry{Municipality: m, folded: Fold(m.Name)})
	}
	for _, list := range c.byState {
		sort.Slice(list, func(i, j int) bool { return list[i].folded < list[j].folded })
	}
	return c
}

// Load reads a .csv or .json data file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open municipality data: %w", err)
	}
	defer f.Close()

	var rows []Municipality
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = ParseCSV(f)
	case ".json":
		rows, err = ParseJSON(f)
	default:
		return nil, fmt.Errorf("unsupported municipality data format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return NewCatalog(rows), nil
}

// States lists the state codes present, sorted.
func (c *Catalog) States() []string {
	states := lo.Keys(c.byState)
	sort.Strings(states)
	return states
}

// ByState returns a state's municipalities sorted by name.
func (c *Catalog) ByState(state string) []Municipality {
	return lo.Map(c.byState[strings.ToUpper(state)], func(e entry, _ int) Municipality {
		return e.Municipality
	})
}

// Search matches q against names ignoring case and accents. Prefix matches
// come before substring matches. An empty q returns the whole state.
func (c *Catalog) Search(state, q string, limit int) []Municipality {
	needle := Fold(q)
	list := c.byState[strings.ToUpper(state)]
	if needle == "" {
		return capped(c.ByState(state), limit)
	}

	var prefix, contains []Municipality
	for _, e := range list {
		switch {
		case strings.HasPrefix(e.folded, needle):
			prefix = append(prefix, e.Municipality)
		case strings.Contains(e.folded, needle):
			contains = append(contains, e.Municipality)
		}
	}
	return capped(append(prefix, contains...), limit)
}

// Fold lower-cases and strips diacritics: "São Paulo" -> "sao paulo".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

func capped(list []Municipality, limit int) []Municipality {
	if list == nil {
		return []Municipality{}
	}
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
