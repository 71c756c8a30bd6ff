package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"shardview/internal/listing"
)

// Field names shared by both catalog variants
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldCategories   = "categories"
	FieldFeatures     = "features"
	FieldTechnologies = "technologies"
	FieldDeprecated   = "deprecated"
)

// ItemID is a catalog identifier. Sources may supply it as a string or an integer.
type ItemID string

// UnmarshalJSON accepts both "7" and 7
func (id *ItemID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ItemID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar
func (id *ItemID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid id at line %d", node.Line)
	}
	*id = ItemID(node.Value)
	return nil
}

// Flag is a boolean that may arrive as true/false or as the strings "true"/"false".
type Flag bool

// UnmarshalJSON normalises the raw value; anything unrecognised becomes false
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Flag(listing.NormalizeDeprecated(raw))
	return nil
}

// UnmarshalYAML normalises YAML scalars the same way as JSON
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*f = false
		return nil
	}
	if node.Tag == "!!bool" {
		b, _ := strconv.ParseBool(node.Value)
		*f = Flag(b)
		return nil
	}
	*f = Flag(listing.NormalizeDeprecated(node.Value))
	return nil
}

// Tags is a string collection that tolerates malformed sources: a single
// string becomes a one-element list, non-string elements are skipped and any
// other shape decodes to nil.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*t = Tags{v}
	case []interface{}:
		out := make(Tags, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		*t = out
	default:
		*t = nil
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = nil
			return nil
		}
		*t = Tags{node.Value}
	case yaml.SequenceNode:
		out := make(Tags, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
				out = append(out, n.Value)
			}
		}
		*t = out
	default:
		*t = nil
	}
	return nil
}

// Product is a tool offered by the studio
type Product struct {
	ID          ItemID `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Categories  Tags   `json:"categories" yaml:"categories"`
	Features    Tags   `json:"features" yaml:"features"`
	CTAText     string `json:"ctaText" yaml:"ctaText"`
	CTALink     string `json:"ctaLink" yaml:"ctaLink"`
	Tag         string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Highlight   string `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// Project is a past or ongoing piece of work
type Project struct {
	ID           ItemID `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	ImageURL     string `json:"imageUrl" yaml:"imageUrl"`
	Technologies Tags   `json:"technologies" yaml:"technologies"`
	Date         string `json:"date" yaml:"date"`
	GithubURL    string `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveURL      string `json:"liveUrl,omitempty" yaml:"liveUrl,omitempty"`
	Deprecated   Flag   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Key returns the stable identifier used for rendering keys
func (p Product) Key() string { return string(p.ID) }

// Field exposes product properties by their source name
func (p Product) Field(name string) (interface{}, bool) {
	switch name {
	case FieldID:
		return string(p.ID), true
	case FieldTitle:
		return p.Title, true
	case FieldDescription:
		return p.Description, true
	case "image":
		return p.Image, true
	case FieldCategories:
		return []string(p.Categories), p.Categories != nil
	case FieldFeatures:
		return []string(p.Features), p.Features != nil
	case "ctaText":
		return p.CTAText, true
	case "ctaLink":
		return p.CTALink, true
	case "tag":
		return p.Tag, p.Tag != ""
	case "highlight":
		return p.Highlight, p.Highlight != ""
	}
	return nil, false
}

// Key returns the stable identifier used for rendering keys
func (p Project) Key() string { return string(p.ID) }

// Field exposes project properties by their source name
func (p Project) Field(name string) (interface{}, bool) {
	switch name {
	case FieldID:
		return string(p.ID), true
	case FieldTitle:
		return p.Title, true
	case FieldDescription:
		return p.Description, true
	case "imageUrl":
		return p.ImageURL, true
	case FieldTechnologies:
		return []string(p.Technologies), p.Technologies != nil
	case "date":
		return p.Date, true
	case "githubUrl":
		return p.GithubURL, p.GithubURL != ""
	case "liveUrl":
		return p.LiveURL, p.LiveURL != ""
	case FieldDeprecated:
		return bool(p.Deprecated), true
	}
	return nil, false
}

// IsDeprecated reports the normalised deprecated flag
func (p Project) IsDeprecated() bool { return bool(p.Deprecated) }

// Markdown renders the product as a markdown document for the detail view
func (p Product) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Tag != "" {
		fmt.Fprintf(&b, "**%s**\n\n", p.Tag)
	}
	if p.Highlight != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.Highlight)
	}
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	if len(p.Features) > 0 {
		b.WriteString("## Key Features\n\n")
		for _, feature := range p.Features {
			fmt.Fprintf(&b, "- %s\n", feature)
		}
		b.WriteString("\n")
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n\n", strings.Join(p.Categories, ", "))
	}
	if p.CTALink != "" {
		text := p.CTAText
		if text == "" {
			text = p.CTALink
		}
		fmt.Fprintf(&b, "[%s](%s)\n", text, p.CTALink)
	}
	return b.String()
}

// Markdown renders the project as a markdown document for the detail view
func (p Project) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.IsDeprecated() {
		b.WriteString("**Deprecated**\n\n")
	}
	if p.Date != "" {
		fmt.Fprintf(&b, "_%s_\n\n", p.Date)
	}
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	if len(p.Technologies) > 0 {
		b.WriteString("## Technologies\n\n")
		for _, tech := range p.Technologies {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
		b.WriteString("\n")
	}
	if p.GithubURL != "" {
		fmt.Fprintf(&b, "[GitHub](%s)\n\n", p.GithubURL)
	}
	if p.LiveURL != "" {
		fmt.Fprintf(&b, "[Live](%s)\n", p.LiveURL)
	}
	return b.String()
}

// CollectionKind identifies which catalog a collection belongs to
type CollectionKind string

const (
	KindProducts CollectionKind = "products"
	KindProjects CollectionKind = "projects"
)
