// Package layout describes the visual structure of a resume independently of
// any output format: page geometry, font sizes, section order and gating.
// Every renderer consumes it so that they agree on what is drawn and in which order.
package layout

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var policyYAML []byte

// Fonts holds the point sizes for each text role
type Fonts struct {
	Name          float64 `yaml:"name"`
	SectionHeader float64 `yaml:"section_header"`
	Subheader     float64 `yaml:"subheader"`
	Body          float64 `yaml:"body"`
	LineHeight    float64 `yaml:"line_height"`
	Spacing       float64 `yaml:"section_spacing"`
}

// Policy is the full set of layout constants for one LayoutFormat
type Policy struct {
	Format types.LayoutFormat

	PageWidth        float64
	PageHeight       float64
	MarginVertical   float64
	MarginHorizontal float64

	Fonts Fonts

	ContactSize   float64
	HeaderRuleGap float64
	RuleWidth     float64
	RuleColor     string // RRGGBB
	BulletIndent  float64
	HangingIndent float64
	EntryGap      float64
	FontFamily    string
}

type policyFile struct {
	Page struct {
		Width            float64 `yaml:"width"`
		Height           float64 `yaml:"height"`
		MarginVertical   float64 `yaml:"margin_vertical"`
		MarginHorizontal float64 `yaml:"margin_horizontal"`
	} `yaml:"page"`
	Shared struct {
		ContactSize   float64 `yaml:"contact_size"`
		HeaderRuleGap float64 `yaml:"header_rule_gap"`
		RuleWidth     float64 `yaml:"rule_width"`
		RuleColor     string  `yaml:"rule_color"`
		BulletIndent  float64 `yaml:"bullet_indent"`
		HangingIndent float64 `yaml:"hanging_indent"`
		EntryGap      float64 `yaml:"entry_gap"`
		FontFamily    string  `yaml:"font_family"`
	} `yaml:"shared"`
	Formats map[string]Fonts `yaml:"formats"`
}

var (
	loadOnce sync.Once
	policies map[types.LayoutFormat]Policy
)

// ParsePolicies decodes a policy table. Both standard and compact must be present.
func ParsePolicies(data []byte) (map[types.LayoutFormat]Policy, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse layout policy: %w", err)
	}
	if f.Page.Width <= 0 || f.Page.Height <= 0 {
		return nil, fmt.Errorf("layout policy: page size must be positive")
	}

	out := make(map[types.LayoutFormat]Policy, len(f.Formats))
	for _, format := range []types.LayoutFormat{types.FormatStandard, types.FormatCompact} {
		fonts, ok := f.Formats[string(format)]
		if !ok {
			return nil, fmt.Errorf("layout policy: missing format %q", format)
		}
		if fonts.LineHeight <= 0 || fonts.Body <= 0 {
			return nil, fmt.Errorf("layout policy: format %q needs positive body size and line height", format)
		}
		out[format] = Policy{
			Format:           format,
			PageWidth:        f.Page.Width,
			PageHeight:       f.Page.Height,
			MarginVertical:   f.Page.MarginVertical,
			MarginHorizontal: f.Page.MarginHorizontal,
			Fonts:            fonts,
			ContactSize:      f.Shared.ContactSize,
			HeaderRuleGap:    f.Shared.HeaderRuleGap,
			RuleWidth:        f.Shared.RuleWidth,
			RuleColor:        f.Shared.RuleColor,
			BulletIndent:     f.Shared.BulletIndent,
			HangingIndent:    f.Shared.HangingIndent,
			EntryGap:         f.Shared.EntryGap,
			FontFamily:       f.Shared.FontFamily,
		}
	}
	return out, nil
}

// For returns the policy for a format. Unknown formats fall back to standard.
func For(format types.LayoutFormat) Policy {
	loadOnce.Do(func() {
		var err error
		policies, err = ParsePolicies(policyYAML)
		if err != nil {
			panic(err)
		}
	})
	if p, ok := policies[format]; ok {
		return p
	}
	return policies[types.FormatStandard]
}

// ContentWidth is the printable width between the side margins
func (p Policy) ContentWidth() float64 {
	return p.PageWidth - 2*p.MarginHorizontal
}

// ContentBottom is the lowest y a row may reach before a page break
func (p Policy) ContentBottom() float64 {
	return p.PageHeight - p.MarginVertical
}

// RuleRGB splits RuleColor into its components
func (p Policy) RuleRGB() (r, g, b int) {
	if _, err := fmt.Sscanf(p.RuleColor, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
