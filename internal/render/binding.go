// Package render implements the template binding layer: it maps an
// immutable resume document plus a section order onto the ordered, filtered
// sequence of blocks consumed by the preview renderer and both export
// adapters.
package render

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Item is the neutral render model for one section entry. Exporters consume
// headings, meta lines and bullets without knowing the source item variant.
type Item struct {
	Heading     string
	Subheading  string
	Meta        string
	Description string
	Bullets     []string
}

// Block is one renderable section: its key, display title and items.
type Block struct {
	Key   types.SectionKey
	Title string
	Items []Item
}

// Sequence is the ordered, filtered list of sections actually shown in
// preview and export. It is finite and restartable: Blocks returns a fresh
// copy on every call so preview and each exporter can traverse the same
// snapshot independently.
type Sequence struct {
	blocks []Block
}

// Blocks returns the render blocks in order.
func (s *Sequence) Blocks() []Block {
	return slices.Clone(s.blocks)
}

// Len returns the number of renderable blocks.
func (s *Sequence) Len() int { return len(s.blocks) }

// EffectiveOrder resolves the order sections render in: the document's
// explicit order when present, otherwise the template fallback, otherwise
// the default built-in order. Keys the explicit order omits are appended in
// default order, followed by unlisted custom sections sorted by key.
func EffectiveOrder(doc *types.Document, fallback []types.SectionKey) []types.SectionKey {
	order := doc.SectionOrder
	if len(order) == 0 {
		order = fallback
	}
	if len(order) == 0 {
		order = types.BuiltinKeys()
	}

	out := slices.Clone(order)
	for _, key := range types.BuiltinKeys() {
		if !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	custom := make([]types.SectionKey, 0, len(doc.Sections.CustomSections))
	for key := range doc.Sections.CustomSections {
		if !slices.Contains(out, key) {
			custom = append(custom, key)
		}
	}
	slices.Sort(custom)
	return append(out, custom...)
}

// Build produces the render sequence for a document. A section is included
// iff its key appears in the effective order and its data is non-empty:
// length > 0 for item lists, truthy for scalar content. Unknown keys in the
// order are skipped.
func Build(doc *types.Document, fallback []types.SectionKey) *Sequence {
	seq := &Sequence{}
	for _, key := range EffectiveOrder(doc, fallback) {
		block, ok := buildBlock(doc, key)
		if ok {
			seq.blocks = append(seq.blocks, block)
		}
	}
	return seq
}

func buildBlock(doc *types.Document, key types.SectionKey) (Block, bool) {
	s := &doc.Sections
	block := Block{Key: key, Title: sectionTitle(doc, key)}

	switch key {
	case types.KeyExperience:
		if len(s.Experience) == 0 {
			return Block{}, false
		}
		for _, it := range s.Experience {
			block.Items = append(block.Items, Item{
				Heading:     it.Role,
				Subheading:  it.Company,
				Meta:        period(it.StartDate, it.EndDate, it.Location),
				Description: it.Description,
				Bullets:     bulletTexts(it.BulletPoints),
			})
		}
	case types.KeyEducation:
		if len(s.Education) == 0 {
			return Block{}, false
		}
		for _, it := range s.Education {
			heading := it.Degree
			if it.Field != "" {
				heading = strings.TrimSpace(heading + " " + it.Field)
			}
			block.Items = append(block.Items, Item{
				Heading:     heading,
				Subheading:  it.Institution,
				Meta:        period(it.StartDate, it.EndDate, it.Location),
				Description: it.Description,
				Bullets:     bulletTexts(it.BulletPoints),
			})
		}
	case types.KeySkills:
		// Skills render as one flattened line; an all-blank list is treated
		// as empty.
		flattened := flattenSkills(s.Skills)
		if flattened == "" {
			return Block{}, false
		}
		block.Items = append(block.Items, Item{Description: flattened})
	case types.KeyProjects:
		if len(s.Projects) == 0 {
			return Block{}, false
		}
		for _, it := range s.Projects {
			block.Items = append(block.Items, Item{
				Heading:     it.Name,
				Subheading:  it.Technologies,
				Meta:        period(it.StartDate, it.EndDate, it.URL),
				Description: it.Description,
				Bullets:     bulletTexts(it.BulletPoints),
			})
		}
	case types.KeyCertifications:
		if len(s.Certifications) == 0 {
			return Block{}, false
		}
		for _, it := range s.Certifications {
			block.Items = append(block.Items, Item{
				Heading:     it.Name,
				Subheading:  it.Issuer,
				Meta:        it.Date,
				Description: it.Description,
				Bullets:     bulletTexts(it.BulletPoints),
			})
		}
	default:
		cs, ok := s.CustomSections[key]
		if !ok {
			return Block{}, false
		}
		if cs.Content == "" && len(cs.Items) == 0 {
			return Block{}, false
		}
		if cs.Title != "" {
			block.Title = cs.Title
		}
		if cs.Content != "" {
			block.Items = append(block.Items, Item{Description: cs.Content})
		}
		for _, it := range cs.Items {
			block.Items = append(block.Items, Item{
				Heading:     it.Title,
				Subheading:  it.Subtitle,
				Meta:        it.Period,
				Description: it.Description,
				Bullets:     bulletTexts(it.BulletPoints),
			})
		}
	}
	return block, true
}

// sectionTitle resolves the display name from section metadata, the single
// source of truth, with a capitalized key fallback for documents predating
// the metadata map.
func sectionTitle(doc *types.Document, key types.SectionKey) string {
	if meta, ok := doc.Sections.SectionMeta[key]; ok && meta.Name != "" {
		return meta.Name
	}
	name := string(key)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func flattenSkills(skills []types.SkillItem) string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill.Name == "" {
			continue
		}
		name := skill.Name
		if skill.Level != "" {
			name += " (" + skill.Level + ")"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func bulletTexts(points []types.BulletPoint) []string {
	if len(points) == 0 {
		return nil
	}
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.Text)
	}
	return out
}

func period(start, end, extra string) string {
	var parts []string
	switch {
	case start != "" && end != "":
		parts = append(parts, start+" – "+end)
	case start != "":
		parts = append(parts, start+" – Present")
	case end != "":
		parts = append(parts, end)
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, " · ")
}
