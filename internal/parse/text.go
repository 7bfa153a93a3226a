package parse

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	yearRe  = regexp.MustCompile(`(19|20)\d{2}`)
	rangeRe = regexp.MustCompile(`((?:19|20)\d{2})\s*(?:[-–—]|to)\s*((?:19|20)\d{2}|[Pp]resent|[Cc]urrent)`)
)

// Confidence levels assigned by the heuristic extractor. Regex hits on
// well-formed tokens (emails) score higher than positional guesses (name is
// usually the first line, but not always).
const (
	confEmail   = 0.95
	confPhone   = 0.85
	confSkill   = 0.8
	confItem    = 0.75
	confCert    = 0.65
	confName    = 0.6
	confSummary = 0.5
)

// sectionHeadings maps heading keywords to the built-in section they open.
var sectionHeadings = map[string]types.SectionKey{
	"experience":                types.KeyExperience,
	"work experience":           types.KeyExperience,
	"professional experience":   types.KeyExperience,
	"employment":                types.KeyExperience,
	"employment history":        types.KeyExperience,
	"work history":              types.KeyExperience,
	"education":                 types.KeyEducation,
	"academic background":       types.KeyEducation,
	"skills":                    types.KeySkills,
	"technical skills":          types.KeySkills,
	"core competencies":         types.KeySkills,
	"projects":                  types.KeyProjects,
	"personal projects":         types.KeyProjects,
	"selected projects":         types.KeyProjects,
	"certifications":            types.KeyCertifications,
	"certificates":              types.KeyCertifications,
	"licenses":                  types.KeyCertifications,
	"licenses & certifications": types.KeyCertifications,
}

// ExtractText runs the heuristic extractor over plain resume text. Fields
// with Medium or better confidence come back pre-selected; everything is
// still subject to user review before commit.
func ExtractText(text string) types.ParsedResume {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var parsed types.ParsedResume
	parsed.PersonalInfo = extractPersonalInfo(lines)

	for key, chunk := range splitSections(lines) {
		switch key {
		case types.KeyExperience:
			parsed.Experience = extractExperience(chunk)
		case types.KeyEducation:
			parsed.Education = extractEducation(chunk)
		case types.KeySkills:
			parsed.Skills = extractSkills(chunk)
		case types.KeyProjects:
			parsed.Projects = extractProjects(chunk)
		case types.KeyCertifications:
			parsed.Certifications = extractCertifications(chunk)
		}
	}
	return parsed
}

func field[T any](value T, confidence float64) types.ParsedField[T] {
	return types.ParsedField[T]{
		Value:      value,
		Confidence: confidence,
		Selected:   confidence >= 0.7,
	}
}

func extractPersonalInfo(lines []string) types.ParsedPersonalInfo {
	var info types.ParsedPersonalInfo
	joined := strings.Join(lines, "\n")

	if email := emailRe.FindString(joined); email != "" {
		info.Email = field(email, confEmail)
	}
	if phone := phoneRe.FindString(joined); phone != "" {
		info.Phone = field(strings.TrimSpace(phone), confPhone)
	}

	// The name is usually the first line that is not contact data and not a
	// section heading.
	var summary []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, isHeading := headingKey(line); isHeading {
			break
		}
		switch {
		case info.Name.Value == "" && !emailRe.MatchString(line) && !phoneRe.MatchString(line) && len(line) < 60:
			info.Name = field(line, confName)
		case emailRe.MatchString(line) || phoneRe.MatchString(line):
			// contact line, already captured
		default:
			summary = append(summary, line)
		}
	}
	if len(summary) > 0 {
		info.Summary = field(strings.Join(summary, " "), confSummary)
	}
	return info
}

// headingKey reports whether a line is a section heading and which built-in
// section it opens.
func headingKey(line string) (types.SectionKey, bool) {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	if len(normalized) > 40 {
		return "", false
	}
	key, ok := sectionHeadings[normalized]
	return key, ok
}

func splitSections(lines []string) map[types.SectionKey][]string {
	chunks := make(map[types.SectionKey][]string)
	var current types.SectionKey
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if key, ok := headingKey(line); ok {
			current = key
			continue
		}
		if current != "" && line != "" {
			chunks[current] = append(chunks[current], line)
		}
		if current != "" && line == "" && len(chunks[current]) > 0 {
			// keep blank separators inside a chunk for entry grouping
			chunks[current] = append(chunks[current], "")
		}
	}
	return chunks
}

// entries groups chunk lines into entries separated by blank lines, with
// bullet lines attached to the preceding entry.
func entries(chunk []string) [][]string {
	var out [][]string
	var current []string
	for _, line := range chunk {
		if line == "" {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			continue
		}
		if isBullet(line) && len(out) > 0 && len(current) == 0 {
			out[len(out)-1] = append(out[len(out)-1], line)
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "· ")
}

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "•-*· "))
}

// splitTitle breaks "Role at Company", "Role - Company" or "Role | Company"
// into its two parts.
func splitTitle(line string) (first, second string) {
	for _, sep := range []string{" at ", " - ", " – ", " | ", ", "} {
		if before, after, found := strings.Cut(line, sep); found {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return strings.TrimSpace(line), ""
}

func extractDates(lines []string) (start, end string) {
	for _, line := range lines {
		if m := rangeRe.FindStringSubmatch(line); m != nil {
			end = m[2]
			if strings.EqualFold(end, "present") || strings.EqualFold(end, "current") {
				end = ""
			}
			return m[1], end
		}
	}
	for _, line := range lines {
		if year := yearRe.FindString(line); year != "" {
			return year, ""
		}
	}
	return "", ""
}

func extractExperience(chunk []string) []types.ParsedField[types.ParsedExperience] {
	var out []types.ParsedField[types.ParsedExperience]
	for _, entry := range entries(chunk) {
		var exp types.ParsedExperience
		exp.Role, exp.Company = splitTitle(stripDates(entry[0]))
		if exp.Company == "" && len(entry) > 1 && !isBullet(entry[1]) {
			exp.Company = stripDates(entry[1])
		}
		exp.StartDate, exp.EndDate = extractDates(entry)
		for _, line := range entry {
			if isBullet(line) {
				exp.Bullets = append(exp.Bullets, trimBullet(line))
			}
		}
		confidence := confItem
		if exp.Company == "" {
			confidence = confCert
		}
		out = append(out, field(exp, confidence))
	}
	return out
}

func extractEducation(chunk []string) []types.ParsedField[types.ParsedEducation] {
	var out []types.ParsedField[types.ParsedEducation]
	for _, entry := range entries(chunk) {
		var edu types.ParsedEducation
		edu.Degree, edu.Institution = splitTitle(stripDates(entry[0]))
		if edu.Institution == "" && len(entry) > 1 && !isBullet(entry[1]) {
			edu.Institution = stripDates(entry[1])
		}
		edu.StartDate, edu.EndDate = extractDates(entry)
		out = append(out, field(edu, confItem))
	}
	return out
}

func extractSkills(chunk []string) []types.ParsedField[string] {
	seen := make(map[string]bool)
	var out []types.ParsedField[string]
	for _, line := range chunk {
		for _, token := range strings.FieldsFunc(trimBullet(line), func(r rune) bool {
			return r == ',' || r == ';' || r == '•' || r == '|'
		}) {
			skill := strings.TrimSpace(token)
			if skill == "" || seen[strings.ToLower(skill)] {
				continue
			}
			seen[strings.ToLower(skill)] = true
			out = append(out, field(skill, confSkill))
		}
	}
	return out
}

func extractProjects(chunk []string) []types.ParsedField[types.ParsedProject] {
	var out []types.ParsedField[types.ParsedProject]
	for _, entry := range entries(chunk) {
		var proj types.ParsedProject
		proj.Name, proj.Technologies = splitTitle(stripDates(entry[0]))
		for _, line := range entry {
			if isBullet(line) {
				proj.Bullets = append(proj.Bullets, trimBullet(line))
			}
		}
		out = append(out, field(proj, confItem))
	}
	return out
}

func extractCertifications(chunk []string) []types.ParsedField[types.ParsedCertification] {
	var out []types.ParsedField[types.ParsedCertification]
	for _, line := range chunk {
		if line == "" {
			continue
		}
		var cert types.ParsedCertification
		cert.Name, cert.Issuer = splitTitle(stripDates(trimBullet(line)))
		if year := yearRe.FindString(line); year != "" {
			cert.Date = year
		}
		out = append(out, field(cert, confCert))
	}
	return out
}

func stripDates(line string) string {
	line = rangeRe.ReplaceAllString(line, "")
	return strings.Trim(strings.TrimSpace(line), "(),|")
}
