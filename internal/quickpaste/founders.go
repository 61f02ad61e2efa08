package quickpaste

import (
	"regexp"
	"strings"

	"github.com/meridian/fund-console/internal/types"
)

// Founder blocks in diligence notes are loosely structured: a name line
// (often labeled), an email somewhere nearby, sometimes a LinkedIn URL and a
// short bio. Emails anchor the scan; each email seeds one record, and the
// surrounding lines fill in the rest.
var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	linkedinRe = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+/?`)

	founderLabelRe = regexp.MustCompile(`(?i)^(?:co[- ]?founder|founder|ceo|cto|coo)\s*[:\-]\s*(.+)`)
	cofounderRe    = regexp.MustCompile(`(?i)co[- ]?founder`)

	// nameLikeRe matches "Ada Lovelace" style lines: two to four capitalized
	// words with nothing else on the line.
	nameLikeRe = regexp.MustCompile(`^([A-Z][a-zA-Z'.\-]+(?: [A-Z][a-zA-Z'.\-]+){1,3})$`)
)

// extractFounders scans for founder blocks and stops after the cap. Blocks
// past types.MaxFounders are dropped silently.
func extractFounders(d *document) []types.FounderRecord {
	var founders []types.FounderRecord
	used := make(map[int]bool) // line indexes already claimed by a record

	for i, line := range d.lines {
		if len(founders) >= types.MaxFounders {
			break
		}
		email := emailRe.FindString(line)
		if email == "" {
			continue
		}

		rec := types.FounderRecord{Email: email, Role: types.RoleFounder}
		labeled := false

		// Name: same line before the email, a labeled line above, or a
		// name-like line above.
		before := strings.TrimSpace(strings.Split(line, email)[0])
		before = strings.Trim(before, " -:<(")
		if isNameLike(before) {
			rec.Name = before
		}
		for j := i - 1; j >= 0 && j >= i-3 && rec.Name == ""; j-- {
			if used[j] {
				break
			}
			cand := d.lines[j]
			if m := founderLabelRe.FindStringSubmatch(cand); m != nil {
				rec.Name = cleanNameCandidate(m[1])
				labeled = true
				if cofounderRe.MatchString(cand) {
					rec.Role = types.RoleCofounder
				}
				used[j] = true
				break
			}
			if m := nameLikeRe.FindStringSubmatch(cand); m != nil {
				rec.Name = m[1]
				used[j] = true
				break
			}
		}
		if rec.Name == "" {
			// An email with no resolvable name is not a founder block.
			continue
		}

		// Role and LinkedIn from the surrounding window. An explicit label is
		// authoritative; the window only decides the role when no label named
		// this founder.
		lo, hi := i-2, i+3
		if lo < 0 {
			lo = 0
		}
		if hi > len(d.lines) {
			hi = len(d.lines)
		}
		window := strings.Join(d.lines[lo:hi], "\n")
		if !labeled && cofounderRe.MatchString(window) {
			rec.Role = types.RoleCofounder
		}
		if url := linkedinRe.FindString(window); url != "" {
			rec.LinkedIn = url
		}

		// Bio: prose lines immediately after the email line. A LinkedIn URL
		// between email and bio belongs to the same block, not the bio.
		var bio []string
		for j := i + 1; j < len(d.lines) && j <= i+2; j++ {
			cand := d.lines[j]
			if linkedinRe.MatchString(cand) {
				used[j] = true
				continue
			}
			if emailRe.MatchString(cand) || founderLabelRe.MatchString(cand) ||
				nameLikeRe.MatchString(cand) || looksLikeLabel(cand) {
				break
			}
			bio = append(bio, cand)
			used[j] = true
		}
		rec.Bio = strings.Join(bio, " ")

		used[i] = true
		founders = append(founders, rec)
	}

	return founders
}

// cleanNameCandidate strips email/URL remnants from a labeled founder line.
func cleanNameCandidate(s string) string {
	s = emailRe.ReplaceAllString(s, "")
	s = linkedinRe.ReplaceAllString(s, "")
	s = strings.Trim(s, " -—:,<>()")
	return strings.TrimSpace(s)
}

func isNameLike(s string) bool {
	return nameLikeRe.MatchString(s)
}
