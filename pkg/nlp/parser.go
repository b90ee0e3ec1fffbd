package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	// 8.03, 08.03.26, 08.03.2026
	dateDotRe = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})(?:\.(\d{2,4}))?\b`)
	// 8 марта, 25 дек
	dateMonthRe = regexp.MustCompile(`\b(\d{1,2})\s+([а-я]+)`)
	// 18:30, 18.30, 18 : 30
	timeSepRe = regexp.MustCompile(`\b([01]?\d|2[0-3])\s?[.:]\s?([0-5]\d)\b`)
	// 18 30
	timeSpaceRe = regexp.MustCompile(`\b([01]?\d|2[0-3])\s([0-5]\d)\b`)
	// «в 19» — lone hour, minutes default to 0
	timeAtHourRe = regexp.MustCompile(`(?:^|\s)в\s([01]?\d|2[0-3])\b`)
)

// span is a byte range [start, end) in the normalized input.
type span struct{ start, end int }

// Parser extracts task candidates from Russian free-form text.
// All zone-less dates and times are interpreted in the parser's location,
// then converted to UTC.
type Parser struct {
	loc *time.Location
}

// NewParser creates a parser for the given IANA timezone string,
// e.g. "Asia/Yakutsk".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{loc: loc}, nil
}

// Location returns the parser's local zone.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// Parse tries to extract a task candidate from text. The second return value
// is false when no date resolves or no trigger word is present.
//
// The date is extracted first and the trigger gate is applied after; a bare
// date with no trigger word anywhere in the text never produces a candidate.
func (p *Parser) Parse(text string, now time.Time) (ParsedTask, bool) {
	t := normalizeSpaces(text)
	if t == "" {
		return ParsedTask{}, false
	}

	// Matching runs on a lowered copy with ё collapsed to е. For the
	// Cyrillic and ASCII vocabulary matched here both transforms preserve
	// byte offsets, so spans found in low cut cleanly from t.
	low := strings.ReplaceAll(strings.ToLower(t), "ё", "е")
	nowLocal := now.In(p.loc)

	day, dateSpan, ok := p.extractDate(low, nowLocal)
	if !ok {
		return ParsedTask{}, false
	}

	if !containsAny(low, triggerStems) {
		return ParsedTask{}, false
	}

	kind := KindTask
	if containsAny(low, deadlineMarkers) {
		kind = KindDeadline
	}

	hour, minute, timeSpan, hasTime := extractTime(low)
	if !hasTime {
		if kind == KindDeadline {
			hour, minute = 23, 59
		} else {
			hour, minute = 9, 0
		}
	}

	spans := []span{dateSpan}
	if hasTime {
		spans = append(spans, timeSpan)
	}
	title := deriveTitle(t, low, spans)

	dueLocal := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.loc)

	return ParsedTask{
		Title: title,
		DueAt: dueLocal.UTC(),
		Kind:  kind,
	}, true
}

// extractDate resolves a calendar day, trying numeric dates, month-name
// dates, then relative keywords. Invalid calendar dates reject the pattern
// and the next one is tried.
func (p *Parser) extractDate(low string, nowLocal time.Time) (time.Time, span, bool) {
	if m := dateDotRe.FindStringSubmatchIndex(low); m != nil {
		d := atoi(low[m[2]:m[3]])
		mo := atoi(low[m[4]:m[5]])
		var y int
		if m[6] >= 0 {
			y = atoi(low[m[6]:m[7]])
			if y < 100 {
				y += 2000
			}
		} else {
			y = p.pickYear(mo, d, nowLocal)
		}
		if validDate(y, mo, d) {
			return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, p.loc), span{m[0], m[1]}, true
		}
	}

	for _, m := range dateMonthRe.FindAllStringSubmatchIndex(low, -1) {
		d := atoi(low[m[2]:m[3]])
		mo, known := months[low[m[4]:m[5]]]
		if !known {
			continue
		}
		y := p.pickYear(mo, d, nowLocal)
		if validDate(y, mo, d) {
			return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, p.loc), span{m[0], m[1]}, true
		}
	}

	for _, rel := range []struct {
		word string
		days int
	}{
		{"послезавтра", 2},
		{"завтра", 1},
		{"сегодня", 0},
	} {
		if s, e, found := findWord(low, rel.word); found {
			d := nowLocal.AddDate(0, 0, rel.days)
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.loc), span{s, e}, true
		}
	}

	return time.Time{}, span{}, false
}

// pickYear returns the current year unless the date has already passed
// locally, in which case it rolls to the next year.
func (p *Parser) pickYear(month, day int, nowLocal time.Time) int {
	y := nowLocal.Year()
	if !validDate(y, month, day) {
		return y
	}
	candidate := time.Date(y, time.Month(month), day, 0, 0, 0, 0, p.loc)
	today := time.Date(y, nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, p.loc)
	if candidate.Before(today) {
		return y + 1
	}
	return y
}

// extractTime resolves a wall-clock time, trying separator, whitespace, then
// lone-hour-after-«в» patterns.
func extractTime(low string) (hour, minute int, sp span, ok bool) {
	if m := timeSepRe.FindStringSubmatchIndex(low); m != nil {
		return atoi(low[m[2]:m[3]]), atoi(low[m[4]:m[5]]), extendOverAt(low, span{m[0], m[1]}), true
	}
	if m := timeSpaceRe.FindStringSubmatchIndex(low); m != nil {
		return atoi(low[m[2]:m[3]]), atoi(low[m[4]:m[5]]), extendOverAt(low, span{m[0], m[1]}), true
	}
	if m := timeAtHourRe.FindStringSubmatchIndex(low); m != nil {
		return atoi(low[m[2]:m[3]]), 0, span{m[0], m[1]}, true
	}
	return 0, 0, span{}, false
}

// extendOverAt widens a time span to swallow a directly preceding «в » so it
// does not dangle in the title.
func extendOverAt(low string, sp span) span {
	const at = "в "
	if strings.HasSuffix(low[:sp.start], at) {
		sp.start -= len(at)
	}
	return sp
}

// deriveTitle removes the matched date/time spans and the command vocabulary
// from the normalized text, preserving the original casing of what remains.
func deriveTitle(t, low string, spans []span) string {
	remaining := cutSpans(t, spans)
	remainingLow := cutSpans(low, spans)

	toks := strings.Fields(remaining)
	lowToks := strings.Fields(remainingLow)

	kept := make([]string, 0, len(toks))
	for i, tok := range toks {
		key := lowToks[i]
		if _, strip := strippedTokens[key]; strip {
			continue
		}
		// «в календарь» goes away as a unit
		if key == "в" && i+1 < len(lowToks) && lowToks[i+1] == "календарь" {
			continue
		}
		kept = append(kept, tok)
	}

	title := normalizeSpaces(strings.Join(kept, " "))
	if title == "" {
		title = DefaultTitle
	}
	return title
}

// cutSpans removes the given byte ranges from s, merging overlaps.
func cutSpans(s string, spans []span) string {
	if len(spans) == 0 {
		return s
	}
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var sb strings.Builder
	pos := 0
	for _, sp := range sorted {
		if sp.start > pos {
			sb.WriteString(s[pos:sp.start])
			sb.WriteByte(' ')
		}
		if sp.end > pos {
			pos = sp.end
		}
	}
	if pos < len(s) {
		sb.WriteString(s[pos:])
	}
	return sb.String()
}

// findWord locates word in s as a whole word: the adjacent runes must not be
// letters or digits. Needed because regexp \b is ASCII-only and never matches
// around Cyrillic.
func findWord(s, word string) (start, end int, ok bool) {
	for i := 0; i+len(word) <= len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return 0, 0, false
		}
		start = i + j
		end = start + len(word)
		if wordBoundaryBefore(s, start) && wordBoundaryAfter(s, end) {
			return start, end, true
		}
		i = start + 1
	}
	return 0, 0, false
}

func wordBoundaryBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func wordBoundaryAfter(s string, pos int) bool {
	if pos == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// validDate reports whether the components form a real calendar date.
// time.Date normalizes out-of-range values (Feb 30 → Mar 2), so construction
// is checked against the inputs.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
