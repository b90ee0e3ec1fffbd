package nlp_test

import (
	"testing"
	"time"

	"boo-assistant/pkg/nlp"
)

func TestNewParser(t *testing.T) {
	_, err := nlp.NewParser("Asia/Yakutsk")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = nlp.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func mustParser(t *testing.T, tz string) *nlp.Parser {
	t.Helper()
	p, err := nlp.NewParser(tz)
	if err != nil {
		t.Fatalf("NewParser(%q): %v", tz, err)
	}
	return p
}

func localDue(t *testing.T, p *nlp.Parser, y int, mo time.Month, d, hh, mm int) time.Time {
	t.Helper()
	return time.Date(y, mo, d, hh, mm, 0, 0, p.Location()).UTC()
}

func TestParse(t *testing.T) {
	p := mustParser(t, "Asia/Yakutsk")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, p.Location())

	tests := []struct {
		name      string
		text      string
		now       time.Time
		wantMatch bool
		wantTitle string
		wantDue   time.Time
		wantKind  nlp.Kind
	}{
		{
			name:      "deadline with month name",
			text:      "добавь дедлайн 8 марта сдать отчёт",
			now:       now,
			wantMatch: true,
			wantTitle: "сдать отчёт",
			wantDue:   localDue(t, p, 2026, time.March, 8, 23, 59),
			wantKind:  nlp.KindDeadline,
		},
		{
			name:      "task tomorrow with explicit time",
			text:      "создай задачу завтра в 18:30 сделать лабораторную",
			now:       time.Date(2026, 2, 20, 10, 0, 0, 0, p.Location()),
			wantMatch: true,
			wantTitle: "сделать лабораторную",
			wantDue:   localDue(t, p, 2026, time.February, 21, 18, 30),
			wantKind:  nlp.KindTask,
		},
		{
			// A numeric D.M also satisfies the HH.MM time pattern when the
			// day fits an hour and the month fits minutes, so 15.07 resolves
			// the time to 15:07 as well.
			name:      "numeric date current year",
			text:      "запланируй 15.07 поход к врачу",
			now:       now,
			wantMatch: true,
			wantTitle: "поход к врачу",
			wantDue:   localDue(t, p, 2026, time.July, 15, 15, 7),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "numeric date already passed rolls to next year",
			text:      "добавь задачу 15.07 поход к врачу",
			now:       time.Date(2026, 8, 1, 0, 0, 0, 0, p.Location()),
			wantMatch: true,
			wantTitle: "поход к врачу",
			wantDue:   localDue(t, p, 2027, time.July, 15, 15, 7),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "numeric date with two-digit year",
			text:      "добавь дедлайн 01.09.27 курсовая",
			now:       now,
			wantMatch: true,
			wantTitle: "курсовая",
			wantDue:   localDue(t, p, 2027, time.September, 1, 1, 9),
			wantKind:  nlp.KindDeadline,
		},
		{
			name:      "numeric date with four-digit year",
			text:      "создай задачу 05.11.2027 оплатить хостинг",
			now:       now,
			wantMatch: true,
			wantTitle: "оплатить хостинг",
			wantDue:   localDue(t, p, 2027, time.November, 5, 5, 11),
			wantKind:  nlp.KindTask,
		},
		{
			// Day 25 cannot be read as an hour, so the deadline default
			// applies untouched.
			name:      "numeric date that cannot double as a time",
			text:      "добавь дедлайн 25.04 сдать диплом",
			now:       now,
			wantMatch: true,
			wantTitle: "сдать диплом",
			wantDue:   localDue(t, p, 2026, time.April, 25, 23, 59),
			wantKind:  nlp.KindDeadline,
		},
		{
			name:      "time with dot separator",
			text:      "напомни сегодня в 19.45 позвонить маме",
			now:       now,
			wantMatch: true,
			wantTitle: "позвонить маме",
			wantDue:   localDue(t, p, 2026, time.January, 1, 19, 45),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "time separated by whitespace",
			text:      "создай задачу завтра 10 30 совещание",
			now:       now,
			wantMatch: true,
			wantTitle: "совещание",
			wantDue:   localDue(t, p, 2026, time.January, 2, 10, 30),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "lone hour after в",
			text:      "запланируй послезавтра в 19 тренировку",
			now:       now,
			wantMatch: true,
			wantTitle: "тренировку",
			wantDue:   localDue(t, p, 2026, time.January, 3, 19, 0),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "month abbreviation",
			text:      "добавь дедлайн 25 дек сдача проекта",
			now:       now,
			wantMatch: true,
			wantTitle: "сдача проекта",
			wantDue:   localDue(t, p, 2026, time.December, 25, 23, 59),
			wantKind:  nlp.KindDeadline,
		},
		{
			name:      "calendar phrase stripped from title",
			text:      "добавь в календарь 12.06 день рождения",
			now:       now,
			wantMatch: true,
			wantTitle: "день рождения",
			wantDue:   localDue(t, p, 2026, time.June, 12, 12, 6),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "stripping everything falls back to default title",
			text:      "добавь задачу завтра",
			now:       now,
			wantMatch: true,
			wantTitle: nlp.DefaultTitle,
			wantDue:   localDue(t, p, 2026, time.January, 2, 9, 0),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "no date means no match",
			text:      "добавь задачу сделать лабораторную",
			now:       now,
			wantMatch: false,
		},
		{
			name:      "date without trigger word means no match",
			text:      "встреча 8 марта в 15:00",
			now:       now,
			wantMatch: false,
		},
		{
			name:      "plain chat message means no match",
			text:      "привет, как дела?",
			now:       now,
			wantMatch: false,
		},
		{
			name:      "invalid calendar date falls through to relative keyword",
			text:      "добавь задачу 31.02 или завтра уборку",
			now:       now,
			wantMatch: true,
			wantTitle: "31.02 или уборку",
			wantDue:   localDue(t, p, 2026, time.January, 2, 9, 0),
			wantKind:  nlp.KindTask,
		},
		{
			name:      "invalid calendar date with no fallback means no match",
			text:      "добавь задачу 31.02 уборку",
			now:       now,
			wantMatch: false,
		},
		{
			name:      "tomorrow inside a longer word does not count",
			text:      "добавь задачу позавтракать",
			now:       now,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.text, tt.now)
			if ok != tt.wantMatch {
				t.Fatalf("Parse(%q) match = %v, want %v", tt.text, ok, tt.wantMatch)
			}
			if !tt.wantMatch {
				return
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if !got.DueAt.Equal(tt.wantDue) {
				t.Errorf("dueAt = %v, want %v", got.DueAt, tt.wantDue)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.DueAt.Location() != time.UTC {
				t.Errorf("dueAt not in UTC: %v", got.DueAt.Location())
			}
		})
	}
}

// Converting the resolved UTC instant back to the parser's zone must
// reproduce the extracted wall-clock date and time exactly.
func TestParseRoundTrip(t *testing.T) {
	p := mustParser(t, "Asia/Yakutsk")
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, p.Location())

	got, ok := p.Parse("создай задачу 25.02 в 07:45 купить подарок", now)
	if !ok {
		t.Fatal("expected a match")
	}

	local := got.DueAt.In(p.Location())
	if local.Year() != 2026 || local.Month() != time.February || local.Day() != 25 {
		t.Errorf("local date = %v, want 2026-02-25", local)
	}
	if local.Hour() != 7 || local.Minute() != 45 {
		t.Errorf("local time = %02d:%02d, want 07:45", local.Hour(), local.Minute())
	}
}

func TestPickYearBoundary(t *testing.T) {
	p := mustParser(t, "UTC")

	// A date equal to today stays in the current year.
	now := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)
	got, ok := p.Parse("добавь задачу 08.03 сдвинуть сервер", now)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.DueAt.Year() != 2026 {
		t.Errorf("same-day date resolved to year %d, want 2026", got.DueAt.Year())
	}

	// One day earlier than today rolls over.
	got, ok = p.Parse("добавь задачу 07.03 сдвинуть сервер", now)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.DueAt.Year() != 2027 {
		t.Errorf("passed date resolved to year %d, want 2027", got.DueAt.Year())
	}
}
