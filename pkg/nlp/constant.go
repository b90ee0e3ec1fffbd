package nlp

// DefaultTitle is used when stripping leaves the title empty.
const DefaultTitle = "Задача"

// months maps Russian month names and abbreviations (genitive, ё collapsed
// to е) to month numbers.
var months = map[string]int{
	"января": 1, "янв": 1,
	"февраля": 2, "фев": 2,
	"марта": 3, "мар": 3,
	"апреля": 4, "апр": 4,
	"мая": 5,
	"июня": 6, "июн": 6,
	"июля": 7, "июл": 7,
	"августа": 8, "авг": 8,
	"сентября": 9, "сен": 9, "сент": 9,
	"октября": 10, "окт": 10,
	"ноября": 11, "ноя": 11,
	"декабря": 12, "дек": 12,
}

// triggerStems are the substrings at least one of which must be present for
// an extracted date to be treated as a task-creation request. Stems cover the
// inflected forms ("задачу", "напомни", "календаре").
var triggerStems = []string{
	"добавь", "добавить",
	"создай", "создать",
	"запланируй", "запланировать",
	"дедлайн",
	"задач",
	"напомн",
	"сдать", "сдача",
	"календар",
}

// deadlineMarkers classify a task as a deadline.
var deadlineMarkers = []string{"дедлайн", "сдать", "сдача"}

// strippedTokens are removed (whole-word, case-insensitive) when deriving the
// title. Deadline indicators «сдать»/«сдача» are deliberately kept: they
// usually carry the task meaning («сдать отчёт»).
var strippedTokens = map[string]struct{}{
	"добавь":        {},
	"добавить":      {},
	"создай":        {},
	"создать":       {},
	"запланируй":    {},
	"запланировать": {},
	"дедлайн":       {},
	"календарь":     {},
	"задача":        {},
	"задачу":        {},
	"задачи":        {},
	"напомни":       {},
	"напоминание":   {},
}
