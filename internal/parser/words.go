package parser

import "regexp"

// triggerWords are the lexical cues marking a message as a reminder request.
// Longer variants come before their prefixes so that removal consumes the
// whole word ("напомнить" before "напомни").
var triggerWords = []string{
	"напоминание",
	"напомнить",
	"напомню",
	"напомни",
	"reminder",
	"remind",
	"не забыть",
	"не забудь",
}

// eventWords and taskWords drive category classification; event keywords win
// over task keywords, anything else is a plain reminder.
var eventWords = []string{
	"встреча",
	"собрание",
	"событие",
	"мероприятие",
	"праздник",
	"день рождения",
}

var taskWords = []string{
	"сделать",
	"купить",
	"задача",
	"выполнить",
	"закончить",
}

// numberWord pairs a spelled-out Russian cardinal with its value.
type numberWord struct {
	word  string
	value int
}

// onesWords covers 0–19; tensWords the round tens up to 60. Together they
// fold colloquial compounds like "двадцать три" up to 69, which is all a
// speech transcript of a clock time or offset ever needs.
var onesWords = []numberWord{
	{"ноль", 0},
	{"один", 1},
	{"одна", 1},
	{"два", 2},
	{"две", 2},
	{"три", 3},
	{"четыре", 4},
	{"пять", 5},
	{"шесть", 6},
	{"семь", 7},
	{"восемь", 8},
	{"девять", 9},
	{"десять", 10},
	{"одиннадцать", 11},
	{"двенадцать", 12},
	{"тринадцать", 13},
	{"четырнадцать", 14},
	{"пятнадцать", 15},
	{"шестнадцать", 16},
	{"семнадцать", 17},
	{"восемнадцать", 18},
	{"девятнадцать", 19},
}

var tensWords = []numberWord{
	{"двадцать", 20},
	{"тридцать", 30},
	{"сорок", 40},
	{"пятьдесят", 50},
	{"шестьдесят", 60},
}

// monthNames is the genitive-case month table used by FormatDatetime.
var monthNames = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// timePatterns match residual date/time tokens scrubbed from the title after
// the temporal stages have removed their spans. The set is fixed; the longer
// "послезавтра" precedes "завтра" so it is removed whole.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`послезавтра`),
	regexp.MustCompile(`завтра`),
	regexp.MustCompile(`сегодня`),
	regexp.MustCompile(`через\s+\d+\s*(?:час|мин|день|недел)`),
	regexp.MustCompile(`в\s+\d{1,2}[:\s]?\d{0,2}`),
	regexp.MustCompile(`в\s+\d{1,2}\s*(?:час|утра|вечера|дня|ночи)`),
	regexp.MustCompile(`на\s+\d{1,2}[:\s]?\d{0,2}`),
	regexp.MustCompile(`\d{1,2}[:\s]\d{2}`),
	regexp.MustCompile(`утром`),
	regexp.MustCompile(`днём`),
	regexp.MustCompile(`днем`),
	regexp.MustCompile(`вечером`),
	regexp.MustCompile(`ночью`),
	regexp.MustCompile(`в\s+понедельник`),
	regexp.MustCompile(`во?\s+вторник`),
	regexp.MustCompile(`в\s+среду`),
	regexp.MustCompile(`в\s+четверг`),
	regexp.MustCompile(`в\s+пятницу`),
	regexp.MustCompile(`в\s+субботу`),
	regexp.MustCompile(`в\s+воскресенье`),
	regexp.MustCompile(`\d{1,2}\s*(?:января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)`),
}

// reLeadingPreposition strips a dangling preposition left at the start of a
// title once the date phrase that followed it has been cut out.
var reLeadingPreposition = regexp.MustCompile(`^(?:на|в|к|о|об|про)\s+`)

// reQuotes matches decorative quoting characters that wrap forwarded or
// dictated messages.
var reQuotes = regexp.MustCompile("[«»“”\"'`]")
