package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/remind/pkg/task"
)

// segment is the working state for one phrase. Extractors read the
// progressively stripped content, record scheduling facts, and return the
// matched span; the driver strips the span from content. All anchor
// computations start from start, seeded to "now".
type segment struct {
	content string
	now     time.Time

	start    time.Time
	end      *time.Time
	duration int // minutes

	hasPeriodWord bool
	isCountdown   bool

	repeat         task.RepeatType
	repeatSpan     string
	repeatWeekday  int // -1 when unspecified
	repeatMonthDay int // 0 when unspecified
}

// extractor is one matcher+transform pair. Extractors run in a fixed
// precedence order because spans can overlap; each sees content already
// stripped of earlier matches.
type extractor struct {
	name    string
	extract func(s *segment) (span string, ok bool)
}

var extractors = []extractor{
	{"absolute-time", extractAbsoluteTime},
	{"exact-time", extractExactTime},
	{"calendar-date", extractCalendarDate},
	{"relative-offset", extractRelativeOffset},
	{"special-date", extractSpecialDate},
}

var countdownCues = []*regexp.Regexp{
	regexp.MustCompile(`倒计时`),
	regexp.MustCompile(`(?i)countdown`),
	regexp.MustCompile(`\d+\s*(秒|分钟|小时|天)后`),
	regexp.MustCompile(`\d+\s*[smhd]后`),
	regexp.MustCompile(`(?i)\d+\s*(seconds?|minutes?|hours?|days?)\s+later`),
	regexp.MustCompile(`还剩\s*\d+`),
	regexp.MustCompile(`截止`),
	regexp.MustCompile(`(?i)deadline`),
	regexp.MustCompile(`期限`),
	regexp.MustCompile(`现在开始`),
	regexp.MustCompile(`(?i)starting now`),
	regexp.MustCompile(`立即`),
	regexp.MustCompile(`即刻`),
}

// detectCountdownCue flags countdown phrasing. It strips nothing; leftover
// keywords are removed during cleanup. Non-exclusive with other extractors.
func (s *segment) detectCountdownCue() {
	for _, p := range countdownCues {
		if p.MatchString(s.content) {
			s.isCountdown = true
			return
		}
	}
}

// Recurrence keyword families, scanned day -> week -> month -> year; the
// first family with a match wins and at most one recurrence type applies.
var recurrenceCues = []struct {
	repeat   task.RepeatType
	patterns []*regexp.Regexp
}{
	{task.RepeatDaily, []*regexp.Regexp{
		regexp.MustCompile(`工作日每天`),
		regexp.MustCompile(`周一至周五每天`),
		regexp.MustCompile(`每天`),
		regexp.MustCompile(`每日`),
		regexp.MustCompile(`(?i)daily`),
		regexp.MustCompile(`(?i)every\s*day`),
	}},
	{task.RepeatWeekly, []*regexp.Regexp{
		regexp.MustCompile(`每(?:周|星期)([一二三四五六日天])?`),
		regexp.MustCompile(`(?i)weekly`),
		regexp.MustCompile(`下周`),
		regexp.MustCompile(`(?i)next week`),
	}},
	{task.RepeatMonthly, []*regexp.Regexp{
		regexp.MustCompile(`每个?月(?:(\d{1,2})[日号])?`),
		regexp.MustCompile(`(?i)monthly`),
	}},
	{task.RepeatYearly, []*regexp.Regexp{
		regexp.MustCompile(`每年`),
		regexp.MustCompile(`(?i)yearly`),
		regexp.MustCompile(`年度`),
	}},
}

var weekdayNumbers = map[string]int{
	"日": 0, "天": 0, "一": 1, "二": 2, "三": 3, "四": 4, "五": 5, "六": 6,
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// detectRecurrenceCue records the recurrence type and, when the phrase names
// one, the weekday or day-of-month anchor ("每周一", "每月15日"). The matched
// span is stripped at cleanup time, not here.
func (s *segment) detectRecurrenceCue() {
	for _, family := range recurrenceCues {
		for _, p := range family.patterns {
			m := p.FindStringSubmatch(s.content)
			if m == nil {
				continue
			}
			s.repeat = family.repeat
			s.repeatSpan = m[0]
			if len(m) > 1 && m[1] != "" {
				switch family.repeat {
				case task.RepeatWeekly:
					if wd, ok := weekdayNumbers[m[1]]; ok {
						s.repeatWeekday = wd
					}
				case task.RepeatMonthly:
					if day, err := strconv.Atoi(m[1]); err == nil {
						s.repeatMonthDay = day
					}
				}
			}
			return
		}
	}
}

var (
	absoluteTimeZH = regexp.MustCompile(`(上午|下午|晚上|早上|早晨)\s*(\d{1,2})(?:[点时:：](\d{0,2}))?分?`)
	absoluteTimeEN = regexp.MustCompile(`(?i)(morning|afternoon|evening|early)\s*(\d{1,2})(?::(\d{1,2}))?`)
)

// extractAbsoluteTime handles period-word clock times ("下午3点",
// "afternoon 3:15"). Afternoon/evening hours below 12 shift to the second
// half of the day; morning/early 12 means midnight. Only the time-of-day on
// the anchor changes.
func extractAbsoluteTime(s *segment) (string, bool) {
	m := absoluteTimeZH.FindStringSubmatch(s.content)
	if m == nil {
		m = absoluteTimeEN.FindStringSubmatch(s.content)
	}
	if m == nil {
		return "", false
	}

	period := strings.ToLower(m[1])
	hour, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	minute := 0
	if m[3] != "" {
		if minute, err = strconv.Atoi(m[3]); err != nil {
			return "", false
		}
	}

	switch period {
	case "下午", "晚上", "afternoon", "evening":
		if hour < 12 {
			hour += 12
		}
	case "上午", "早上", "早晨", "morning", "early":
		if hour == 12 {
			hour = 0
		}
	}

	s.start = withClock(s.start, hour, minute)
	s.hasPeriodWord = true
	return m[0], true
}

var exactTimePattern = regexp.MustCompile(`(\d{1,2})[:：](\d{1,2})(?:\s*[至\-~到]?\s*(\d{1,2})[:：](\d{1,2}))?`)

// extractExactTime handles "H:MM" and "H:MM-H:MM" ranges. Without a period
// word, an ambiguous hour (<= 12) whose today-instant already passed rolls
// the anchor to tomorrow. A range ending before it starts crosses midnight,
// so the end rolls one day forward; the range length becomes the duration.
func extractExactTime(s *segment) (string, bool) {
	m := exactTimePattern.FindStringSubmatch(s.content)
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}

	if hour <= 12 && !s.hasPeriodWord {
		today := withClock(s.now, hour, minute)
		if today.Before(s.now) {
			s.start = s.start.AddDate(0, 0, 1)
		}
	}
	s.start = withClock(s.start, hour, minute)

	if m[3] != "" && m[4] != "" {
		endHour, err := strconv.Atoi(m[3])
		if err != nil {
			return "", false
		}
		endMinute, err := strconv.Atoi(m[4])
		if err != nil {
			return "", false
		}
		endDay := s.start
		if endHour < hour {
			endDay = endDay.AddDate(0, 0, 1)
		}
		end := withClock(endDay, endHour, endMinute)
		s.end = &end
		s.duration = int(end.Sub(s.start) / time.Minute)
	}

	return m[0], true
}

var (
	calendarDateISO = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	calendarDateZH  = regexp.MustCompile(`(?:(\d{4})年)?(\d{1,2})月(\d{1,2})[日号]`)
)

// extractCalendarDate handles explicit dates ("2026-9-1", "5月20日"),
// including the form the edit round-trip emits. Only the date component of
// the anchor changes; a time already extracted stays.
func extractCalendarDate(s *segment) (string, bool) {
	m := calendarDateISO.FindStringSubmatch(s.content)
	if m == nil {
		m = calendarDateZH.FindStringSubmatch(s.content)
	}
	if m == nil {
		return "", false
	}

	year := s.start.Year()
	if m[1] != "" {
		y, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false
		}
		year = y
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	day, err := strconv.Atoi(m[3])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	s.shiftDate(time.Date(year, time.Month(month), day,
		s.start.Hour(), s.start.Minute(), 0, 0, s.start.Location()))
	return m[0], true
}

var (
	relativeOffsetEN = regexp.MustCompile(`(?i)(\d+)\s*(seconds?|minutes?|hours?|days?|weeks?|months?)\s+later`)
	relativeOffsetZH = regexp.MustCompile(`(\d+)\s*(秒钟|秒|分钟|分|小时|钟头|天|周|月|刻钟|min|s|m|h|d)\s*后?`)
	durationAfterZH  = regexp.MustCompile(`开始\s*(\d+)\s*(分钟|分|小时|钟头|min|h)`)
	durationAfterEN  = regexp.MustCompile(`(?i)starting\s+(\d+)\s*(minutes?|hours?)`)
)

var offsetUnits = map[string]time.Duration{
	"秒钟": time.Second, "秒": time.Second, "s": time.Second,
	"second": time.Second, "seconds": time.Second,
	"分钟": time.Minute, "分": time.Minute, "m": time.Minute, "min": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"小时": time.Hour, "钟头": time.Hour, "h": time.Hour,
	"hour": time.Hour, "hours": time.Hour,
	"天": 24 * time.Hour, "d": 24 * time.Hour,
	"day": 24 * time.Hour, "days": 24 * time.Hour,
	"周": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	// A month is simplified to 30 days; a 刻钟 (quarter hour) is 15 minutes.
	"月": 30 * 24 * time.Hour, "month": 30 * 24 * time.Hour, "months": 30 * 24 * time.Hour,
	"刻钟": 15 * time.Minute,
}

// extractRelativeOffset handles "N 单位后" / "N units later". The offset is
// added to the current instant, not to a previously computed anchor. A
// trailing "开始 N 分钟/小时" (or "starting N minutes") sets the duration and
// derives the end from the new anchor.
func extractRelativeOffset(s *segment) (string, bool) {
	m := relativeOffsetEN.FindStringSubmatch(s.content)
	if m == nil {
		m = relativeOffsetZH.FindStringSubmatch(s.content)
	}
	if m == nil {
		return "", false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	unit, ok := offsetUnits[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}

	s.start = s.now.Add(time.Duration(amount) * unit)

	span := m[0]
	dm := durationAfterZH.FindStringSubmatch(s.content)
	if dm == nil {
		dm = durationAfterEN.FindStringSubmatch(s.content)
	}
	if dm != nil {
		n, err := strconv.Atoi(dm[1])
		if err != nil {
			return "", false
		}
		switch strings.ToLower(dm[2]) {
		case "分钟", "分", "min", "minute", "minutes":
			s.duration = n
		default:
			s.duration = n * 60
		}
		end := s.start.Add(time.Duration(s.duration) * time.Minute)
		s.end = &end
		s.content = strings.Replace(s.content, dm[0], "", 1)
	}

	return span, true
}

var (
	specialDateZH = regexp.MustCompile(`今天|明天|后天|下下周[一二三四五六日天]|下周[一二三四五六日天]`)
	specialDateEN = regexp.MustCompile(`(?i)day after tomorrow|tomorrow|today`)
)

// extractSpecialDate handles relative calendar words. "下周X" always lands
// strictly beyond the current week (difference to the target weekday, plus a
// full week); "下下周X" adds two weeks instead of one. Only the date
// component of the anchor changes.
func extractSpecialDate(s *segment) (string, bool) {
	m := specialDateZH.FindString(s.content)
	if m == "" {
		m = specialDateEN.FindString(s.content)
	}
	if m == "" {
		return "", false
	}

	switch lower := strings.ToLower(m); {
	case m == "今天" || lower == "today":
		// Anchor already on today.
	case m == "明天" || lower == "tomorrow":
		s.shiftDate(s.start.AddDate(0, 0, 1))
	case m == "后天" || lower == "day after tomorrow":
		s.shiftDate(s.start.AddDate(0, 0, 2))
	case strings.HasPrefix(m, "下下周"):
		s.shiftDate(s.start.AddDate(0, 0, daysToWeekday(s.start, strings.TrimPrefix(m, "下下周"))+14))
	case strings.HasPrefix(m, "下周"):
		s.shiftDate(s.start.AddDate(0, 0, daysToWeekday(s.start, strings.TrimPrefix(m, "下周"))+7))
	}

	return m, true
}

// shiftDate moves the anchor to a new calendar day, dragging an already
// extracted end instant along so ranges keep their length.
func (s *segment) shiftDate(start time.Time) {
	if s.end != nil {
		end := s.end.Add(start.Sub(s.start))
		s.end = &end
	}
	s.start = start
}

// daysToWeekday is the day count from d to the named weekday within the next
// seven days, never zero or negative.
func daysToWeekday(d time.Time, weekday string) int {
	target := weekdayNumbers[weekday]
	days := target - int(d.Weekday())
	if days <= 0 {
		days += 7
	}
	return days
}

func withClock(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}
