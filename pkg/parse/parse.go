// Package parse turns free-text task phrases into structured records: an
// input splitter, a segment parser, and an ordered set of expression
// extractors for clock times, ranges, offsets, dates, and recurrence cues.
package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tableflip.dev/remind/pkg/task"
)

var splitPattern = regexp.MustCompile(`[,;，；\n]+`)

// Split breaks a raw multi-task input on runs of comma, semicolon, or
// newline (ASCII or full-width) into trimmed non-empty phrases, preserving
// input order.
func Split(raw string) []string {
	parts := splitPattern.Split(raw, -1)
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

// Parse splits raw input into phrases and parses each, aggregating
// successes and failures. A failed phrase never discards the others.
func Parse(raw string, now time.Time) Results {
	var results Results
	for _, phrase := range Split(raw) {
		record, err := ParseSegment(phrase, now)
		if err != nil {
			results.Failed = append(results.Failed, Failure{Text: phrase, Err: err})
			continue
		}
		results.Success = append(results.Success, record)
	}
	return results
}

// ParseSegment parses one trimmed phrase. Unmatched text is not an error:
// it degrades to a plain task anchored at now with the full phrase as
// content. Errors are reserved for internal extraction faults.
func ParseSegment(text string, now time.Time) (Record, error) {
	s := &segment{
		content:       text,
		now:           now,
		start:         now,
		repeatWeekday: -1,
	}

	// Cue detectors run first, flags only; their keywords are stripped
	// during cleanup.
	s.detectCountdownCue()
	s.detectRecurrenceCue()

	for _, ex := range extractors {
		span, ok := ex.extract(s)
		if !ok {
			continue
		}
		if span == "" {
			return Record{}, fmt.Errorf("parse: %s extractor returned an empty span for %q", ex.name, text)
		}
		s.content = strings.Replace(s.content, span, "", 1)
	}

	s.applyRecurrenceAnchors()

	if s.duration > 0 && s.end == nil {
		end := s.start.Add(time.Duration(s.duration) * time.Minute)
		s.end = &end
	}
	if s.end != nil && s.duration == 0 {
		s.duration = int(s.end.Sub(s.start) / time.Minute)
	}

	content, tags := cleanContent(s.content, s.repeatSpan)

	return Record{
		Content:     content,
		Date:        s.start,
		EndDate:     s.end,
		Duration:    s.duration,
		IsRepeat:    s.repeat != task.RepeatNone,
		RepeatType:  s.repeat,
		IsCountdown: s.isCountdown,
		Tags:        tags,
	}, nil
}

// applyRecurrenceAnchors moves the anchor date onto an explicitly named
// recurrence day ("每周一" lands the anchor on a Monday, "每月15日" on the
// 15th) so the classifier derives the right anchor from the date.
func (s *segment) applyRecurrenceAnchors() {
	switch {
	case s.repeat == task.RepeatWeekly && s.repeatWeekday >= 0:
		days := (s.repeatWeekday - int(s.start.Weekday()) + 7) % 7
		s.start = s.start.AddDate(0, 0, days)
	case s.repeat == task.RepeatMonthly && s.repeatMonthDay > 0:
		day := s.repeatMonthDay
		if last := daysInMonth(s.start); day > last {
			day = last
		}
		s.start = time.Date(s.start.Year(), s.start.Month(), day,
			s.start.Hour(), s.start.Minute(), 0, 0, s.start.Location())
	}
}

func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}

var (
	cleanupKeywords = regexp.MustCompile(`(?i)倒计时|countdown|截止|deadline|期限|后开始|立即开始|立刻开始|现在开始|即刻开始|starting now`)
	cleanupRepeats  = regexp.MustCompile(`(?i)每[天日周月年]|daily|weekly|monthly|yearly|every\s*day`)
	cleanupPeriods  = regexp.MustCompile(`上午|下午|晚上|早上|早晨`)
	tagPattern      = regexp.MustCompile(`#([^\s#]+)`)
)

// cleanContent strips leftover cue keywords and period words from the
// residual content and lifts "#a,b" suffixes into tags.
func cleanContent(content, repeatSpan string) (string, []string) {
	if repeatSpan != "" {
		content = strings.Replace(content, repeatSpan, "", 1)
	}
	content = cleanupKeywords.ReplaceAllString(content, "")
	content = cleanupRepeats.ReplaceAllString(content, "")
	content = cleanupPeriods.ReplaceAllString(content, "")

	tags := []string{}
	if m := tagPattern.FindStringSubmatch(content); m != nil {
		for _, tag := range strings.Split(m[1], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		content = strings.Replace(content, m[0], "", 1)
	}

	return strings.Join(strings.Fields(content), " "), tags
}
