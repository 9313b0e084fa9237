package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DenylistKeywords flag content for immediate removal when they appear in the
// reported text or in the report reason.
var DenylistKeywords = []string{
	"욕설", "비방", "스팸", "광고", "사기", "허위", "음란", "폭력",
}

var spamKeywords = []string{"광고", "홍보", "문의"}

var digitRunPattern = regexp.MustCompile(`[0-9]{3,}`)

// JudgePolicy holds the thresholds of the automatic moderation heuristics.
// The values are data so deployments can tune them without a code change.
type JudgePolicy struct {
	Denylist      []string
	SpamKeywords  []string
	SpamMinLength int // rune count above which the spam heuristic applies
	MaxDigitRuns  int // more digit runs than this looks like phone-number spam
	RepeatRunLen  int // identical consecutive runes that count as one run
	MaxRepeatRuns int // more runs than this trips the repetition heuristic
}

func DefaultJudgePolicy() JudgePolicy {
	return JudgePolicy{
		Denylist:      DenylistKeywords,
		SpamKeywords:  spamKeywords,
		SpamMinLength: 1000,
		MaxDigitRuns:  3,
		RepeatRunLen:  5,
		MaxRepeatRuns: 2,
	}
}

// Judge decides whether reported content should be deleted without human
// review. The three checks are OR'd and intentionally conservative: false
// positives are accepted in exchange for a smaller manual review queue.
func (p JudgePolicy) Judge(content, reason string) bool {
	return p.hasDenylistedKeyword(content, reason) ||
		p.looksLikeSpam(content) ||
		p.hasRepeatedRuns(content)
}

func (p JudgePolicy) hasDenylistedKeyword(content, reason string) bool {
	for _, kw := range p.Denylist {
		if strings.Contains(content, kw) || strings.Contains(reason, kw) {
			return true
		}
	}
	return false
}

// looksLikeSpam targets long promotional posts. Runs of 3+ digits
// approximate phone numbers.
func (p JudgePolicy) looksLikeSpam(content string) bool {
	if utf8.RuneCountInString(content) <= p.SpamMinLength {
		return false
	}
	for _, kw := range p.SpamKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return len(digitRunPattern.FindAllString(content, -1)) > p.MaxDigitRuns
}

// hasRepeatedRuns counts maximal runs of identical consecutive runes of
// length RepeatRunLen or more. RE2 has no backreferences, so the runs are
// counted with a linear scan.
func (p JudgePolicy) hasRepeatedRuns(content string) bool {
	runs := 0
	var prev rune
	runLen := 0
	for _, r := range content {
		if r == prev {
			runLen++
		} else {
			if runLen >= p.RepeatRunLen {
				runs++
			}
			prev = r
			runLen = 1
		}
	}
	if runLen >= p.RepeatRunLen {
		runs++
	}
	return runs > p.MaxRepeatRuns
}
