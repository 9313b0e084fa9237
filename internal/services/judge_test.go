package services

import (
	"strings"
	"testing"
)

func TestJudgeDenylistedKeywordInContent(t *testing.T) {
	policy := DefaultJudgePolicy()
	for _, kw := range DenylistKeywords {
		content := "이 게시글에는 " + kw + " 표현이 포함되어 있습니다"
		if !policy.Judge(content, "기타") {
			t.Errorf("Judge(content with %q) = false, want true", kw)
		}
	}
}

func TestJudgeDenylistedKeywordInReason(t *testing.T) {
	policy := DefaultJudgePolicy()
	if !policy.Judge("짐을 같이 옮겨주실 분 구합니다", "스팸/광고") {
		t.Error("Judge with denylisted reason = false, want true")
	}
}

func TestJudgeCleanShortContent(t *testing.T) {
	policy := DefaultJudgePolicy()
	if policy.Judge("오늘 경부선 휴게소 주차 여유 있나요?", "기타 불쾌한 내용") {
		t.Error("Judge(clean short content) = true, want false")
	}
}

func TestJudgeSpamRequiresLongContent(t *testing.T) {
	policy := DefaultJudgePolicy()

	// at most 1000 runes: the spam heuristic must never fire, no matter how
	// many digit runs the content has
	short := strings.Repeat("010 1234 5678 ", 50)
	if len([]rune(short)) > 1000 {
		t.Fatalf("test fixture too long: %d runes", len([]rune(short)))
	}
	if policy.Judge(short, "기타") {
		t.Error("Judge(short digit-heavy content) = true, want false")
	}

	long := strings.Repeat("가", 1001) + " 궁금하시면 연락주세요 010 1234 5678 0100 999"
	if !policy.Judge(long, "기타") {
		t.Error("Judge(long content with >3 digit runs) = false, want true")
	}
}

func TestJudgeSpamKeywordInLongContent(t *testing.T) {
	policy := DefaultJudgePolicy()
	long := strings.Repeat("나", 1001) + " 자세한 내용은 홍보 페이지에서"
	if !policy.Judge(long, "기타") {
		t.Error("Judge(long content with promo keyword) = false, want true")
	}
}

func TestJudgeSpamDigitRunsBelowThreshold(t *testing.T) {
	policy := DefaultJudgePolicy()
	long := strings.Repeat("다", 1001) + " 123 456 789"
	if policy.Judge(long, "기타") {
		t.Error("Judge(long content with only 3 digit runs) = true, want false")
	}
}

func TestJudgeRepeatedRuns(t *testing.T) {
	policy := DefaultJudgePolicy()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"three runs of five", "ㅋㅋㅋㅋㅋ 진짜 ㅎㅎㅎㅎㅎ 대박 ㅠㅠㅠㅠㅠ", true},
		{"only two runs", "ㅋㅋㅋㅋㅋ 진짜 ㅎㅎㅎㅎㅎ 대박", false},
		{"runs of four do not count", "ㅋㅋㅋㅋ ㅎㅎㅎㅎ ㅠㅠㅠㅠ !!!!", false},
		{"long single run counts once", strings.Repeat("ㅋ", 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Judge(tt.content, "기타"); got != tt.want {
				t.Errorf("Judge(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
