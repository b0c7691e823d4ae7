package safety

import (
	"lecture-tranquille-api/internal/domain/entity"
)

// Reason 输入被替换的原因
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonEmpty     Reason = "empty"
	ReasonForbidden Reason = "forbidden"
)

var fallbackTexts = map[entity.ContentMode]string{
	entity.ContentModeStory:            "Raconte une histoire douce et joyeuse pour un enfant, avec des animaux et de l'amitié.",
	entity.ContentModeSleepMeditation:  "Propose une méditation très calme pour aider un enfant à se détendre avant de dormir.",
	entity.ContentModeScienceExplainer: "Explique simplement un phénomène de la nature adapté à un enfant, comme pourquoi le ciel est bleu ou comment pousse une plante.",
}

// FallbackText 各内容类型的安全兜底输入
func FallbackText(mode entity.ContentMode) string {
	return fallbackTexts[mode.Normalize()]
}

// Verdict 净化结果
type Verdict struct {
	Text   string
	Reason Reason
}

// Replaced 原始输入是否被兜底文本替换
func (v Verdict) Replaced() bool {
	return v.Reason != ReasonNone
}

// SanitizeWithVerdict 净化输入并说明是否发生替换。
// 只有空串才替换，纯空白原样返回；命中黑名单时整体丢弃原文，不做局部遮盖。
func SanitizeWithVerdict(text string, mode entity.ContentMode) Verdict {
	switch {
	case text == "":
		return Verdict{Text: FallbackText(mode), Reason: ReasonEmpty}
	case ContainsForbiddenContent(text):
		return Verdict{Text: FallbackText(mode), Reason: ReasonForbidden}
	default:
		return Verdict{Text: text}
	}
}

// Sanitize 返回可安全送入提示词的输入
func Sanitize(text string, mode entity.ContentMode) string {
	return SanitizeWithVerdict(text, mode).Text
}
