package entity

import "strings"

// AgeBand 年龄段
type AgeBand struct {
	// Label 展示标签，如 "6–7 ans"
	Label string `json:"label"`
	// Level 学段编码，用于目录查询，如 "CP"
	Level string `json:"level"`
	// LengthGuideline 生成文本的目标长度
	LengthGuideline string `json:"length_guideline"`
	// ReferenceWPM 该年龄段的参考朗读速度（词/分钟）
	ReferenceWPM string `json:"reference_wpm"`
}

var ageBands = []AgeBand{
	{Label: "6–7 ans", Level: "CP", LengthGuideline: "100 à 150 mots", ReferenceWPM: "environ 50 mots/minute"},
	{Label: "7–8 ans", Level: "CE1", LengthGuideline: "150 à 200 mots", ReferenceWPM: "environ 70 mots/minute"},
	{Label: "8–9 ans", Level: "CE2", LengthGuideline: "200 à 250 mots", ReferenceWPM: "90 à 110 mots/minute"},
}

// AgeBands 按年龄升序返回全部年龄段
func AgeBands() []AgeBand {
	out := make([]AgeBand, len(ageBands))
	copy(out, ageBands)
	return out
}

// DefaultAgeBand 第一个年龄段，作为所有未识别输入的回退值
func DefaultAgeBand() AgeBand {
	return ageBands[0]
}

// AgeBandByLabel 根据展示标签查找年龄段，找不到时回退为默认值
func AgeBandByLabel(label string) AgeBand {
	b, _ := lookupAgeBand(func(b AgeBand) bool { return b.Label == normalizeAgeLabel(label) })
	return b
}

// AgeBandByLevel 根据学段编码查找年龄段，找不到时回退为默认值
func AgeBandByLevel(level string) AgeBand {
	level = strings.TrimSpace(level)
	b, _ := lookupAgeBand(func(b AgeBand) bool { return strings.EqualFold(b.Level, level) })
	return b
}

// ResolveAgeBand 依次按学段编码和展示标签解析，第二个返回值表示是否命中
func ResolveAgeBand(s string) (AgeBand, bool) {
	s = strings.TrimSpace(s)
	if b, ok := lookupAgeBand(func(b AgeBand) bool { return strings.EqualFold(b.Level, s) }); ok {
		return b, true
	}
	return lookupAgeBand(func(b AgeBand) bool { return b.Label == normalizeAgeLabel(s) })
}

func lookupAgeBand(match func(AgeBand) bool) (AgeBand, bool) {
	for _, b := range ageBands {
		if match(b) {
			return b, true
		}
	}
	return DefaultAgeBand(), false
}

// normalizeAgeLabel 接受连字符写法 "6-7 ans"
func normalizeAgeLabel(s string) string {
	return strings.Replace(strings.TrimSpace(s), "-", "–", 1)
}
