// Package entity 定义领域实体
package entity

import "strings"

// ContentMode 生成内容类型
type ContentMode string

const (
	ContentModeStory            ContentMode = "story"
	ContentModeSleepMeditation  ContentMode = "sleep_meditation"
	ContentModeScienceExplainer ContentMode = "science_explainer"
)

var contentModeLabels = map[ContentMode]string{
	ContentModeStory:            "Histoire",
	ContentModeSleepMeditation:  "Méditation pour dormir",
	ContentModeScienceExplainer: "Vulgarisation scientifique",
}

// ContentModes 按展示顺序返回全部内容类型
func ContentModes() []ContentMode {
	return []ContentMode{ContentModeStory, ContentModeSleepMeditation, ContentModeScienceExplainer}
}

// ParseContentMode 解析内容类型，支持编码和法语标签；无法识别时回退为 Story
func ParseContentMode(s string) ContentMode {
	s = strings.TrimSpace(s)
	for _, m := range ContentModes() {
		if strings.EqualFold(s, string(m)) || s == contentModeLabels[m] {
			return m
		}
	}
	return ContentModeStory
}

// Valid 是否为已定义的内容类型
func (m ContentMode) Valid() bool {
	_, ok := contentModeLabels[m]
	return ok
}

// Normalize 未定义的值回退为 Story
func (m ContentMode) Normalize() ContentMode {
	if m.Valid() {
		return m
	}
	return ContentModeStory
}

// Label 法语展示标签，同时注入系统提示词
func (m ContentMode) Label() string {
	return contentModeLabels[m.Normalize()]
}
