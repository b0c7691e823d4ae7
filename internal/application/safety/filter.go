// Package safety 实现儿童内容安全过滤：词法黑名单与输入净化
package safety

import (
	"regexp"
	"strings"
)

// Category 黑名单类别
type Category string

const (
	CategoryViolence Category = "violence"
	CategorySexual   Category = "sexual"
	CategoryDrugs    Category = "drugs"
	CategoryInsults  Category = "insults"
)

// denylist 固定黑名单，小写
var denylist = map[Category][]string{
	CategoryViolence: {
		"tuer", "mort", "sang", "arme", "pistolet", "fusil", "couteau", "bombe",
		"guerre", "meurtre", "assassin", "violence", "frapper", "battre",
	},
	CategorySexual: {
		"sexe", "nu", "nue", "penis", "vagin", "seins", "pornographie",
	},
	CategoryDrugs: {
		"drogue", "cocaine", "heroine", "cannabis", "alcool", "cigarette", "fumer",
	},
	CategoryInsults: {
		"merde", "putain", "connard", "salaud", "enculer", "nique", "bordel",
		"con", "pute", "bite", "couille",
	},
}

// 整词匹配：两侧必须是文本边界或非单词字符。
// RE2 的 \b 只识别 ASCII，"tuerie" 之类带重音的词会被错误切开，因此显式写出 Unicode 边界。
const wordChar = `\p{L}\p{N}\p{M}_`

var forbiddenPattern = compileDenylist()

func compileDenylist() *regexp.Regexp {
	words := make([]string, 0, 40)
	for _, c := range Categories() {
		for _, w := range denylist[c] {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	return regexp.MustCompile(`(?i)(?:^|[^` + wordChar + `])(?:` + strings.Join(words, "|") + `)(?:$|[^` + wordChar + `])`)
}

// Categories 按固定顺序返回全部类别
func Categories() []Category {
	return []Category{CategoryViolence, CategorySexual, CategoryDrugs, CategoryInsults}
}

// Words 返回某类别的黑名单副本
func Words(c Category) []string {
	out := make([]string, len(denylist[c]))
	copy(out, denylist[c])
	return out
}

// ContainsForbiddenContent 判断文本是否包含黑名单中的整词，不区分大小写
func ContainsForbiddenContent(text string) bool {
	if text == "" {
		return false
	}
	return forbiddenPattern.MatchString(text)
}
