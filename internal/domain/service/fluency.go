package service

import "strings"

// CountWords 按空白切分统计词数
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// WordsPerMinute 计算朗读速度；耗时不大于 0 时不报告速度
func WordsPerMinute(wordsRead int, elapsedSeconds float64) (float64, bool) {
	if elapsedSeconds <= 0 {
		return 0, false
	}
	return float64(wordsRead) / (elapsedSeconds / 60), true
}
