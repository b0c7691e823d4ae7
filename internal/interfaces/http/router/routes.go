package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h RouterHandlers, generateLimit gin.HandlerFunc) {
	// 年龄段与文本目录
	ageBands := v1.Group("/age-bands")
	{
		ageBands.GET("", h.Catalog.ListAgeBands)
		ageBands.GET("/:band/texts", h.Catalog.ListTexts)
	}

	texts := v1.Group("/texts")
	{
		texts.GET("/:tid", h.Catalog.GetText)
		texts.GET("/:tid/questions", h.Catalog.GetQuestions)
		texts.GET("/:tid/illustration", h.Catalog.GetIllustration)
		texts.GET("/:tid/results", h.Catalog.ListResults)
	}

	v1.GET("/fluency/benchmarks", h.Catalog.ListBenchmarks)

	// 阅读会话
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Session.CreateSession)
		sessions.GET("/:sid", h.Session.GetSession)
		sessions.DELETE("/:sid", h.Session.DeleteSession)

		sessions.POST("/:sid/level", h.Session.SelectLevel)
		sessions.POST("/:sid/text", h.Session.SelectText)
		sessions.POST("/:sid/start", h.Session.Start)
		sessions.POST("/:sid/stop", h.Session.Stop)
		sessions.POST("/:sid/words-read", h.Session.SetWordsRead)
		sessions.POST("/:sid/result", h.Session.Result)
		sessions.POST("/:sid/reset", h.Session.Reset)

		// 理解题
		sessions.GET("/:sid/quiz", h.Session.GetQuiz)
		sessions.POST("/:sid/answers", h.Session.SubmitAnswer)
		sessions.POST("/:sid/reveal", h.Session.Reveal)

		// 创作
		sessions.POST("/:sid/drafts", h.Session.SaveDraft)
		sessions.POST("/:sid/generate", generateLimit, h.Session.Generate)
		sessions.POST("/:sid/new-idea", h.Session.NewIdea)
	}
}
