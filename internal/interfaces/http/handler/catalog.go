package handler

import (
	"github.com/gin-gonic/gin"

	"lecture-tranquille-api/internal/application/catalog"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/interfaces/http/dto"
)

const benchmarkNote = "Ces chiffres sont des moyennes. Certains enfants lisent plus vite, d'autres moins vite, et c'est très bien comme ça !"

// CatalogHandler 文本目录处理器
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListAgeBands 年龄段列表
// @Summary 年龄段列表
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.AgeBandListResponse]
// @Router /v1/age-bands [get]
func (h *CatalogHandler) ListAgeBands(c *gin.Context) {
	dto.Success(c, &dto.AgeBandListResponse{
		AgeBands: h.svc.AgeBands(),
		Default:  entity.DefaultAgeBand().Level,
	})
}

// ListTexts 年龄段下的文本
// @Summary 年龄段下的文本
// @Description band 可以是学段编码或年龄标签，未识别时回退为默认年龄段
// @Tags Catalog
// @Produce json
// @Param band path string true "学段编码或年龄标签"
// @Success 200 {object} dto.Response[dto.TextListResponse]
// @Router /v1/age-bands/{band}/texts [get]
func (h *CatalogHandler) ListTexts(c *gin.Context) {
	ctx := c.Request.Context()
	band, texts, err := h.svc.ListTexts(ctx, c.Param("band"))
	if err != nil {
		respondError(ctx, c, "failed to list texts", err)
		return
	}
	dto.Success(c, &dto.TextListResponse{AgeBand: band, Texts: texts})
}

// GetText 文本详情
// @Summary 文本详情
// @Tags Catalog
// @Produce json
// @Param tid path int true "文本 ID"
// @Success 200 {object} dto.Response[catalog.TextDetail]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/texts/{tid} [get]
func (h *CatalogHandler) GetText(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := dto.BindTextID(c)
	if !ok {
		dto.BadRequest(c, "invalid text id")
		return
	}
	text, err := h.svc.GetText(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to get text", err)
		return
	}
	dto.Success(c, text)
}

// GetQuestions 文本题目，不含答案
// @Summary 文本题目
// @Tags Catalog
// @Produce json
// @Param tid path int true "文本 ID"
// @Success 200 {object} dto.Response[catalog.QuestionSet]
// @Router /v1/texts/{tid}/questions [get]
func (h *CatalogHandler) GetQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := dto.BindTextID(c)
	if !ok {
		dto.BadRequest(c, "invalid text id")
		return
	}
	set, err := h.svc.Questions(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to get questions", err)
		return
	}
	dto.Success(c, set)
}

// GetIllustration 文本插图（PNG）
// @Summary 文本插图
// @Tags Catalog
// @Produce png
// @Param tid path int true "文本 ID"
// @Router /v1/texts/{tid}/illustration [get]
func (h *CatalogHandler) GetIllustration(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := dto.BindTextID(c)
	if !ok {
		dto.BadRequest(c, "invalid text id")
		return
	}
	path, err := h.svc.Illustration(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to render illustration", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}

// ListResults 文本的历史朗读结果
// @Summary 历史朗读结果
// @Tags Catalog
// @Produce json
// @Param tid path int true "文本 ID"
// @Param limit query int false "数量上限"
// @Success 200 {object} dto.Response[dto.ResultListResponse]
// @Router /v1/texts/{tid}/results [get]
func (h *CatalogHandler) ListResults(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := dto.BindTextID(c)
	if !ok {
		dto.BadRequest(c, "invalid text id")
		return
	}
	results, err := h.svc.Results(ctx, id, dto.BindLimit(c, 20))
	if err != nil {
		respondError(ctx, c, "failed to list results", err)
		return
	}
	dto.Success(c, dto.ToResultListResponse(results))
}

// ListBenchmarks 参考朗读速度
// @Summary 参考朗读速度
// @Tags Fluency
// @Produce json
// @Success 200 {object} dto.Response[dto.BenchmarkListResponse]
// @Router /v1/fluency/benchmarks [get]
func (h *CatalogHandler) ListBenchmarks(c *gin.Context) {
	dto.Success(c, &dto.BenchmarkListResponse{
		Benchmarks: h.svc.Benchmarks(),
		Note:       benchmarkNote,
	})
}
