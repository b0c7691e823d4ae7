package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"lecture-tranquille-api/internal/application/reading"
	"lecture-tranquille-api/internal/interfaces/http/dto"
)

// SessionHandler 阅读会话处理器
type SessionHandler struct {
	svc *reading.Service
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(svc *reading.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreateSession 创建会话
// @Summary 创建阅读会话
// @Tags Sessions
// @Accept json
// @Produce json
// @Param body body dto.CreateSessionRequest false "年龄段"
// @Success 201 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateSessionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	sess, err := h.svc.CreateSession(ctx, req.Level)
	if err != nil {
		respondError(ctx, c, "failed to create session", err)
		return
	}
	dto.Created(c, dto.ToSessionResponse(sess))
}

// GetSession 获取会话快照
// @Summary 获取会话
// @Tags Sessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	ctx, id := withSession(c)
	sess, err := h.svc.GetSession(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to get session", err)
		return
	}
	dto.Success(c, dto.ToSessionResponse(sess))
}

// DeleteSession 删除会话
// @Summary 删除会话
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 204
// @Router /v1/sessions/{sid} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	ctx, id := withSession(c)
	if err := h.svc.DeleteSession(ctx, id); err != nil {
		respondError(ctx, c, "failed to delete session", err)
		return
	}
	dto.NoContent(c)
}

// transition 执行无请求体的事件
func (h *SessionHandler) transition(c *gin.Context, msg string, fn func(context.Context, string) (*reading.Transition, error)) {
	ctx, id := withSession(c)
	t, err := fn(ctx, id)
	if err != nil {
		respondError(ctx, c, msg, err)
		return
	}
	dto.Success(c, dto.ToTransitionResponse(t))
}

// SelectLevel 切换年龄段
// @Summary 切换年龄段
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.SelectLevelRequest true "年龄段"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/level [post]
func (h *SessionHandler) SelectLevel(c *gin.Context) {
	var req dto.SelectLevelRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(c, "failed to select level", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.SelectLevel(ctx, id, req.Level)
	})
}

// SelectText 选择文本
// @Summary 选择文本
// @Description 换成另一篇文本时计时回到 idle
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.SelectTextRequest true "文本"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/text [post]
func (h *SessionHandler) SelectText(c *gin.Context) {
	var req dto.SelectTextRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(c, "failed to select text", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.SelectText(ctx, id, req.TextID)
	})
}

// Start 开始计时
// @Summary 开始朗读计时
// @Description 已在计时中时返回 ignored
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/start [post]
func (h *SessionHandler) Start(c *gin.Context) {
	h.transition(c, "failed to start reading", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.Start(ctx, id)
	})
}

// Stop 结束计时
// @Summary 结束朗读计时
// @Description 不在计时中时返回 ignored
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/stop [post]
func (h *SessionHandler) Stop(c *gin.Context) {
	h.transition(c, "failed to stop reading", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.Stop(ctx, id)
	})
}

// SetWordsRead 调整读完的词数
// @Summary 调整读完的词数
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.WordsReadRequest true "词数"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/words-read [post]
func (h *SessionHandler) SetWordsRead(c *gin.Context) {
	var req dto.WordsReadRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(c, "failed to set words read", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.SetWordsRead(ctx, id, *req.WordsRead)
	})
}

// Result 计算速度并写入结果（每轮最多一次）
// @Summary 计算并保存朗读速度
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.FluencyResponse]
// @Router /v1/sessions/{sid}/result [post]
func (h *SessionHandler) Result(c *gin.Context) {
	ctx, id := withSession(c)
	f, err := h.svc.ComputeAndPersist(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to compute result", err)
		return
	}
	dto.Success(c, dto.ToFluencyResponse(f))
}

// Reset 开始新一轮阅读
// @Summary 重新开始
// @Description 清空计时、题目状态和草稿，旧控件键失效
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	h.transition(c, "failed to reset session", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.Reset(ctx, id)
	})
}

// GetQuiz 当前文本的题目与作答状态
// @Summary 理解题
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[reading.Quiz]
// @Router /v1/sessions/{sid}/quiz [get]
func (h *SessionHandler) GetQuiz(c *gin.Context) {
	ctx, id := withSession(c)
	quiz, err := h.svc.Quiz(ctx, id)
	if err != nil {
		respondError(ctx, c, "failed to load quiz", err)
		return
	}
	dto.Success(c, quiz)
}

// SubmitAnswer 提交选择题答案
// @Summary 提交选择题答案
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.AnswerRequest true "答案"
// @Success 200 {object} dto.Response[reading.Quiz]
// @Router /v1/sessions/{sid}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, id := withSession(c)
	quiz, err := h.svc.SubmitAnswer(ctx, id, req.Key, req.Answer)
	if err != nil {
		respondError(ctx, c, "failed to submit answer", err)
		return
	}
	dto.Success(c, quiz)
}

// Reveal 展示开放题参考答案
// @Summary 展示参考答案
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.RevealRequest true "题目"
// @Success 200 {object} dto.Response[reading.Quiz]
// @Router /v1/sessions/{sid}/reveal [post]
func (h *SessionHandler) Reveal(c *gin.Context) {
	var req dto.RevealRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, id := withSession(c)
	quiz, err := h.svc.RevealProposedAnswer(ctx, id, req.Key)
	if err != nil {
		respondError(ctx, c, "failed to reveal answer", err)
		return
	}
	dto.Success(c, quiz)
}

// SaveDraft 保存控件草稿
// @Summary 保存草稿
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.DraftRequest true "草稿"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/drafts [post]
func (h *SessionHandler) SaveDraft(c *gin.Context) {
	var req dto.DraftRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(c, "failed to save draft", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.SaveDraft(ctx, id, req.WidgetKey, req.Value)
	})
}

// Generate 创作新文本或改写当前文本
// @Summary 创作或改写
// @Description 会话已有生成文本时改写它；失败时返回友好提示并保留原文本
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Param body body dto.GenerateRequest true "创作输入"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/generate [post]
func (h *SessionHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, id := withSession(c)
	out, err := h.svc.Generate(ctx, id, reading.GenerateInput{
		Level:     req.Level,
		Mode:      req.Mode,
		Text:      req.Text,
		WidgetKey: req.WidgetKey,
	})
	if err != nil {
		respondError(ctx, c, "failed to generate text", err)
		return
	}
	dto.Success(c, dto.ToGenerateResponse(out))
}

// NewIdea 丢弃生成文本
// @Summary 新的创意
// @Tags Sessions
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/new-idea [post]
func (h *SessionHandler) NewIdea(c *gin.Context) {
	h.transition(c, "failed to reset creation", func(ctx context.Context, id string) (*reading.Transition, error) {
		return h.svc.NewIdea(ctx, id)
	})
}
