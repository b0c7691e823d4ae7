package port

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
)

// ErrMissingCredential 后端凭证缺失，实现方必须在发起任何网络调用前返回该错误
var ErrMissingCredential = errors.New("missing backend credential")

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}
