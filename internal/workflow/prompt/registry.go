package prompt

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// PromptID 用户指令模板标识，对应 templates/<id>.user.txt
type PromptID string

const (
	PromptStoryV1            PromptID = "story_v1"
	PromptSleepMeditationV1  PromptID = "sleep_meditation_v1"
	PromptScienceExplainerV1 PromptID = "science_explainer_v1"
	PromptAmendmentV1        PromptID = "amendment_v1"
)

var knownPrompts = []PromptID{PromptStoryV1, PromptSleepMeditationV1, PromptScienceExplainerV1, PromptAmendmentV1}

// 所有用户指令共用同一份系统指令
const systemTemplate = "child_text_v1.system.txt"

// Registry 内嵌模板的只读集合，首次使用时一次性解析全部模板
type Registry struct {
	once      sync.Once
	templates map[PromptID]einoprompt.ChatTemplate
	err       error
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) load() {
	system, err := embedded(systemTemplate)
	if err != nil {
		r.err = err
		return
	}
	r.templates = make(map[PromptID]einoprompt.ChatTemplate, len(knownPrompts))
	for _, id := range knownPrompts {
		user, err := embedded(string(id) + ".user.txt")
		if err != nil {
			r.err = err
			return
		}
		r.templates[id] = einoprompt.FromMessages(schema.FString,
			schema.SystemMessage(system),
			schema.UserMessage(user),
		)
	}
}

// ChatTemplate 返回 id 对应的对话模板
func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	r.once.Do(r.load)
	if r.err != nil {
		return nil, fmt.Errorf("load prompt templates: %w", r.err)
	}
	tpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}
	return tpl, nil
}

func embedded(name string) (string, error) {
	b, err := templatesFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
