package prompt

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	chattpl "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"astock/market"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Fields 占位符取值
type Fields map[string]string

// MissingFieldsError 渲染前发现缺少占位符取值
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "prompt 模板缺少字段: " + strings.Join(e.Fields, ", ")
}

// Template 系统提示词模板，渲染前校验所有占位符都有取值
type Template struct {
	market market.Market
	fields []string
	chat   *chattpl.DefaultChatTemplate
}

// NewTemplate 解析模板文本；文本必须包含全部 RequiredFields
func NewTemplate(m market.Market, text string) (*Template, error) {
	seen := map[string]bool{}
	var fields []string
	for _, match := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			fields = append(fields, match[1])
		}
	}
	var absent []string
	for _, f := range RequiredFields {
		if !seen[f] {
			absent = append(absent, f)
		}
	}
	if len(absent) > 0 {
		return nil, fmt.Errorf("%s 市场模板缺少占位符: %s", m, strings.Join(absent, ", "))
	}
	return &Template{
		market: m,
		fields: fields,
		chat:   chattpl.FromMessages(schema.FString, schema.SystemMessage(text)),
	}, nil
}

// TemplateFor 返回市场对应的内置模板
func TemplateFor(m market.Market) (*Template, error) {
	switch m {
	case market.CN:
		return NewTemplate(m, astockSystemPrompt)
	case market.US:
		return NewTemplate(m, usStockSystemPrompt)
	}
	return nil, fmt.Errorf("没有 %s 市场的提示词模板", m)
}

// Fields 模板中出现的占位符，按首次出现顺序
func (t *Template) Fields() []string {
	return append([]string(nil), t.fields...)
}

// Validate 检查 vars 覆盖了模板的全部占位符
func (t *Template) Validate(vars Fields) error {
	var missing []string
	for _, f := range t.fields {
		if _, ok := vars[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Messages 渲染为智能体运行时使用的系统消息
func (t *Template) Messages(ctx context.Context, vars Fields) ([]*schema.Message, error) {
	if err := t.Validate(vars); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values[k] = v
	}
	msgs, err := t.chat.Format(ctx, values)
	if err != nil {
		return nil, fmt.Errorf("渲染提示词失败: %w", err)
	}
	return msgs, nil
}

// Render 渲染为纯文本
func (t *Template) Render(ctx context.Context, vars Fields) (string, error) {
	msgs, err := t.Messages(ctx, vars)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.Content)
	}
	return b.String(), nil
}
