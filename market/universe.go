package market

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed universe.yaml
var universeYAML []byte

type listing struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

var (
	universes map[Market][]string
	names     map[Market]map[string]string
)

func init() {
	var raw map[Market][]listing
	if err := yaml.Unmarshal(universeYAML, &raw); err != nil {
		panic(fmt.Sprintf("解析内置标的池失败: %v", err))
	}
	universes = make(map[Market][]string, len(raw))
	names = make(map[Market]map[string]string, len(raw))
	for m, items := range raw {
		syms := make([]string, 0, len(items))
		byCode := make(map[string]string, len(items))
		for _, it := range items {
			syms = append(syms, it.Symbol)
			byCode[it.Symbol] = it.Name
		}
		universes[m] = syms
		names[m] = byCode
	}
}

// DefaultUniverse 返回市场的默认标的池（A股为上证50样本）
// 返回副本，调用方可自由修改
func DefaultUniverse(m Market) []string {
	src := universes[m]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// StaticName 查询内置名称表
func StaticName(m Market, symbol string) (string, bool) {
	n, ok := names[m][symbol]
	return n, ok
}
