package insight

import "sort"

// advisoryRule 是一条 (判定, 生成) 规则。规则按固定顺序逐条求值，
// 便于单独测试某条规则的加入或移除，替代原先层层嵌套的 if/else。
type advisoryRule[C any, T any] struct {
	when  func(C) bool
	build func(C) []T
}

// evalRules 依次执行规则并聚合产出，保持规则声明顺序。
func evalRules[C any, T any](ctx C, rules []advisoryRule[C, T]) []T {
	var out []T
	for _, r := range rules {
		if r.when(ctx) {
			out = append(out, r.build(ctx)...)
		}
	}
	return out
}

// sortByPriority 按优先级权重降序稳定排序，同级保持生成顺序。
func sortByPriority[T any](items []T, priority func(T) Priority) {
	sort.SliceStable(items, func(i, j int) bool {
		return priority(items[i]).Weight() > priority(items[j]).Weight()
	})
}
