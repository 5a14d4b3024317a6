package service

// Kind 账目资源种类，封闭枚举：income / expenses / payroll
// 路由按种类逐一注册，未知种类一律按 404 处理
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpenses Kind = "expenses"
	KindPayroll  Kind = "payroll"
)

// Kinds 按固定顺序返回全部资源种类
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpenses, KindPayroll}
}

// ParseKind 解析资源种类，未知值返回 ErrNotFound
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpenses, KindPayroll:
		return Kind(s), nil
	}
	return "", ErrNotFound
}

func (k Kind) String() string { return string(k) }

// SupportsAttachments 工资记录不支持附件
func (k Kind) SupportsAttachments() bool {
	return k == KindIncome || k == KindExpenses
}
