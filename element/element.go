package element

import (
	"elnsim/mna"
	"fmt"
	"log"
	"sort"
)

// Kind 元件类型名称，网络描述文件中使用的标识符
type Kind string

// Element 元件接口，组合了节点图、加盖和电流定律
type Element interface {
	mna.Stamper
	mna.Device
	ConnectTo(a, b *mna.State) *mna.Bipole      // 注册连接
	ConnectGhostTo(a, b *mna.State) *mna.Bipole // 幽灵连接
	Value() float64                             // 元件主参数（电阻值、电流、电压）
	SetValue(v float64)                         // 设置元件主参数
}

// Factory 根据主参数创建元件
type Factory func(value float64) Element

// elementList 元件类型注册表
var elementList = map[Kind]Factory{}

// AddElement 注册元件类型，重复注册会终止程序
func AddElement(kind Kind, factory Factory) Kind {
	if _, ok := elementList[kind]; ok {
		log.Fatalf("元件重复注册: %s", kind)
	}
	elementList[kind] = factory
	return kind
}

// New 根据类型创建元件
func New(kind Kind, value float64) (Element, error) {
	factory, ok := elementList[kind]
	if !ok {
		return nil, fmt.Errorf("未知元件类型: %s", kind)
	}
	return factory(value), nil
}

// Kinds 已注册的元件类型列表
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(elementList))
	for k := range elementList {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsKind 判断类型是否已注册
func IsKind(kind Kind) bool {
	_, ok := elementList[kind]
	return ok
}
