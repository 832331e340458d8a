package domain

// Kind 是容器内嵌元素的类型标记。
//
// 约束：Kind 的字符串值同时用作提取产物的扩展名（例如 photo-01.Jpg），
// 因此大小写形态是对外契约的一部分，不允许随意规范化。
type Kind string

const (
	KindJPEG Kind = "Jpg"
	KindPNG  Kind = "Png"
	KindMP4  Kind = "Mp4"
)

// Valid 判断 k 是否为已知元素类型。
func (k Kind) Valid() bool {
	switch k {
	case KindJPEG, KindPNG, KindMP4:
		return true
	default:
		return false
	}
}

// Element 是容器文件内一段连续的字节区间（闭区间，零基偏移）。
//
// 不变量（实现必须遵守）：
// - Start <= End，即 Length() >= 1
// - 单次前向扫描中创建一次，此后不再修改
type Element struct {
	Kind  Kind
	Start int64
	End   int64
}

// Length 返回元素的字节长度（闭区间：End-Start+1）。
func (e Element) Length() int64 { return e.End - e.Start + 1 }

// Container 是一次解析得到的复合 live photo 文件。
//
// Elements 按扫描顺序（也即起始偏移升序）排列，两两不重叠；
// 分隔标记占用的 8 字节不会出现在任何元素里。
type Container struct {
	Path     string
	Elements []Element
}

// FirstOf 返回第一个类型为 k 的元素；不存在时 ok=false。
func (c Container) FirstOf(k Kind) (Element, bool) {
	for _, e := range c.Elements {
		if e.Kind == k {
			return e, true
		}
	}
	return Element{}, false
}
