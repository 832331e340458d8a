// Package segment 实现对单个嵌入元素的前向扫描：输入一个定位在元素起点的
// SectionReader，输出该元素占用的字节数。扫描器不持有任何跨调用状态，
// 只依赖各格式自身的结构化定界规则（JPEG 标记段 / PNG chunk / MP4 box）。
package segment

import (
	"io"

	"github.com/John-Robertt/livecvr/internal/domain"
)

// PNGSignature 是标准 PNG 文件签名（8 字节）。
var PNGSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// FtypBoxType 是 MP4 文件类型 box 的 type 字段（box 头第 4..7 字节）。
var FtypBoxType = []byte("ftyp")

// readFull 是 io.ReadFull 的定长读封装：读不满统一映射为 TruncatedInputError。
// off 是本元素内的相对偏移，由上层解析器换算为文件内绝对偏移。
func readFull(r io.Reader, buf []byte, off int64, detail string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return &domain.TruncatedInputError{Offset: off, Detail: detail, Err: err}
	}
	return nil
}
