package segment

import (
	"bytes"
	"io"

	"github.com/John-Robertt/livecvr/internal/domain"
)

// ScanMP4 从 sr 的起点扫描 MP4，返回它占用的字节数。
//
// MP4 没有可用的通用结构化终止标记，而 LIVE_CVR 容器总是把视频放在最后，
// 所以这里直接认领从 ftyp box 起到文件末尾的全部字节。这是刻意的简化，
// 不是通用 MP4 解析：若视频之后还有尾随数据，或 MP4 不在末尾，
// 都在支持范围之外，会被误并入视频区间。
func ScanMP4(sr *io.SectionReader) (int64, error) {
	var head [8]byte
	if err := readFull(sr, head[:], 0, "读取 box 头不足 8 字节"); err != nil {
		return 0, err
	}
	// 前 4 字节是任意的 box 大小前缀，不参与识别。
	if !bytes.Equal(head[4:8], FtypBoxType) {
		return 0, &domain.FormatError{Detail: "不是有效的 MP4（缺少 ftyp box）"}
	}
	return sr.Size(), nil
}
