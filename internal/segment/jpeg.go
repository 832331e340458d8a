package segment

import (
	"bufio"
	"io"

	"github.com/John-Robertt/livecvr/internal/domain"
)

const (
	jpegMarkerSOI = 0xFFD8 // Start of Image
	jpegMarkerSOS = 0xFFDA // Start of Scan
	jpegMarkerEOI = 0xFFD9 // End of Image
)

// ScanJPEG 从 sr 的起点扫描一个完整 JPEG，返回它占用的字节数。
//
// 两阶段状态机：
//  1. 头部段阶段：读 2 字节标记 + 2 字节大端长度（长度包含长度字段自身），
//     向前跳过 length-2 字节到达下一个标记；遇到 SOS 后进入熵编码阶段。
//  2. 熵编码阶段：逐字节读取，把前后两个字节拼成候选标记，命中 EOI 立即停止。
//
// 已知脆弱点：头部阶段对所有标记统一按“跳过声明长度”处理，不区分无长度
// 字段的标记（RST、填充 0xFF）。LIVE_CVR 容器里的 JPEG 头部不含这类标记。
func ScanJPEG(sr *io.SectionReader) (int64, error) {
	var buf [4]byte

	if err := readFull(sr, buf[:2], 0, "读取 SOI 标记不足 2 字节"); err != nil {
		return 0, err
	}
	if m := uint16(buf[0])<<8 | uint16(buf[1]); m != jpegMarkerSOI {
		return 0, &domain.FormatError{Detail: "不是有效的 JPEG（缺少 SOI 标记）"}
	}
	pos := int64(2)

	// 头部段阶段。
	for {
		if err := readFull(sr, buf[:4], pos, "读取标记段头不足 4 字节"); err != nil {
			return 0, err
		}
		marker := uint16(buf[0])<<8 | uint16(buf[1])
		length := int64(buf[2])<<8 | int64(buf[3])
		pos += 4

		// length 包含长度字段自身的 2 字节。
		if skip := length - 2; skip != 0 {
			if _, err := sr.Seek(skip, io.SeekCurrent); err != nil {
				return 0, &domain.TruncatedInputError{Offset: pos, Detail: "跳过标记段失败", Err: err}
			}
			pos += skip
		}

		if marker == jpegMarkerSOS {
			break
		}
	}

	// 熵编码阶段：唯一的终点是 EOI；到不了就是截断。
	br := bufio.NewReaderSize(sr, 32<<10)
	var prev byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, &domain.TruncatedInputError{Offset: pos, Detail: "熵编码数据中未找到 EOI 标记", Err: err}
		}
		pos++
		if uint16(prev)<<8|uint16(b) == jpegMarkerEOI {
			return pos, nil
		}
		prev = b
	}
}
