package segment

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/John-Robertt/livecvr/internal/domain"
)

// pngIENDChunk 是零长度 IEND chunk 的固定 12 字节编码：
// length=0 + "IEND" + 固定 CRC。PNG 的终止判定只认这串字面量。
var pngIENDChunk = []byte{0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82}

// ScanPNG 从 sr 的起点扫描一个完整 PNG，返回它占用的字节数。
//
// 校验签名后按 chunk 长度驱动跳进：每次读 12 字节前瞻
// （[4 长度][4 类型][前 4 字节 data/CRC]），命中 IEND 字面量即终止；
// 否则再前进 L 字节（12+L 恰好等于 4+4+L+4，即一个完整 chunk）。
// 不校验 CRC，也不校验 IEND 之外的 chunk 类型；因为靠长度跳进，
// data 内部出现 IEND 字节序列不会导致提前终止。
func ScanPNG(sr *io.SectionReader) (int64, error) {
	var sig [8]byte
	if err := readFull(sr, sig[:], 0, "读取 PNG 签名不足 8 字节"); err != nil {
		return 0, err
	}
	if !bytes.Equal(sig[:], PNGSignature) {
		return 0, &domain.FormatError{Detail: "不是有效的 PNG（签名不匹配）"}
	}
	pos := int64(8)

	var head [12]byte
	for {
		if err := readFull(sr, head[:], pos, "读取 chunk 头不足 12 字节"); err != nil {
			return 0, err
		}
		pos += 12

		if bytes.Equal(head[:], pngIENDChunk) {
			return pos, nil
		}

		l := int64(binary.BigEndian.Uint32(head[:4]))
		if _, err := sr.Seek(l, io.SeekCurrent); err != nil {
			return 0, &domain.TruncatedInputError{Offset: pos, Detail: "跳过 chunk data 失败", Err: err}
		}
		pos += l
	}
}
