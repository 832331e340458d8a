// Package container 实现 LIVE_CVR 复合 live photo 容器的解析与提取。
//
// 容器布局（扫描顺序）：若干元素单元（JPEG/PNG/MP4）之间可穿插 8 字节的
// LIVE_CVR 分隔标记；没有全局索引或长度表，元素边界只能靠各格式自身的
// 结构化定界规则一次前向扫描得出。
package container

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/John-Robertt/livecvr/internal/domain"
	"github.com/John-Robertt/livecvr/internal/segment"
)

// separatorMarker 是厂商的固定分隔标记：恰好 8 个 ASCII 字节，无 payload，
// 被消费后丢弃，不会成为元素。
var separatorMarker = []byte("LIVE_CVR")

// Parse 对 path 做一次前向扫描，返回按起始偏移严格递增的元素列表。
//
// 每个游标位置先做 8 字节前瞻（ReadAt，不消费游标），再按签名分派：
// - FF D8 前缀 -> JPEG
// - 完整 PNG 签名 -> PNG
// - 前瞻第 4..7 字节为 "ftyp" -> MP4（前 4 字节是任意 box 大小前缀）
// - 恰好 "LIVE_CVR" -> 跳过 8 字节，继续
// - 其余 -> FormatError（fail-closed：不认识就失败，不猜）
//
// 读句柄在任何退出路径（含扫描失败）都会关闭。
func Parse(path string) (domain.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Container{}, &domain.SourceMissingError{Path: path, Err: err}
		}
		return domain.Container{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return domain.Container{}, err
	}
	size := fi.Size()

	c := domain.Container{
		Path:     path,
		Elements: make([]domain.Element, 0, 4),
	}

	var look [8]byte
	for cursor := int64(0); cursor < size; {
		// ReadAt 在恰好读到文件末尾时允许同时返回 EOF，因此以读到的字节数为准。
		if n, err := f.ReadAt(look[:], cursor); n < len(look) {
			return domain.Container{}, &domain.TruncatedInputError{
				Path:   path,
				Offset: cursor,
				Detail: "8 字节前瞻读取不足",
				Err:    err,
			}
		}

		var (
			kind domain.Kind
			scan func(*io.SectionReader) (int64, error)
		)
		switch {
		case look[0] == 0xFF && look[1] == 0xD8:
			kind, scan = domain.KindJPEG, segment.ScanJPEG
		case bytes.Equal(look[:], segment.PNGSignature):
			kind, scan = domain.KindPNG, segment.ScanPNG
		case bytes.Equal(look[4:8], segment.FtypBoxType):
			kind, scan = domain.KindMP4, segment.ScanMP4
		case bytes.Equal(look[:], separatorMarker):
			cursor += int64(len(separatorMarker))
			continue
		default:
			return domain.Container{}, &domain.FormatError{
				Path:   path,
				Offset: cursor,
				Detail: "无法识别的 8 字节签名",
			}
		}

		n, err := scan(io.NewSectionReader(f, cursor, size-cursor))
		if err != nil {
			return domain.Container{}, rebase(err, path, cursor)
		}

		c.Elements = append(c.Elements, domain.Element{
			Kind:  kind,
			Start: cursor,
			End:   cursor + n - 1,
		})
		cursor += n
	}

	return c, nil
}

// rebase 把扫描器返回的元素内相对偏移换算成文件内绝对偏移，并补上路径。
func rebase(err error, path string, base int64) error {
	var te *domain.TruncatedInputError
	if errors.As(err, &te) {
		te.Path = path
		te.Offset += base
		return err
	}
	var fe *domain.FormatError
	if errors.As(err, &fe) {
		fe.Path = path
		fe.Offset += base
		return err
	}
	return err
}
