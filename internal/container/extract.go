package container

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/livecvr/internal/domain"
	"github.com/John-Robertt/livecvr/internal/infra/fsx"
)

// ExtractFirst 把容器中第一个类型为 kind 的元素写到 dst。
// 容器里没有该类型时返回 ElementNotFoundError，且不创建任何文件。
func ExtractFirst(c domain.Container, kind domain.Kind, dst string) error {
	el, ok := c.FirstOf(kind)
	if !ok {
		return &domain.ElementNotFoundError{Kind: kind}
	}
	return fsx.ExtractRange(c.Path, el.Start, el.End, dst)
}

// ExtractFirstJPEG 是提取首个静态 JPEG 的便捷入口。
func ExtractFirstJPEG(c domain.Container, dst string) error {
	return ExtractFirst(c, domain.KindJPEG, dst)
}

// ExtractFirstMP4 是提取首个视频的便捷入口。
// 注意：PNG 没有对应的便捷入口，只能走通用的 ExtractFirst（刻意保持的不对称）。
func ExtractFirstMP4(c domain.Container, dst string) error {
	return ExtractFirst(c, domain.KindMP4, dst)
}

// ExtractAll 按扫描顺序提取容器里的全部元素。
//
// base 为空白时使用容器自身路径；目标名为 <base去扩展名>-NN.<Kind>，
// NN 从 01 起对所有元素连续编号（与类型无关）。
// 第一个提取失败即中止（fail-fast，没有 best-effort 模式）。
func ExtractAll(c domain.Container, base string) error {
	base = strings.TrimSpace(base)
	if base == "" {
		base = c.Path
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for i, el := range c.Elements {
		dst := fmt.Sprintf("%s-%02d.%s", stem, i+1, el.Kind)
		if err := fsx.ExtractRange(c.Path, el.Start, el.End, dst); err != nil {
			return err
		}
	}
	return nil
}
