package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/livecvr/internal/domain"
)

// ReadOutState 读取输出目录的现状（只做 ReadDir，不读文件内容）。
// 若 outDir 不存在，返回空状态且不报错。
func ReadOutState(outDir string) (domain.OutState, error) {
	st := domain.OutState{
		OutDir:        filepath.Clean(outDir),
		ExistingNames: map[string]struct{}{},
	}

	entries, err := os.ReadDir(st.OutDir)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return domain.OutState{}, err
	}

	for _, e := range entries {
		st.ExistingNames[e.Name()] = struct{}{}
	}

	return st, nil
}

// PlanContainer 基于解析结果生成确定性的提取计划（不做任何写入）。
//
// 目标名遵循提取命名契约：<容器 base>-NN.<Kind>，NN 从 01 起对全部元素连续编号。
// used 是跨容器共享的已占用名字集合（含输出目录现有文件），冲突时追加 __n 后缀；
// 本函数会把分配出去的名字写回 used。
func PlanContainer(outDir string, file domain.ContainerFile, elements []domain.Element, used map[string]struct{}) (domain.ContainerPlan, error) {
	if len(elements) == 0 {
		return domain.ContainerPlan{}, fmt.Errorf("容器没有可提取元素：%q", file.RelPath)
	}

	writes := make([]domain.WritePlan, 0, len(elements))
	for i, el := range elements {
		name := fmt.Sprintf("%s-%02d.%s", file.Base, i+1, el.Kind)
		dstName := allocName(name, used)
		used[dstName] = struct{}{}

		writes = append(writes, domain.WritePlan{
			Element: el,
			DstAbs:  filepath.Join(outDir, dstName),
		})
	}

	return domain.ContainerPlan{
		File:     file,
		Elements: append([]domain.Element(nil), elements...),
		Writes:   writes,
	}, nil
}

func allocName(name string, used map[string]struct{}) string {
	if _, ok := used[name]; !ok {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s__%d%s", base, n, ext)
		if _, ok := used[cand]; !ok {
			return cand
		}
	}
}
