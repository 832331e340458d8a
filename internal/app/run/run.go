package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/John-Robertt/livecvr/internal/app/planner"
	"github.com/John-Robertt/livecvr/internal/config"
	"github.com/John-Robertt/livecvr/internal/container"
	"github.com/John-Robertt/livecvr/internal/domain"
	"github.com/John-Robertt/livecvr/internal/infra/fsx"
	"github.com/John-Robertt/livecvr/internal/scan"
)

// Execute 执行一次 run（dry-run/apply），并返回对外稳定的 RunReport。
// 该函数尽量把错误“降级”为 item 级失败（单条失败不影响其他）。
func Execute(ctx context.Context, eff config.EffectiveConfig) domain.RunReport {
	return ExecuteWithObserver(ctx, eff, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/阶段信息（由上层决定是否启用）。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Path:      eff.Path,
		DryRun:    !eff.Apply,
		StartedAt: started,
		Items:     make([]domain.ItemResult, 0, 128),
	}

	scanStarted := time.Now()
	// 输出目录自身必须排除在扫描之外（out/ 的固定排除只覆盖默认值）。
	files, err := scan.ScanContainers(eff.Path, append([]string{eff.OutDir}, eff.ExcludeDirs...))
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("扫描失败：%v", err)))
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}
	scanDur := time.Since(scanStarted)

	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{
			"files": len(files),
		}, scanDur)
	}

	// 解析阶段：逐个容器做一次前向扫描。
	// - 签名不认识（FormatError）：unrecognized，不算失败
	// - 其他解析错误：failed（带 error_code）
	// - 解析成功但没有元素：skipped
	type parsed struct {
		file domain.ContainerFile
		c    domain.Container
	}

	parseStarted := time.Now()
	ok := make([]parsed, 0, len(files))
	unrecognized := 0
	for _, f := range files {
		c, e := container.Parse(f.AbsPath)
		if e != nil {
			if domain.IsFormat(e) {
				unrecognized++
				rr.Items = append(rr.Items, domain.ItemResult{
					Container: f.RelPath,
					Status:    domain.StatusUnrecognized,
					ErrorCode: domain.ErrCodeFormatInvalid,
					ErrorMsg:  e.Error(),
					Elements:  []domain.ElementResult{},
					Files:     []domain.FileResult{},
				})
				continue
			}
			code := domain.ErrCode(e)
			if code == "" {
				code = domain.ErrCodeIOFailed
			}
			rr.Items = append(rr.Items, domain.ItemResult{
				Container: f.RelPath,
				Status:    domain.StatusFailed,
				ErrorCode: code,
				ErrorMsg:  e.Error(),
				Elements:  []domain.ElementResult{},
				Files:     []domain.FileResult{},
			})
			continue
		}
		if len(c.Elements) == 0 {
			rr.Items = append(rr.Items, domain.ItemResult{
				Container: f.RelPath,
				Status:    domain.StatusSkipped,
				Elements:  []domain.ElementResult{},
				Files:     []domain.FileResult{},
			})
			continue
		}
		ok = append(ok, parsed{file: f, c: c})
	}
	parseDur := time.Since(parseStarted)

	if obs != nil {
		obs.OnPhaseDone("parse", map[string]any{
			"containers":   len(ok),
			"unrecognized": unrecognized,
		}, parseDur)
	}

	// 规划阶段：串行分配目标名（used 跨容器共享，保证确定性与无覆盖）。
	planStarted := time.Now()
	outDir := filepath.Join(eff.Path, eff.OutDir)

	st, err := planner.ReadOutState(outDir)
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("读取输出目录状态失败：%v", err)))
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}
	used := make(map[string]struct{}, len(st.ExistingNames))
	for n := range st.ExistingNames {
		used[n] = struct{}{}
	}

	plans := make([]domain.ContainerPlan, 0, len(ok))
	totalWrites := 0
	for _, p := range ok {
		plan, e := planner.PlanContainer(outDir, p.file, p.c.Elements, used)
		if e != nil {
			rr.Items = append(rr.Items, domain.ItemResult{
				Container: p.file.RelPath,
				Status:    domain.StatusFailed,
				ErrorCode: domain.ErrCodeIOFailed,
				ErrorMsg:  fmt.Sprintf("规划失败：%v", e),
				Elements:  elementResults(p.c.Elements),
				Files:     []domain.FileResult{},
			})
			continue
		}
		plans = append(plans, plan)
		totalWrites += len(plan.Writes)
	}
	planDur := time.Since(planStarted)

	if obs != nil {
		obs.OnPhaseDone("plan", map[string]any{
			"items":  len(plans),
			"writes": totalWrites,
		}, planDur)
	}

	// 执行阶段：按容器并发（worker pool），容器内串行写出。
	workers := eff.Concurrency
	if workers < 1 {
		workers = 1
	}

	if obs != nil {
		obs.OnPhaseDone("exec", map[string]any{
			"workers":     workers,
			"total_items": len(plans),
		}, 0)
	}

	type execResult struct {
		container string
		res       domain.ItemResult
		dur       time.Duration
	}

	jobs := make(chan domain.ContainerPlan)
	results := make(chan execResult, len(plans))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				oneStarted := time.Now()
				r := execOne(ctx, eff, p)
				results <- execResult{
					container: p.File.RelPath,
					res:       r,
					dur:       time.Since(oneStarted),
				}
			}
		}()
	}

	go func() {
		for _, p := range plans {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	done := 0
	for it := range results {
		done++
		rr.Items = append(rr.Items, it.res)
		if obs != nil {
			obs.OnItemDone(done, len(plans), it.container, it.res, it.dur)
		}
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}

func syntheticFailed(code, msg string) domain.ItemResult {
	return domain.ItemResult{
		Container: "",
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
		Elements:  []domain.ElementResult{},
		Files:     []domain.FileResult{},
	}
}

func execOne(ctx context.Context, eff config.EffectiveConfig, p domain.ContainerPlan) domain.ItemResult {
	item := domain.ItemResult{
		Container: p.File.RelPath,
		Status:    domain.StatusProcessed, // 失败时覆盖
		Elements:  elementResults(p.Elements),
		Files:     buildFileResults(eff, p),
	}

	// dry-run：解析与规划都已完成，不做任何写入。
	if !eff.Apply {
		return item
	}

	if err := ctx.Err(); err != nil {
		item.Status = domain.StatusFailed
		item.ErrorCode = domain.ErrCodeIOFailed
		item.ErrorMsg = err.Error()
		return item
	}

	outDir := filepath.Dir(p.Writes[0].DstAbs)
	if err := ensureDir(outDir); err != nil {
		item.Status = domain.StatusFailed
		if fsx.IsPathTypeConflict(err) {
			item.ErrorCode = domain.ErrCodeTargetConflict
		} else {
			item.ErrorCode = domain.ErrCodeIOFailed
		}
		item.ErrorMsg = err.Error()
		failAllFiles(&item)
		return item
	}

	// 逐个区间写出；失败即停（该 write 标记 failed，之前的保留 extracted，之后的保持 planned）。
	for i := range p.Writes {
		w := p.Writes[i]
		if err := fsx.ExtractRange(p.File.AbsPath, w.Element.Start, w.Element.End, w.DstAbs); err != nil {
			item.Status = domain.StatusFailed
			code := domain.ErrCode(err)
			if code == "" {
				code = domain.ErrCodeIOFailed
			}
			item.ErrorCode = code
			item.ErrorMsg = err.Error()
			item.Files[i].Status = domain.FileStatusFailed
			return item
		}
		item.Files[i].Status = domain.FileStatusExtracted
	}

	return item
}

func elementResults(elements []domain.Element) []domain.ElementResult {
	out := make([]domain.ElementResult, 0, len(elements))
	for _, el := range elements {
		out = append(out, domain.ElementResult{
			Kind:   string(el.Kind),
			Start:  el.Start,
			End:    el.End,
			Length: el.Length(),
		})
	}
	return out
}

func buildFileResults(eff config.EffectiveConfig, p domain.ContainerPlan) []domain.FileResult {
	out := make([]domain.FileResult, 0, len(p.Writes))
	for _, w := range p.Writes {
		dst := ""
		if rel, err := filepath.Rel(eff.Path, w.DstAbs); err == nil {
			dst = rel
		} else {
			dst = w.DstAbs
		}

		out = append(out, domain.FileResult{
			Kind:   string(w.Element.Kind),
			Dst:    dst,
			Status: domain.FileStatusPlanned,
		})
	}
	return out
}

func failAllFiles(item *domain.ItemResult) {
	for i := range item.Files {
		item.Files[i].Status = domain.FileStatusFailed
	}
}

func ensureDir(dir string) error {
	fi, err := os.Stat(dir)
	if err == nil {
		if fi.IsDir() {
			return nil
		}
		return &fsx.PathTypeConflictError{Path: dir, Want: "dir", Got: "file"}
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
