package domain

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	StatusProcessed    = "processed"
	StatusSkipped      = "skipped"
	StatusFailed       = "failed"
	StatusUnrecognized = "unrecognized"
)

const (
	FileStatusPlanned   = "planned"
	FileStatusExtracted = "extracted"
	FileStatusFailed    = "failed"
)

const (
	ErrCodeFormatInvalid     = "format_invalid"
	ErrCodeTruncated         = "input_truncated"
	ErrCodeElementNotFound   = "element_not_found"
	ErrCodeSourceMissing     = "source_missing"
	ErrCodeTargetConflict    = "target_conflict"
	ErrCodeIOFailed          = "io_failed"
	ErrCodeConfigNotFound    = "config_not_found"
	ErrCodeConfigInvalid     = "config_invalid"
	ErrCodeConfigMissingPath = "config_missing_path"
)

// RunReport 是对外稳定输出（report.json / stdout JSON）的结构。
type RunReport struct {
	Path   string `json:"path"`
	DryRun bool   `json:"dry_run"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []ItemResult  `json:"items"`
}

type ReportSummary struct {
	Processed    int `json:"processed"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Unrecognized int `json:"unrecognized"`
}

// ItemResult 是单个容器文件的处理结果。
// Container 使用相对 path 的路径，保证 report 可跨机器对比。
type ItemResult struct {
	Container string `json:"container"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	Elements []ElementResult `json:"elements"`
	Files    []FileResult    `json:"files"`
}

// ElementResult 是解析出的单个元素（闭区间偏移）。
type ElementResult struct {
	Kind   string `json:"kind"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Length int64  `json:"length"`
}

type FileResult struct {
	Kind   string `json:"kind"`
	Dst    string `json:"dst"`
	Status string `json:"status"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) items 稳定排序：按 container 路径字典序；container=="" 的合成条目排在最后
// 3) summary 由 items 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Items, func(i, j int) bool {
		a := r.Items[i].Container
		b := r.Items[j].Container
		if a == "" && b == "" {
			return false
		}
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	var s ReportSummary
	for _, it := range r.Items {
		switch it.Status {
		case StatusProcessed:
			s.Processed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusUnrecognized:
			s.Unrecognized++
		}
	}
	r.Summary = s
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
