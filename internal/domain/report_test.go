package domain

import (
	"testing"
	"time"
)

func TestRunReport_Finalize_SortAndSummary(t *testing.T) {
	rr := RunReport{
		StartedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.FixedZone("X", 8*3600)),
		FinishedAt: time.Date(2026, 8, 1, 12, 0, 1, 0, time.FixedZone("X", 8*3600)),
		Items: []ItemResult{
			{Container: "", Status: StatusFailed},
			{Container: "b/photo.jpg", Status: StatusProcessed},
			{Container: "a/photo.jpg", Status: StatusUnrecognized},
		},
	}
	rr.Finalize()

	if rr.Items[0].Container != "a/photo.jpg" || rr.Items[1].Container != "b/photo.jpg" || rr.Items[2].Container != "" {
		t.Fatalf("排序不符合预期：%+v", rr.Items)
	}
	if rr.Summary.Processed != 1 || rr.Summary.Failed != 1 || rr.Summary.Unrecognized != 1 || rr.Summary.Skipped != 0 {
		t.Fatalf("summary 不符合预期：%+v", rr.Summary)
	}
	if zone, _ := rr.StartedAt.Zone(); zone != "UTC" {
		t.Fatalf("期望 UTC 时间，实际 zone=%q", zone)
	}
}

func TestElement_Length(t *testing.T) {
	e := Element{Kind: KindJPEG, Start: 10, End: 10}
	if e.Length() != 1 {
		t.Fatalf("单字节元素长度应为 1，实际 %d", e.Length())
	}
	e = Element{Kind: KindMP4, Start: 8, End: 27}
	if e.Length() != 20 {
		t.Fatalf("期望长度 20，实际 %d", e.Length())
	}
}

func TestContainer_FirstOf(t *testing.T) {
	c := Container{
		Path: "x",
		Elements: []Element{
			{Kind: KindJPEG, Start: 0, End: 9},
			{Kind: KindMP4, Start: 18, End: 37},
		},
	}
	if el, ok := c.FirstOf(KindMP4); !ok || el.Start != 18 {
		t.Fatalf("期望找到 MP4 元素，实际 ok=%v el=%+v", ok, el)
	}
	if _, ok := c.FirstOf(KindPNG); ok {
		t.Fatalf("不期望找到 PNG 元素")
	}
}
