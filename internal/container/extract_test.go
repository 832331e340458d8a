package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/livecvr/internal/domain"
)

func TestExtractAll_NamingPattern(t *testing.T) {
	path := writeContainer(t, jpegBytes, sepBytes, mp4Bytes)
	c, err := Parse(path)
	require.NoError(t, err)

	dir := t.TempDir()
	base := filepath.Join(dir, "b.jpg")
	require.NoError(t, ExtractAll(c, base))

	// 编号从 01 起、两位零填充、Kind 原样作扩展名。
	j, err := os.ReadFile(filepath.Join(dir, "b-01.Jpg"))
	require.NoError(t, err, "期望产出 b-01.Jpg")
	require.Equal(t, jpegBytes, j)

	m, err := os.ReadFile(filepath.Join(dir, "b-02.Mp4"))
	require.NoError(t, err, "期望产出 b-02.Mp4")
	require.Equal(t, mp4Bytes, m)
}

func TestExtractAll_BlankBaseDefaultsToContainerPath(t *testing.T) {
	path := writeContainer(t, jpegBytes, sepBytes, mp4Bytes)
	c, err := Parse(path)
	require.NoError(t, err)

	require.NoError(t, ExtractAll(c, "  "))

	dir := filepath.Dir(path)
	_, err = os.Stat(filepath.Join(dir, "photo-01.Jpg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "photo-02.Mp4"))
	require.NoError(t, err)
}

func TestExtractFirst_AbsentKind_NoFileWritten(t *testing.T) {
	path := writeContainer(t, jpegBytes, sepBytes, mp4Bytes)
	c, err := Parse(path)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "still.Png")
	err = ExtractFirst(c, domain.KindPNG, dst)
	require.True(t, domain.IsElementNotFound(err), "期望 ElementNotFoundError，实际 %v", err)

	_, statErr := os.Stat(dst)
	require.True(t, os.IsNotExist(statErr), "失败时不应创建目标文件")
}

func TestExtractFirstJPEGAndMP4(t *testing.T) {
	path := writeContainer(t, jpegBytes, sepBytes, mp4Bytes)
	c, err := Parse(path)
	require.NoError(t, err)

	dir := t.TempDir()
	still := filepath.Join(dir, "still.Jpg")
	video := filepath.Join(dir, "video.Mp4")

	require.NoError(t, ExtractFirstJPEG(c, still))
	require.NoError(t, ExtractFirstMP4(c, video))

	sb, _ := os.ReadFile(still)
	vb, _ := os.ReadFile(video)
	require.Equal(t, jpegBytes, sb, "提取必须按字节精确")
	require.Equal(t, mp4Bytes, vb)
}

func TestExtractFirst_SourceDisappeared(t *testing.T) {
	path := writeContainer(t, jpegBytes, sepBytes, mp4Bytes)
	c, err := Parse(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	err = ExtractFirstMP4(c, filepath.Join(t.TempDir(), "video.Mp4"))
	require.True(t, domain.IsSourceMissing(err), "期望 SourceMissingError，实际 %v", err)
}
