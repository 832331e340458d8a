package domain

// ContainerFile 描述一次扫描得到的候选容器文件（只做 stat，不读内容）。
//
// 不变量（实现必须遵守）：
// - AbsPath 必须是 clean + absolute
// - 扫描阶段只做 stat；是否真的是 LIVE_CVR 容器要到解析阶段才知道
type ContainerFile struct {
	AbsPath string
	RelPath string
	Base    string // filename without ext
	Ext     string // ".jpg"
	Size    int64
	ModUnix int64
}
