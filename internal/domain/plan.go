package domain

// WritePlan 规划一次元素提取（只描述来源区间与目标路径；不做任何写入）。
type WritePlan struct {
	Element Element
	DstAbs  string
}

// ContainerPlan 是对单个容器文件的最小执行计划。
// Writes 与解析得到的元素一一对应（同下标），顺序即扫描顺序。
type ContainerPlan struct {
	File     ContainerFile
	Elements []Element
	Writes   []WritePlan
}
