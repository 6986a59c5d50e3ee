package model

// Metric 区分同步任务折算的计数种类
type Metric string

const (
	MetricView Metric = "view"
	MetricLike Metric = "like"
)
