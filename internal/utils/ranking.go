package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity       float64 // 时间重力
	WeightLike    float64
	WeightComment float64
	WeightShare   float64
	ScaleFactor   float64 // 放大系数
}

var DefaultConfig = RankConfig{
	Gravity:       1.5,
	WeightLike:    1.0,
	WeightComment: 2.0,
	WeightShare:   3.0,
	ScaleFactor:   100.0, // 让分数落在 0-100 区间，像"温度"
}

// CalculateHotScore 计算帖子热度分
// 加权互动量取对数平滑后按发布时间衰减，View 数量级太大不参与加权
func CalculateHotScore(t time.Time, likes, comments, shares int) float64 {
	hours := time.Since(t).Hours()

	weightedSum := (float64(likes) * DefaultConfig.WeightLike) +
		(float64(comments) * DefaultConfig.WeightComment) +
		(float64(shares) * DefaultConfig.WeightShare)

	if weightedSum < 0 {
		weightedSum = 0 // 防止负数无法取对数
	}

	// log10(sum + 1) -> 确保 sum=0 时结果为 0
	logScore := math.Log10(weightedSum + 1)

	numerator := logScore * DefaultConfig.ScaleFactor

	// 时间衰减
	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return numerator / decay
}
