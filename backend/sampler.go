package backend

import (
	"errors"
	"log/slog"
)

// CurvePoint 曲线上的一个点
type CurvePoint struct {
	Strain float64 `json:"strain"`
	Stress float64 `json:"stress"`
}

// ReferencePoint 参考点（屈服点 / 极限强度点）
type ReferencePoint struct {
	Name   string  `json:"name"`
	Strain float64 `json:"strain"`
	Stress float64 `json:"stress"`
}

// CurveTable 有序的 应变 -> 应力 表，按插入顺序（应力递增）保存。
// 应变键重复时覆盖原值，位置保持第一次插入的位置。
type CurveTable struct {
	points []CurvePoint
	index  map[float64]int
}

func NewCurveTable() *CurveTable {
	return &CurveTable{index: make(map[float64]int)}
}

// Set inserts or overwrites the stress stored under strain.
func (t *CurveTable) Set(strain, stress float64) {
	if i, ok := t.index[strain]; ok {
		t.points[i].Stress = stress
		return
	}
	t.index[strain] = len(t.points)
	t.points = append(t.points, CurvePoint{Strain: strain, Stress: stress})
}

func (t *CurveTable) Len() int {
	return len(t.points)
}

// Points 返回副本，表本身只读
func (t *CurveTable) Points() []CurvePoint {
	out := make([]CurvePoint, len(t.points))
	copy(out, t.points)
	return out
}

// XY 拆成两个向量，供绘图使用
func (t *CurveTable) XY() (strain, stress []float64) {
	strain = make([]float64, len(t.points))
	stress = make([]float64, len(t.points))
	for i, p := range t.points {
		strain[i] = p.Strain
		stress[i] = p.Stress
	}
	return strain, stress
}

// CurveSampler 在 [0, σuts) 上等间距取 R 个应力值求应变
type CurveSampler struct {
	model      *HardeningModel
	resolution int
	logger     *slog.Logger
}

func NewCurveSampler(model *HardeningModel, resolution int) *CurveSampler {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &CurveSampler{
		model:      model,
		resolution: resolution,
		logger:     slog.Default(),
	}
}

// WithLogger sets the logger used for dropped-sample diagnostics.
func (s *CurveSampler) WithLogger(l *slog.Logger) *CurveSampler {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *CurveSampler) Resolution() int {
	return s.resolution
}

// Sample 生成曲线表。单点求值出现定义域错误时丢弃该点，继续采样；
// 其他错误直接返回。
func (s *CurveSampler) Sample() (*CurveTable, error) {
	uts := s.model.Properties().UltimateTensileStrength
	interval := uts / float64(s.resolution)
	table := NewCurveTable()

	// stress = i*interval，i = 0..R-1，即最后一个增量（到达 σuts）不取
	for i := 0; i < s.resolution; i++ {
		stress := float64(i) * interval

		strain, err := s.model.StrainAt(stress)
		if err != nil {
			var de *DomainError
			if !errors.As(err, &de) {
				return nil, err
			}
			s.logger.Debug("sample dropped", "stress", stress, "err", err)
			continue
		}

		table.Set(roundStrain(strain), roundStress(stress))
	}
	return table, nil
}
