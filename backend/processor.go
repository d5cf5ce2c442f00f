package backend

import (
	"fmt"
	"log/slog"
)

// CurveProcessor 一次独立的计算：材料参数 -> 硬化模型 -> 曲线表 -> 参考点。
// 批量处理多种材料时每种材料使用自己的 CurveProcessor。
type CurveProcessor struct {
	// 材料
	Substance string
	Material  MaterialProperties

	// 采样点数
	Resolution int

	// 计算结果
	Model  *HardeningModel
	Result CalculationResult

	logger *slog.Logger
}

// CalculationResult 计算结果
type CalculationResult struct {
	Substance     string             `json:"substance"`
	Material      MaterialProperties `json:"material"`
	Exponent      float64            `json:"exponent"`
	Table         *CurveTable        `json:"-"`
	Yield         ReferencePoint     `json:"yield"`
	Ultimate      ReferencePoint     `json:"ultimate"`
	YoungsModulus float64            `json:"youngs_modulus"`
}

func NewCurveProcessor(substance string, material MaterialProperties) *CurveProcessor {
	return &CurveProcessor{
		Substance:  substance,
		Material:   material,
		Resolution: DefaultResolution,
		logger:     slog.Default(),
	}
}

func (cp *CurveProcessor) WithLogger(l *slog.Logger) *CurveProcessor {
	if l != nil {
		cp.logger = l
	}
	return cp
}

// Calculate 求硬化指数、采样曲线、计算两个参考点。
// 硬化指数无法求出或材料参数不合法时整个计算失败，不返回任何曲线。
func (cp *CurveProcessor) Calculate() (CalculationResult, error) {
	model, err := NewHardeningModel(cp.Material)
	if err != nil {
		return CalculationResult{}, fmt.Errorf("hardening exponent for %q: %w", cp.Substance, err)
	}
	if err := cp.Material.Validate(); err != nil {
		return CalculationResult{}, fmt.Errorf("material properties for %q: %w", cp.Substance, err)
	}
	cp.Model = model
	cp.logger.Info("hardening exponent computed", "substance", cp.Substance, "n", model.Exponent())

	table, err := NewCurveSampler(model, cp.Resolution).WithLogger(cp.logger).Sample()
	if err != nil {
		return CalculationResult{}, fmt.Errorf("sample curve for %q: %w", cp.Substance, err)
	}
	cp.logger.Info("curve sampled", "substance", cp.Substance, "points", table.Len())

	yield, err := cp.referencePoint("yield", cp.Material.YieldStrength)
	if err != nil {
		return CalculationResult{}, err
	}
	ultimate, err := cp.referencePoint("ultimate", cp.Material.UltimateTensileStrength)
	if err != nil {
		return CalculationResult{}, err
	}

	cp.Result = CalculationResult{
		Substance:     cp.Substance,
		Material:      cp.Material,
		Exponent:      model.Exponent(),
		Table:         table,
		Yield:         yield,
		Ultimate:      ultimate,
		YoungsModulus: cp.Material.YoungsModulus,
	}
	return cp.Result, nil
}

// referencePoint 直接用应变公式计算，与采样表无关
func (cp *CurveProcessor) referencePoint(name string, stress float64) (ReferencePoint, error) {
	strain, err := cp.Model.StrainAt(stress)
	if err != nil {
		return ReferencePoint{}, fmt.Errorf("%s reference point: %w", name, err)
	}
	return ReferencePoint{Name: name, Strain: strain, Stress: stress}, nil
}
