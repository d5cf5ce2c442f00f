package backend

import (
	"math"
)

// HardeningModel Hollomon / N-Hill 型硬化模型
//
//	ε = σ/E + 0.002·(σ/σys)^n
//
// n 在构造时由屈服点和极限强度点求出，之后不再改变。
type HardeningModel struct {
	props MaterialProperties
	n     float64
}

// NewHardeningModel 计算硬化指数 n；失败时模型不可用
func NewHardeningModel(props MaterialProperties) (*HardeningModel, error) {
	m := &HardeningModel{props: props}
	n, err := m.ComputeExponent()
	if err != nil {
		return nil, err
	}
	m.n = n
	return m, nil
}

// Properties returns the material the model was built from.
func (m *HardeningModel) Properties() MaterialProperties {
	return m.props
}

// Exponent returns the cached hardening exponent n.
func (m *HardeningModel) Exponent() float64 {
	return m.n
}

// ComputeExponent 求硬化指数
//
//	n = ln((εmax − σuts/E) / 0.002) / ln(σuts / σys)
func (m *HardeningModel) ComputeExponent() (float64, error) {
	p := m.props

	if !(p.YieldStrength > 0) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: p.YieldStrength, Msg: "yield strength must be positive"}
	}
	if !(p.YoungsModulus > 0) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: p.YoungsModulus, Msg: "young's modulus must be positive"}
	}
	if !(p.UltimateTensileStrength > p.YieldStrength) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: p.UltimateTensileStrength, Msg: "ultimate strength must be greater than yield strength"}
	}

	inner := (p.MaxElongation - p.UltimateTensileStrength/p.YoungsModulus) / ProofStrainOffset
	if !(inner > 0) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: inner, Msg: "elastic modulus is too small compared to the strength"}
	}

	ratio := p.UltimateTensileStrength / p.YieldStrength
	if !(ratio > 0) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: ratio, Msg: "ultimate strength must be greater than yield strength"}
	}

	den := math.Log(ratio)
	if den <= 0 {
		// σuts ≤ σys：指数为负或无穷，曲线无法经过两个端点
		return 0, &DomainError{Op: "ComputeExponent", Arg: ratio, Msg: "ultimate strength must be greater than yield strength"}
	}

	n := math.Log(inner) / den
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &DomainError{Op: "ComputeExponent", Arg: n, Msg: "hardening exponent is not finite"}
	}
	return n, nil
}

// StrainAt 给定应力求总应变（弹性 + 塑性）
func (m *HardeningModel) StrainAt(stress float64) (float64, error) {
	p := m.props

	base := stress / p.YieldStrength
	if base < 0 || math.IsNaN(base) {
		return 0, &DomainError{Op: "StrainAt", Arg: base, Msg: "fractional power of a negative base"}
	}

	strain := stress/p.YoungsModulus + ProofStrainOffset*math.Pow(base, m.n)
	if math.IsNaN(strain) || math.IsInf(strain, 0) {
		return 0, &DomainError{Op: "StrainAt", Arg: stress, Msg: "strain is not finite"}
	}
	return strain, nil
}

// StrainAtYield 屈服点应变（解析值，与 n 无关）
func (m *HardeningModel) StrainAtYield() float64 {
	return m.props.YieldStrength/m.props.YoungsModulus + ProofStrainOffset
}

// StrainAtUltimate 极限强度点应变（解析值，与 n 无关）
func (m *HardeningModel) StrainAtUltimate() float64 {
	return m.props.UltimateTensileStrength/m.props.YoungsModulus + m.props.MaxElongation
}
