package backend

import (
	"errors"
	"fmt"
)

// 属性文件中的键名
const (
	KeyYieldStrength           = "Yield_Strength"
	KeyUltimateTensileStrength = "Ultimate_Tensile_Strength"
	KeyYoungsModulus           = "Youngs_Modulus"
	KeyMaxElongation           = "Max_Elongation"
)

// ProofStrainOffset 0.2% 残余应变，屈服点的塑性应变
const ProofStrainOffset = 0.002

// DefaultResolution 默认采样点数
const DefaultResolution = 100

// MaterialProperties 材料参数，创建后不再修改
type MaterialProperties struct {
	YieldStrength           float64 `json:"YieldStrength"`
	UltimateTensileStrength float64 `json:"UltimateTensileStrength"`
	YoungsModulus           float64 `json:"YoungsModulus"`
	MaxElongation           float64 `json:"MaxElongation"`
}

// NewDefaultMaterial 创建默认材料参数 (A36 结构钢, psi)
func NewDefaultMaterial() MaterialProperties {
	return MaterialProperties{
		YieldStrength:           36000,
		UltimateTensileStrength: 58000,
		YoungsModulus:           29000000,
		MaxElongation:           0.21,
	}
}

// PropertiesFromMap 从键值表中取出四个必需参数
func PropertiesFromMap(m map[string]float64) (MaterialProperties, error) {
	var p MaterialProperties
	var missing []string

	get := func(key string, dst *float64) {
		v, ok := m[key]
		if !ok {
			missing = append(missing, key)
			return
		}
		*dst = v
	}
	get(KeyYieldStrength, &p.YieldStrength)
	get(KeyUltimateTensileStrength, &p.UltimateTensileStrength)
	get(KeyYoungsModulus, &p.YoungsModulus)
	get(KeyMaxElongation, &p.MaxElongation)

	if len(missing) > 0 {
		return MaterialProperties{}, &ParseError{Err: fmt.Errorf("values in substance properties not found: %v", missing)}
	}
	return p, nil
}

// Validate checks the invariants the hardening exponent depends on. It does
// not replace the DomainError checks in the model; it gives a readable reason
// up front.
func (p MaterialProperties) Validate() error {
	var errs []error
	if p.YieldStrength <= 0 {
		errs = append(errs, fmt.Errorf("yield strength must be positive, got %g", p.YieldStrength))
	}
	if p.UltimateTensileStrength <= 0 {
		errs = append(errs, fmt.Errorf("ultimate tensile strength must be positive, got %g", p.UltimateTensileStrength))
	}
	if p.YoungsModulus <= 0 {
		errs = append(errs, fmt.Errorf("young's modulus must be positive, got %g", p.YoungsModulus))
	}
	if p.MaxElongation <= 0 {
		errs = append(errs, fmt.Errorf("max elongation must be positive, got %g", p.MaxElongation))
	}
	if p.UltimateTensileStrength <= p.YieldStrength {
		errs = append(errs, errors.New("ultimate strength must be greater than yield strength"))
	}
	if p.YoungsModulus > 0 && p.MaxElongation-p.UltimateTensileStrength/p.YoungsModulus <= 0 {
		errs = append(errs, errors.New("elastic modulus is too small compared to the strength"))
	}
	return errors.Join(errs...)
}
