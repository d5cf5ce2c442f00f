package backend

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	strainDecimals = 7
	stressDecimals = 3
)

func roundStrain(v float64) float64 { return scalar.RoundEven(v, strainDecimals) }
func roundStress(v float64) float64 { return scalar.RoundEven(v, stressDecimals) }

// PropertySet 解析结果：原始键值表以及被跳过的行
type PropertySet struct {
	Values  map[string]float64
	Skipped []*ParseError
}

// ParseProperties 解析 "Key = value" 格式的文本，一行一个属性。
// 无法解析的行（空行、注释等）跳过，记录在 Skipped 中。
func ParseProperties(r io.Reader) (PropertySet, error) {
	set := PropertySet{Values: make(map[string]float64)}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			if strings.TrimSpace(line) != "" {
				set.Skipped = append(set.Skipped, &ParseError{Line: lineNo, Text: line, Err: errors.New("missing '='")})
			}
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			set.Skipped = append(set.Skipped, &ParseError{Line: lineNo, Text: line, Err: errors.New("empty key")})
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			set.Skipped = append(set.Skipped, &ParseError{Line: lineNo, Text: line, Err: err})
			continue
		}
		set.Values[key] = v
	}
	if err := sc.Err(); err != nil {
		return PropertySet{}, err
	}
	return set, nil
}

// LoadProperties 读取属性文件并取出材料参数
func LoadProperties(path string) (MaterialProperties, PropertySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return MaterialProperties{}, PropertySet{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	set, err := ParseProperties(f)
	if err != nil {
		return MaterialProperties{}, PropertySet{}, &IOError{Op: "read", Path: path, Err: err}
	}

	props, err := PropertiesFromMap(set.Values)
	if err != nil {
		return MaterialProperties{}, set, err
	}
	return props, set, nil
}
