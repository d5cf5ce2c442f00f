package backend

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// 表头（空字符串为空列）
const (
	ColStrain         = "Strain"
	ColStress         = "Stress"
	ColYieldStrain    = "Strain Yield Strength"
	ColYieldStress    = "Stress Yield Strength"
	ColUltimateStrain = "Strain Ultimate Strength"
	ColUltimateStress = "Stress Ultimate Strength"
	ColYoungsModulus  = "Young's Modulus"
)

// SheetName 导出工作表名称
const SheetName = "StressStrain"

var tableHeader = []string{
	ColStrain, ColStress, "",
	ColYieldStrain, ColYieldStress, "",
	ColUltimateStrain, ColUltimateStress, "",
	ColYoungsModulus,
}

// TableHeader returns a copy of the persisted table's header row.
func TableHeader() []string {
	return append([]string(nil), tableHeader...)
}

// ErrNoResult 没有可导出的计算结果
var ErrNoResult = errors.New("no calculation result to export")

// TableExporter 把曲线表和两个参考点写成表格文件
type TableExporter struct{}

func NewTableExporter() *TableExporter {
	return &TableExporter{}
}

// Export 按后缀选择格式：.csv 写 CSV，其余写 Excel
func (e *TableExporter) Export(path string, res CalculationResult) error {
	if res.Table == nil || res.Table.Len() == 0 {
		return ErrNoResult
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return e.saveAsCSV(path, res)
	}
	return e.saveAsExcel(path, res)
}

// referenceRow 第二行：屈服点、极限强度点、弹性模量
func referenceRow(res CalculationResult) []interface{} {
	return []interface{}{
		nil, nil, nil,
		res.Yield.Strain, res.Yield.Stress,
		nil,
		res.Ultimate.Strain, res.Ultimate.Stress,
		nil,
		res.YoungsModulus,
	}
}

func (e *TableExporter) saveAsCSV(path string, res CalculationResult) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if err := writeCSV(file, res); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func writeCSV(w io.Writer, res CalculationResult) error {
	// UTF-8 BOM，Excel 打开 CSV 时不乱码
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}

	records := [][]string{tableHeader, formatRow(referenceRow(res))}
	for _, p := range res.Table.Points() {
		records = append(records, []string{formatFloat(p.Strain), formatFloat(p.Stress)})
	}
	return csv.NewWriter(w).WriteAll(records)
}

func (e *TableExporter) saveAsExcel(path string, res CalculationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := fillWorkbook(f, res); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func fillWorkbook(f *excelize.File, res CalculationResult) error {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		if h != "" {
			header[i] = h
		}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	if err := sw.SetRow("A2", referenceRow(res)); err != nil {
		return err
	}

	for i, p := range res.Table.Points() {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := sw.SetRow(cell, []interface{}{p.Strain, p.Stress}); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func formatRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if f, ok := v.(float64); ok {
			out[i] = formatFloat(f)
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
