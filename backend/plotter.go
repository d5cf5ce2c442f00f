package backend

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"
)

// PersistedTable 从导出文件读回的数据
type PersistedTable struct {
	Table         *CurveTable
	Yield         ReferencePoint
	Ultimate      ReferencePoint
	YoungsModulus float64
}

// ReadTable 读取 TableExporter 写出的 .xlsx / .csv 文件
func ReadTable(path string) (PersistedTable, error) {
	var rows [][]string
	var err error

	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return PersistedTable{}, err
	}
	return parseTableRows(rows)
}

func readCSVRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return rows, nil
}

func parseTableRows(rows [][]string) (PersistedTable, error) {
	if len(rows) < 2 {
		return PersistedTable{}, fmt.Errorf("table has %d rows, want header and reference rows", len(rows))
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		if h = strings.TrimSpace(h); h != "" {
			col[h] = i
		}
	}
	for _, h := range []string{ColStrain, ColStress, ColYieldStrain, ColYieldStress, ColUltimateStrain, ColUltimateStress, ColYoungsModulus} {
		if _, ok := col[h]; !ok {
			return PersistedTable{}, fmt.Errorf("table header is missing column %q", h)
		}
	}

	ref := rows[1]
	cell := func(row []string, name string) (float64, error) {
		i := col[name]
		if i >= len(row) || strings.TrimSpace(row[i]) == "" {
			return 0, fmt.Errorf("column %q is empty", name)
		}
		return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	}

	t := PersistedTable{Table: NewCurveTable()}
	var err error
	t.Yield.Name, t.Ultimate.Name = "yield", "ultimate"
	if t.Yield.Strain, err = cell(ref, ColYieldStrain); err != nil {
		return PersistedTable{}, err
	}
	if t.Yield.Stress, err = cell(ref, ColYieldStress); err != nil {
		return PersistedTable{}, err
	}
	if t.Ultimate.Strain, err = cell(ref, ColUltimateStrain); err != nil {
		return PersistedTable{}, err
	}
	if t.Ultimate.Stress, err = cell(ref, ColUltimateStress); err != nil {
		return PersistedTable{}, err
	}
	if t.YoungsModulus, err = cell(ref, ColYoungsModulus); err != nil {
		return PersistedTable{}, err
	}

	for _, row := range rows[2:] {
		strain, err1 := cell(row, ColStrain)
		stress, err2 := cell(row, ColStress)
		if err1 != nil || err2 != nil {
			continue
		}
		t.Table.Set(strain, stress)
	}
	return t, nil
}

// CurvePlotter 根据导出的表格绘制应力-应变曲线
type CurvePlotter struct {
	Substance string
	Width     int
	Height    int

	logger *slog.Logger
}

func NewCurvePlotter(substance string) *CurvePlotter {
	return &CurvePlotter{
		Substance: substance,
		Width:     1200,
		Height:    800,
		logger:    slog.Default(),
	}
}

func (cp *CurvePlotter) WithLogger(l *slog.Logger) *CurvePlotter {
	if l != nil {
		cp.logger = l
	}
	return cp
}

// Title 图标题
func (cp *CurvePlotter) Title() string {
	return fmt.Sprintf("Stress Strain Curve of %s in tension", cp.Substance)
}

// MarkerDescriptors 两个参考点的说明文字
func MarkerDescriptors(t PersistedTable) []string {
	return []string{
		fmt.Sprintf("(red) Yield Strength: %g   Yield Strain: %.7f", t.Yield.Stress, t.Yield.Strain),
		fmt.Sprintf("(green) Ultimate Strength: %g   Ultimate Strain: %.7f", t.Ultimate.Stress, t.Ultimate.Strain),
	}
}

func (cp *CurvePlotter) chart(t PersistedTable) chart.Chart {
	xs, ys := t.Table.XY()

	marker := func(name string, p ReferencePoint, color drawing.Color) chart.ContinuousSeries {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{p.Strain},
			YValues: []float64{p.Stress},
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    8,
				DotColor:    color,
			},
		}
	}

	labels := MarkerDescriptors(t)
	grid := chart.Style{StrokeColor: drawing.ColorFromHex("d0d0d0"), StrokeWidth: 1}

	graph := chart.Chart{
		Title:  cp.Title(),
		Width:  cp.Width,
		Height: cp.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "strain",
			GridMajorStyle: grid,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 3, 64)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:           "stress (psi)",
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    cp.Substance,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
			marker("Yield (red)", t.Yield, chart.ColorRed),
			marker("Ultimate (green)", t.Ultimate, chart.ColorGreen),
			chart.AnnotationSeries{
				Annotations: []chart.Value2{
					{XValue: t.Yield.Strain, YValue: t.Yield.Stress, Label: labels[0]},
					{XValue: t.Ultimate.Strain, YValue: t.Ultimate.Stress, Label: labels[1]},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return graph
}

// Render 把图写成 PNG
func (cp *CurvePlotter) Render(t PersistedTable, w io.Writer) error {
	if t.Table == nil || t.Table.Len() == 0 {
		return ErrNoResult
	}
	cp.logger.Debug("plotting table", "substance", cp.Substance, "points", t.Table.Len(),
		"yield", t.Yield, "ultimate", t.Ultimate)

	graph := cp.chart(t)
	return graph.Render(chart.PNG, w)
}

// RenderFile 读取表格并保存 PNG
func (cp *CurvePlotter) RenderFile(tablePath, pngPath string) error {
	t, err := ReadTable(tablePath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := cp.Render(t, &buf); err != nil {
		return err
	}

	if dir := filepath.Dir(pngPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(pngPath, buf.Bytes(), 0644); err != nil {
		return &IOError{Op: "write", Path: pngPath, Err: err}
	}
	cp.logger.Info("chart saved", "path", pngPath)
	return nil
}
