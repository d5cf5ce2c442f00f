package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nut245/Theoretical-Analysis-of-Forces-on-Materials/backend"
	"github.com/nut245/Theoretical-Analysis-of-Forces-on-Materials/logging"
)

// App struct
type App struct {
	ctx        context.Context
	out        io.Writer
	logger     *slog.Logger
	configPath string
	config     ConfigData
}

// 配置文件结构
type ConfigData struct {
	Resolution  int    `json:"resolution"`
	TablePath   string `json:"tablePath"`
	ChartPath   string `json:"chartPath"`
	ChartWidth  int    `json:"chartWidth"`
	ChartHeight int    `json:"chartHeight"`
	LogLevel    string `json:"logLevel"`
	LogFormat   string `json:"logFormat"`
}

// NewDefaultConfig 默认配置
func NewDefaultConfig() ConfigData {
	return ConfigData{
		Resolution:  backend.DefaultResolution,
		TablePath:   "SubstanceStressStrainCurve.xlsx",
		ChartPath:   "stress-strain_curve.png",
		ChartWidth:  1200,
		ChartHeight: 800,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// NewApp creates a new App application struct
func NewApp(out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		ctx:    context.Background(),
		out:    out,
		logger: logging.New("app"),
		config: NewDefaultConfig(),
	}
}

// startup is called before any command runs. The context is saved
// so batch runs can stop between files.
func (a *App) startup(ctx context.Context) error {
	if ctx != nil {
		a.ctx = ctx
	}
	cfg, err := a.LoadConfig()
	if err != nil {
		return err
	}
	a.config = cfg
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	a.logger = logging.New("app")
	return nil
}

func (a *App) GetConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// 获取失败时使用当前目录
		return "config.json"
	}
	configDir := filepath.Join(homeDir, "StressStrain")

	_ = os.MkdirAll(configDir, 0755)
	return filepath.Join(configDir, "config.json")
}

// LoadConfig 读取并解析配置；文件不存在时返回默认配置
func (a *App) LoadConfig() (ConfigData, error) {
	data, err := os.ReadFile(a.GetConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return ConfigData{}, &backend.IOError{Op: "read", Path: a.GetConfigPath(), Err: err}
	}

	cfg := NewDefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ConfigData{}, fmt.Errorf("parse config %s: %w", a.GetConfigPath(), err)
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = backend.DefaultResolution
	}
	return cfg, nil
}

func (a *App) SaveConfig(cfg ConfigData) error {
	finalData, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(a.GetConfigPath(), finalData, 0644); err != nil {
		return &backend.IOError{Op: "write", Path: a.GetConfigPath(), Err: err}
	}
	a.config = cfg
	return nil
}

// RunReport 单个材料的计算结果摘要
type RunReport struct {
	Source    string
	Substance string
	TablePath string
	Points    int
	Exponent  float64
	Err       error
}

// Generate 对每个属性文件独立计算并导出表格。
// 单个材料失败（参数无效、文件无法读取或写入）记录在报告中，其余材料继续处理。
func (a *App) Generate(paths []string, substance string) ([]RunReport, error) {
	if len(paths) == 0 {
		return nil, errors.New("no property files given")
	}

	if substance != "" && len(paths) > 1 {
		a.logger.Warn("substance name ignored for batch runs, using file names", "name", substance, "files", len(paths))
		fmt.Fprintf(a.out, "--name %q ignored for %d property files; substances are named after their files\n", substance, len(paths))
	}

	reports := make([]RunReport, 0, len(paths))
	for _, path := range paths {
		if err := a.ctx.Err(); err != nil {
			return reports, err
		}

		name := substance
		if name == "" || len(paths) > 1 {
			name = substanceFromPath(path)
		}
		rep := RunReport{Source: path, Substance: name}

		res, err := a.calculate(path, name)
		if err != nil {
			a.logger.Error("calculation failed", "path", path, "err", err)
			rep.Err = err
			reports = append(reports, rep)
			continue
		}
		rep.Points = res.Table.Len()
		rep.Exponent = res.Exponent

		rep.TablePath = a.tablePathFor(name, len(paths))
		if err := a.ExportData(rep.TablePath, res); err != nil {
			rep.Err = err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (a *App) calculate(path, name string) (backend.CalculationResult, error) {
	props, set, err := backend.LoadProperties(path)
	for _, skipped := range set.Skipped {
		a.logger.Debug("line skipped", "path", path, "err", skipped)
	}
	if err != nil {
		return backend.CalculationResult{}, err
	}

	cp := backend.NewCurveProcessor(name, props).WithLogger(logging.New("processor"))
	cp.Resolution = a.config.Resolution
	return cp.Calculate()
}

// ExportData 写出表格；文件被占用等写入错误只报告，不中断
func (a *App) ExportData(path string, res backend.CalculationResult) error {
	err := backend.NewTableExporter().Export(path, res)
	if err != nil {
		var ioErr *backend.IOError
		if errors.As(err, &ioErr) {
			fmt.Fprintf(a.out, "unable to save %s, file still open?\n", path)
		}
		a.logger.Error("export failed", "path", path, "err", err)
		return err
	}
	fmt.Fprintf(a.out, "%s: table created successfully (%s)\n", res.Substance, path)
	return nil
}

// Plot 读取表格并绘图
func (a *App) Plot(tablePath, chartPath, substance string) error {
	plotter := backend.NewCurvePlotter(substance).WithLogger(logging.New("plotter"))
	plotter.Width = a.config.ChartWidth
	plotter.Height = a.config.ChartHeight

	if err := plotter.RenderFile(tablePath, chartPath); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "chart saved to %s\n", chartPath)
	return nil
}

// Show 在终端打印导出的表格
func (a *App) Show(tablePath string) error {
	t, err := backend.ReadTable(tablePath)
	if err != nil {
		return err
	}

	ref := table.NewWriter()
	ref.SetOutputMirror(a.out)
	ref.AppendHeader(table.Row{"Point", "Strain", "Stress"})
	ref.AppendRow(table.Row{"Yield", t.Yield.Strain, t.Yield.Stress})
	ref.AppendRow(table.Row{"Ultimate", t.Ultimate.Strain, t.Ultimate.Stress})
	ref.AppendFooter(table.Row{"Young's Modulus", "", t.YoungsModulus})
	ref.Render()

	curve := table.NewWriter()
	curve.SetOutputMirror(a.out)
	curve.AppendHeader(table.Row{"#", backend.ColStrain, backend.ColStress})
	for i, p := range t.Table.Points() {
		curve.AppendRow(table.Row{i + 1, p.Strain, p.Stress})
	}
	curve.Render()
	return nil
}

func (a *App) tablePathFor(name string, runs int) string {
	path := a.config.TablePath
	if runs <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + name + ext
}

func substanceFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
