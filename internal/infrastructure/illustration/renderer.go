// Package illustration 根据文本主题绘制简单的童书风格图标（不含文字）
package illustration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lecture-tranquille-api/internal/config"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/metrics"
)

var tracer = otel.Tracer("illustration")

// 原始画布尺寸，主题坐标基于此
const (
	baseWidth  = 400
	baseHeight = 300
)

// ShapeKind 图形类型
type ShapeKind int

const (
	ShapeEllipse ShapeKind = iota
	ShapeRectangle
	ShapePolygon
)

// Point 多边形顶点
type Point struct {
	X, Y float64
}

// Shape 单个填充图形；椭圆和矩形使用外接框 {x0, y0, x1, y1}
type Shape struct {
	Kind   ShapeKind
	Color  string
	Box    [4]float64
	Points []Point
}

// Theme 主题：背景色加若干图形
type Theme struct {
	Name       string
	Background string
	Shapes     []Shape
}

// 标题别名，主题名未命中时使用
var titleAliases = []struct {
	words []string
	theme string
}{
	{[]string{"chat", "minou", "caramel"}, "chat"},
	{[]string{"chien", "filou"}, "chien"},
	{[]string{"école", "rentrée"}, "ecole"},
	{[]string{"bibliothèque"}, "biblio"},
	{[]string{"correspondant"}, "lettre"},
}

// ThemeByName 按名称查找主题
func ThemeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func defaultTheme() Theme {
	return themes[len(themes)-1]
}

// ResolveTheme 依次按文件名、标题、标题别名匹配主题
func ResolveTheme(fileName, title string) Theme {
	fileName = strings.ToLower(filepath.Base(fileName))
	title = strings.ToLower(title)

	for _, haystack := range []string{fileName, title} {
		if haystack == "" || haystack == "." {
			continue
		}
		for _, t := range themes {
			if strings.Contains(haystack, t.Name) {
				return t
			}
		}
	}
	for _, alias := range titleAliases {
		for _, w := range alias.words {
			if strings.Contains(title, w) {
				t, _ := ThemeByName(alias.theme)
				return t
			}
		}
	}
	return defaultTheme()
}

// Renderer 插图渲染器，PNG 缓存在磁盘目录中
type Renderer struct {
	dir    string
	width  int
	height int
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.IllustrationConfig) *Renderer {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = baseWidth, baseHeight
	}
	return &Renderer{dir: cfg.Dir, width: w, height: h}
}

// Draw 按渲染器尺寸绘制主题并编码为 PNG
func (r *Renderer) Draw(w io.Writer, theme Theme) error {
	dc := gg.NewContext(r.width, r.height)
	dc.Scale(float64(r.width)/baseWidth, float64(r.height)/baseHeight)

	dc.SetHexColor(theme.Background)
	dc.DrawRectangle(0, 0, baseWidth, baseHeight)
	dc.Fill()

	for _, s := range theme.Shapes {
		dc.SetHexColor(s.Color)
		switch s.Kind {
		case ShapeEllipse:
			x0, y0, x1, y1 := s.Box[0], s.Box[1], s.Box[2], s.Box[3]
			dc.DrawEllipse((x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2)
		case ShapeRectangle:
			x0, y0, x1, y1 := s.Box[0], s.Box[1], s.Box[2], s.Box[3]
			dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		case ShapePolygon:
			for i, p := range s.Points {
				if i == 0 {
					dc.MoveTo(p.X, p.Y)
				} else {
					dc.LineTo(p.X, p.Y)
				}
			}
			dc.ClosePath()
		}
		dc.Fill()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// FileName 文本对应的插图文件名
func FileName(text *entity.Text) string {
	if ref := filepath.Base(text.IllustrationRef); text.IllustrationRef != "" && ref != "." && ref != "/" {
		return ref
	}
	return fmt.Sprintf("text_%d.png", text.ID)
}

// Ensure 返回文本插图路径，文件不存在时先生成
func (r *Renderer) Ensure(ctx context.Context, text *entity.Text) (string, error) {
	name := FileName(text)
	path := filepath.Join(r.dir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	theme := ResolveTheme(name, text.Title)
	_, span := tracer.Start(ctx, "illustration.Render",
		trace.WithAttributes(
			attribute.Int64("text.id", text.ID),
			attribute.String("illustration.theme", theme.Name),
		))
	defer span.End()

	if err := r.writeAtomic(path, theme); err != nil {
		span.RecordError(err)
		return "", err
	}

	metrics.IllustrationsRendered.WithLabelValues(theme.Name).Inc()
	logger.Debug(ctx, "illustration rendered", "text_id", text.ID, "theme", theme.Name, "path", path)
	return path, nil
}

// writeAtomic 先写临时文件再改名，并发请求看到的要么是完整文件要么没有文件
func (r *Renderer) writeAtomic(path string, theme Theme) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create illustration dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".illustration-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := r.Draw(tmp, theme); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move illustration: %w", err)
	}
	return nil
}
