package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/yungbote/automate-backend/internal/data/repos"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

const (
	ChartStatus   = "status"
	ChartServices = "services"

	chartWidth  = 640
	chartHeight = 400
	chartMargin = 48.0
)

var chartPalette = []color.RGBA{
	{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff},
}

// ChartService renders the admin dashboard charts as PNG.
type ChartService interface {
	Render(ctx context.Context, kind string) ([]byte, error)
}

type chartService struct {
	log      *logger.Logger
	bookings BookingService
	fontFace font.Face
}

// NewChartService loads a TrueType face from fontPath, falling back to the
// built-in bitmap face when the path is empty or unreadable.
func NewChartService(log *logger.Logger, bookings BookingService, fontPath string) ChartService {
	serviceLog := log.With("service", "ChartService")
	var face font.Face = basicfont.Face7x13
	if p := strings.TrimSpace(fontPath); p != "" {
		loaded, err := loadFontFace(p, 13)
		if err != nil {
			serviceLog.Warn("Chart font unavailable; using built-in face", "font", p, "error", err)
		} else {
			face = loaded
		}
	}
	return &chartService{log: serviceLog, bookings: bookings, fontFace: face}
}

func (cs *chartService) Render(ctx context.Context, kind string) ([]byte, error) {
	stats, err := cs.bookings.Stats(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ChartStatus:
		return cs.barChart("Bookings by status", stats.ByStatus)
	case ChartServices:
		return cs.barChart("Most requested services", stats.ByService)
	default:
		return nil, badRequest("unknown_chart", fmt.Sprintf("unknown chart %q", kind))
	}
}

func (cs *chartService) barChart(title string, rows []repos.CountByKey) ([]byte, error) {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(cs.fontFace)

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(title, chartWidth/2, chartMargin/2, 0.5, 0.5)

	plotTop := chartMargin
	plotBottom := float64(chartHeight) - chartMargin
	plotLeft := chartMargin
	plotRight := float64(chartWidth) - chartMargin
	dc.SetLineWidth(1)
	dc.DrawLine(plotLeft, plotBottom, plotRight, plotBottom)
	dc.Stroke()

	if len(rows) == 0 {
		dc.DrawStringAnchored("No bookings yet", chartWidth/2, chartHeight/2, 0.5, 0.5)
		return encodePNG(dc)
	}

	var peak int64
	for _, r := range rows {
		if r.Count > peak {
			peak = r.Count
		}
	}
	slot := (plotRight - plotLeft) / float64(len(rows))
	barWidth := slot * 0.6
	for i, r := range rows {
		h := (plotBottom - plotTop - 16) * float64(r.Count) / float64(peak)
		x := plotLeft + float64(i)*slot + (slot-barWidth)/2
		y := plotBottom - h

		dc.SetColor(chartPalette[i%len(chartPalette)])
		dc.DrawRectangle(x, y, barWidth, h)
		dc.Fill()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(strconv.FormatInt(r.Count, 10), x+barWidth/2, y-8, 0.5, 0.5)
		dc.DrawStringAnchored(r.Key, x+barWidth/2, plotBottom+14, 0.5, 0.5)
	}
	return encodePNG(dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
