package scene

// Style is the paint for one shape class. Widths and dashes are in output
// units. A zero Opacity means fully opaque.
type Style struct {
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	Opacity     float64   `json:"opacity,omitempty"`
	Bold        bool      `json:"bold,omitempty"`
	Mono        bool      `json:"mono,omitempty"`
}

// Palette colours for the drawing views.
const (
	ColorShelf        = "#d4a574"
	ColorShelfStroke  = "#8b6914"
	ColorPipe         = "#6b7b8a"
	ColorPipeStroke   = "#3d4a54"
	ColorBracket      = "#2d2d2d"
	ColorBracketEdge  = "#1a1a1a"
	ColorHole         = "#ffffff"
	ColorBackground   = "#ffffff"
	ColorHead         = "#4a4a4a"
	ColorHeadStroke   = "#2d2d2d"
	ColorSocket       = "#1a1a1a"
	ColorNut          = "#b8860b"
	ColorNutStroke    = "#8b6914"
	ColorNutDetail    = "#8b6508"
	ColorCenterLine   = "#ff0000"
	ColorConflict     = "#d32f2f"
	ColorCalibZero    = "#d32f2f"
	ColorCalibBlock   = "#bbbbbb"
	ColorTemplateText = "#333333"
)

// drawingStyles are shared by the top and front views.
func drawingStyles(shelfOpacity float64) map[string]Style {
	return map[string]Style{
		"pipe":       {Fill: ColorPipe, Stroke: ColorPipeStroke, StrokeWidth: 1},
		"centerline": {Stroke: ColorCenterLine, StrokeWidth: 1},
		"bracket":    {Fill: ColorBracket, Stroke: ColorBracketEdge, StrokeWidth: 1},
		"conflict":   {Fill: ColorBracket, Stroke: ColorConflict, StrokeWidth: 2},
		"hole":       {Fill: ColorHole},
		"head":       {Fill: ColorHead, Stroke: ColorHeadStroke, StrokeWidth: 1},
		"socket":     {Fill: ColorSocket},
		"nut":        {Fill: ColorNut, Stroke: ColorNutStroke, StrokeWidth: 1},
		"nut-detail": {Stroke: ColorNutDetail, StrokeWidth: 1},
		"highlight":  {Fill: "#ffffff", Opacity: 0.3},
		"shelf":      {Fill: ColorShelf, Stroke: ColorShelfStroke, StrokeWidth: 2, Opacity: shelfOpacity},
	}
}

func templateStyles() map[string]Style {
	return map[string]Style{
		"shelf-edge":     {Stroke: "#333333", StrokeWidth: 1.5, Dash: []float64{7, 4}},
		"bracket":        {Stroke: "#444444", StrokeWidth: 1},
		"drill-hole":     {Stroke: "#000000", StrokeWidth: 1.5},
		"crosshair":      {Stroke: "#000000", StrokeWidth: 0.75},
		"scale-box":      {Stroke: "#000000", StrokeWidth: 1.5},
		"dimension-line": {Stroke: "#666666", StrokeWidth: 0.75},
		"dimension-text": {Fill: ColorTemplateText},
		"label":          {Fill: ColorTemplateText, Bold: true},
		"info-text":      {Fill: "#555555"},
		"warning-text":   {Fill: ColorConflict, Bold: true},
		"corner-mark":    {Stroke: "#000000", StrokeWidth: 3},
	}
}

func calibrationStyles() map[string]Style {
	return map[string]Style{
		"title":        {Fill: ColorTemplateText, Bold: true},
		"subtitle":     {Fill: "#444444"},
		"block":        {Stroke: ColorCalibBlock, StrokeWidth: 1},
		"block-label":  {Fill: "#000000", Bold: true},
		"bracket":      {Stroke: "#222222", StrokeWidth: 1},
		"crosshair":    {Stroke: "#000000", StrokeWidth: 0.65},
		"crosshair-0":  {Stroke: ColorCalibZero, StrokeWidth: 1.2},
		"instruction":  {Fill: ColorTemplateText},
		"legend-label": {Fill: "#222222", Bold: true},
		"legend-text":  {Fill: ColorTemplateText, Mono: true},
		"notes-table":  {Stroke: "#000000", StrokeWidth: 1},
		"notes-text":   {Fill: ColorTemplateText},
		"scale-box":    {Stroke: "#000000", StrokeWidth: 1.5},
	}
}
