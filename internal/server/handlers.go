package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/wordsearch-mcp/internal/artifacts"
	"github.com/ironsheep/wordsearch-mcp/internal/detection"
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
	"github.com/ironsheep/wordsearch-mcp/internal/solver"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "puzzle_extract").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Pipeline failures carry the failing stage and error kind in data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var se *detection.StageError
		if errors.As(err, &se) {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", se.ToMap())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "puzzle_load":
		return s.handlePuzzleLoad(args)
	case "puzzle_binarize":
		return s.handlePuzzleBinarize(args)
	case "puzzle_deskew":
		return s.handlePuzzleDeskew(args)
	case "puzzle_locate_grid":
		return s.handlePuzzleLocateGrid(args)
	case "puzzle_extract":
		return s.handlePuzzleExtract(args)
	case "puzzle_solve":
		return s.handlePuzzleSolve(args)
	case "puzzle_annotate":
		return s.handlePuzzleAnnotate(args)
	case "puzzle_crop_cell":
		return s.handlePuzzleCropCell(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func parseArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func requirePath(p string) error {
	if p == "" {
		return errors.New("path is required")
	}
	return nil
}

// === Stage Handlers ===

func (s *Server) handlePuzzleLoad(args json.RawMessage) (interface{}, error) {
	var p pathArgs
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	if _, err := s.extractor.Load(p.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.extractor.Cache, p.Path)
}

func (s *Server) handlePuzzleBinarize(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path         string `json:"path"`
		Denoise      string `json:"denoise"`
		IncludeImage bool   `json:"include_image"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	img, err := s.extractor.Load(p.Path)
	if err != nil {
		return nil, err
	}

	opts := s.cfg.Extraction.Binarize
	switch mode := imaging.DenoiseMode(p.Denoise); mode {
	case "":
	case imaging.DenoiseOff, imaging.DenoiseAuto, imaging.DenoiseAlways:
		opts.Denoise = mode
	default:
		return nil, fmt.Errorf("unknown denoise mode %q", p.Denoise)
	}
	bin := imaging.Binarize(img, opts)

	result := map[string]interface{}{
		"threshold":     bin.Threshold,
		"noise":         bin.Noise,
		"median_passes": bin.MedianPasses,
		"width":         bin.Width,
		"height":        bin.Height,
		"ink_pixels":    bin.InkPixels,
	}
	if p.IncludeImage {
		encoded, err := imaging.EncodePNGBase64(bin.Raster.Image())
		if err != nil {
			return nil, err
		}
		result["image_base64"] = encoded
		result["mime_type"] = "image/png"
	}
	return result, nil
}

func (s *Server) handlePuzzleDeskew(args json.RawMessage) (interface{}, error) {
	var p pathArgs
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	img, err := s.extractor.Load(p.Path)
	if err != nil {
		return nil, err
	}
	bin := imaging.Binarize(img, s.cfg.Extraction.Binarize)
	return detection.EstimateSkew(bin.Raster, s.cfg.Extraction.Deskew), nil
}

func (s *Server) handlePuzzleLocateGrid(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path    string `json:"path"`
		Overlay bool   `json:"overlay"`
		Color   string `json:"color"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	img, err := s.extractor.Load(p.Path)
	if err != nil {
		return nil, err
	}

	bin := imaging.Binarize(img, s.cfg.Extraction.Binarize)
	desk := detection.Deskew(bin.Raster, s.cfg.Extraction.Deskew)
	grid, err := detection.LocateGrid(desk.Raster, s.cfg.Extraction.Grid)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"grid":       grid,
		"rows":       grid.NumRows(),
		"cols":       grid.NumCols(),
		"skew_angle": desk.Angle,
	}
	if p.Overlay {
		if p.Color == "" {
			p.Color = "#FF0000"
		}
		overlay := imaging.DividerOverlay(desk.Raster.Image(), grid.Rows, grid.Cols, p.Color, true)
		encoded, err := imaging.EncodePNGBase64(overlay)
		if err != nil {
			return nil, err
		}
		result["image_base64"] = encoded
		result["mime_type"] = "image/png"
	}
	return result, nil
}

// ExtractSummary is the puzzle_extract result.
type ExtractSummary struct {
	Threshold    int                 `json:"threshold"`
	Skew         float64             `json:"skew_angle"`
	Rows         int                 `json:"rows"`
	Cols         int                 `json:"cols"`
	GridStrategy string              `json:"grid_strategy"`
	WordMargin   string              `json:"word_margin"`
	Lines        int                 `json:"lines"`
	Words        []WordSummary       `json:"words"`
	Letters      int                 `json:"letters"`
	Grid         string              `json:"grid,omitempty"`
	WordList     []string            `json:"word_list,omitempty"`
	Manifest     *artifacts.Manifest `json:"manifest,omitempty"`
}

// WordSummary describes one segmented word.
type WordSummary struct {
	Index       int         `json:"index"`
	Box         imaging.Box `json:"box"`
	Letters     int         `json:"letters"`
	EqualSplits int         `json:"equal_splits,omitempty"`
}

func summarize(res *detection.Result) *ExtractSummary {
	sum := &ExtractSummary{
		Threshold:    res.Threshold,
		Skew:         res.Skew.Angle,
		Rows:         res.Grid.NumRows(),
		Cols:         res.Grid.NumCols(),
		GridStrategy: res.Grid.Strategy,
		WordMargin:   res.WordRegion.Margin.String(),
		Lines:        len(res.Lines.Lines),
		Letters:      res.LetterCount(),
	}
	for i, w := range res.Words {
		ws := WordSummary{Index: w.Index, Box: w.Box, Letters: len(res.Letters[i])}
		for _, l := range res.Letters[i] {
			if l.EqualSplit() {
				ws.EqualSplits++
			}
		}
		sum.Words = append(sum.Words, ws)
	}
	return sum
}

func (s *Server) handlePuzzleExtract(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path      string `json:"path"`
		OutputDir string `json:"output_dir"`
		Recognize bool   `json:"recognize"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}

	res, err := s.extract(p.Path)
	if err != nil {
		return nil, err
	}
	sum := summarize(res)

	var rec *puzzle.Recognition
	if p.Recognize {
		if rec, err = s.recognize(res); err != nil {
			return nil, err
		}
		sum.Grid = rec.Grid.Text()
		sum.WordList = rec.WordList()
	}

	if p.OutputDir != "" {
		w := artifacts.NewWriter(p.OutputDir)
		m, err := w.WriteExtraction(res, p.Path)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			if err := w.WriteRecognition(m, rec); err != nil {
				return nil, err
			}
		}
		sum.Manifest = m
	}
	return sum, nil
}

func (s *Server) recognize(res *detection.Result) (*puzzle.Recognition, error) {
	c, err := s.getClassifier()
	if err != nil {
		return nil, err
	}
	return puzzle.Recognize(res, c, s.cfg.Recognition)
}

func (s *Server) handlePuzzleSolve(args json.RawMessage) (interface{}, error) {
	var p struct {
		Grid  string   `json:"grid"`
		Words []string `json:"words"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if len(p.Words) == 0 {
		return nil, fmt.Errorf("words is required")
	}
	grid, err := solver.ParseGrid(strings.NewReader(p.Grid))
	if err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	rep := puzzle.Solve(grid, p.Words)
	return map[string]interface{}{
		"matches": rep.Matches,
		"found":   rep.Found,
		"missing": rep.Missing,
		"lines":   rep.Lines(),
	}, nil
}

func (s *Server) handlePuzzleAnnotate(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path      string   `json:"path"`
		Words     []string `json:"words"`
		Thickness int      `json:"thickness"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	if p.Thickness <= 0 {
		p.Thickness = 5
	}

	res, err := s.extract(p.Path)
	if err != nil {
		return nil, err
	}
	rec, err := s.recognize(res)
	if err != nil {
		return nil, err
	}
	grid, err := rec.Grid.Solver()
	if err != nil {
		return nil, err
	}
	words := p.Words
	if len(words) == 0 {
		words = rec.WordList()
	}

	rep := puzzle.Solve(grid, words)
	overlay := imaging.SolutionOverlay(res.Binary.Image(), puzzle.Strokes(res.Grid, rep.Matches), p.Thickness)
	encoded, err := imaging.EncodePNGBase64(overlay)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"grid":         rec.Grid.Text(),
		"lines":        rep.Lines(),
		"found":        rep.Found,
		"missing":      rep.Missing,
		"image_base64": encoded,
		"mime_type":    "image/png",
	}, nil
}

func (s *Server) handlePuzzleCropCell(args json.RawMessage) (interface{}, error) {
	var p struct {
		Path  string  `json:"path"`
		Row   int     `json:"row"`
		Col   int     `json:"col"`
		Scale float64 `json:"scale"`
	}
	if err := parseArgs(args, &p); err != nil {
		return nil, err
	}
	if err := requirePath(p.Path); err != nil {
		return nil, err
	}
	if p.Scale == 0 {
		p.Scale = 1.0
	}

	res, err := s.extract(p.Path)
	if err != nil {
		return nil, err
	}
	if p.Row < 0 || p.Row >= res.Grid.NumRows() || p.Col < 0 || p.Col >= res.Grid.NumCols() {
		return nil, fmt.Errorf("cell (%d,%d) outside %dx%d grid", p.Row, p.Col, res.Grid.NumRows(), res.Grid.NumCols())
	}
	cell := res.Cells[p.Row*res.Grid.NumCols()+p.Col]
	return imaging.Crop(res.Binary.Image(), cell.Box, p.Scale)
}
