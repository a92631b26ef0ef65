package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the puzzle image (BMP, PNG, JPEG or GIF)",
	}
}

func wordsProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "puzzle_load",
			Description: "Load a puzzle image and return its dimensions, format and file size. The decoded image is cached for the other puzzle tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_binarize",
			Description: "Convert the image to ink and background using an isodata threshold. Returns the threshold, the estimated noise level, median passes applied and the ink pixel count. Optionally returns the binary image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"denoise": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"off", "auto", "always"},
						"description": "Median denoising before thresholding. Defaults to the configured mode.",
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the binary image as base64 PNG",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_deskew",
			Description: "Estimate the rotation that aligns the puzzle rows with the image axes. Angle is in degrees, counter-clockwise, and 0 when no rotation improved alignment.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_locate_grid",
			Description: "Find the letter grid rulings. Returns the row and column divider positions, the grid box, the cell size and which detection strategy succeeded. Optionally returns an overlay of the dividers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the deskewed image with labeled dividers drawn as base64 PNG",
						"default":     false,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay line color as hex (e.g. '#FF0000'). Default red.",
						"default":     "#FF0000",
					},
				},
				"required": []string{"path"},
			},
		},

		// Full Pipeline
		{
			Name:        "puzzle_extract",
			Description: "Run the full extraction: binarize, deskew, locate the grid, slice cells, find the word list and segment it into lines, words and letters. Optionally classify every glyph and write the cell, word and letter images to a directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write binary.bmp, cells/, words/, word_letters/ and manifest.json into",
					},
					"recognize": map[string]interface{}{
						"type":        "boolean",
						"description": "Classify grid cells and word letters and return the grid text and word list",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_solve",
			Description: "Search a letter grid for words in all eight directions. Returns the start and end cell of each word as (col,row) or 'Not Found'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid": map[string]interface{}{
						"type":        "string",
						"description": "Grid letters, one row per line. Whitespace within a row is ignored and '?' marks an unreadable cell.",
					},
					"words": wordsProperty("Words to search for"),
				},
				"required": []string{"grid", "words"},
			},
		},
		{
			Name:        "puzzle_annotate",
			Description: "Extract and recognize the puzzle, solve it and draw a stroke over every found word. Returns the solution lines and the annotated image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty(),
					"words": wordsProperty("Words to search for. Defaults to the recognized word list."),
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Stroke thickness in pixels. Default 5.",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "puzzle_crop_cell",
			Description: "Return the image of one grid cell as base64 PNG. Use this to examine a cell the classifier could not read.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Cell row (0-based, from the top)",
					},
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Cell column (0-based, from the left)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to quadruple size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "row", "col"},
			},
		},
	}
}
