package illustration

// themes 按匹配优先级排列，default 必须位于最后
var themes = []Theme{
	{
		Name:       "chat",
		Background: "#FFF5E6",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#FFB366", Box: [4]float64{150, 120, 250, 200}},
			{Kind: ShapeEllipse, Color: "#FFB366", Box: [4]float64{170, 80, 230, 130}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{185, 95, 195, 105}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{205, 95, 215, 105}},
			{Kind: ShapePolygon, Color: "#FFB366", Points: []Point{{150, 85}, {160, 60}, {175, 85}}},
			{Kind: ShapePolygon, Color: "#FFB366", Points: []Point{{225, 85}, {240, 60}, {250, 85}}},
		},
	},
	{
		Name:       "chien",
		Background: "#F5F0E6",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#8B4513", Box: [4]float64{140, 120, 260, 220}},
			{Kind: ShapeEllipse, Color: "#8B4513", Box: [4]float64{160, 70, 240, 140}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{180, 90, 190, 100}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{210, 90, 220, 100}},
			{Kind: ShapeEllipse, Color: "#5D3A1A", Box: [4]float64{190, 105, 210, 120}},
		},
	},
	{
		Name:       "hamster",
		Background: "#FFF8E1",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#D4A574", Box: [4]float64{150, 100, 250, 200}},
			{Kind: ShapeEllipse, Color: "#F5DEB3", Box: [4]float64{170, 130, 230, 180}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{175, 120, 185, 130}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{215, 120, 225, 130}},
		},
	},
	{
		Name:       "ecole",
		Background: "#E3F2FD",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#FFC107", Box: [4]float64{120, 100, 280, 220}},
			{Kind: ShapePolygon, Color: "#FF5722", Points: []Point{{120, 100}, {200, 50}, {280, 100}}},
			{Kind: ShapeRectangle, Color: "#795548", Box: [4]float64{180, 160, 220, 220}},
			{Kind: ShapeRectangle, Color: "#81D4FA", Box: [4]float64{140, 120, 160, 150}},
			{Kind: ShapeRectangle, Color: "#81D4FA", Box: [4]float64{240, 120, 260, 150}},
		},
	},
	{
		Name:       "recre",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8BC34A", Box: [4]float64{0, 200, 400, 300}},
			{Kind: ShapeEllipse, Color: "#FF5722", Box: [4]float64{180, 100, 220, 140}},
			{Kind: ShapeEllipse, Color: "#2196F3", Box: [4]float64{120, 160, 150, 190}},
			{Kind: ShapeEllipse, Color: "#9C27B0", Box: [4]float64{250, 150, 280, 180}},
		},
	},
	{
		Name:       "spectacle",
		Background: "#FCE4EC",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#9C27B0", Box: [4]float64{100, 180, 300, 250}},
			{Kind: ShapePolygon, Color: "#FFEB3B", Points: []Point{{200, 80}, {180, 130}, {220, 130}}},
			{Kind: ShapeEllipse, Color: "#4CAF50", Box: [4]float64{160, 120, 190, 180}},
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{210, 120, 240, 180}},
		},
	},
	{
		Name:       "ballon",
		Background: "#FFEBEE",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{140, 80, 260, 200}},
			{Kind: ShapeEllipse, Color: "#FFCDD2", Box: [4]float64{160, 100, 200, 140}},
		},
	},
	{
		Name:       "velo",
		Background: "#E0F7FA",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{100, 150, 160, 210}},
			{Kind: ShapeEllipse, Color: "#333333", Box: [4]float64{240, 150, 300, 210}},
			{Kind: ShapePolygon, Color: "#2196F3", Points: []Point{{130, 180}, {200, 120}, {270, 180}, {200, 160}}},
		},
	},
	{
		Name:       "piscine",
		Background: "#E3F2FD",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#81D4FA", Box: [4]float64{80, 120, 320, 220}},
			{Kind: ShapeEllipse, Color: "#BBDEFB", Box: [4]float64{120, 140, 180, 180}},
			{Kind: ShapeEllipse, Color: "#BBDEFB", Box: [4]float64{200, 150, 260, 190}},
		},
	},
	{
		Name:       "foot",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8BC34A", Box: [4]float64{0, 200, 400, 300}},
			{Kind: ShapeEllipse, Color: "#FFFFFF", Box: [4]float64{160, 100, 240, 180}},
			{Kind: ShapePolygon, Color: "#333333", Points: []Point{{185, 120}, {200, 110}, {215, 120}, {210, 135}, {190, 135}}},
		},
	},
	{
		Name:       "maman",
		Background: "#FCE4EC",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#F48FB1", Box: [4]float64{160, 80, 240, 160}},
			{Kind: ShapeEllipse, Color: "#F48FB1", Box: [4]float64{140, 150, 260, 250}},
			{Kind: ShapeEllipse, Color: "#E91E63", Box: [4]float64{170, 170, 230, 220}},
		},
	},
	{
		Name:       "dejeuner",
		Background: "#FFF8E1",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#FFCC80", Box: [4]float64{100, 150, 300, 250}},
			{Kind: ShapeEllipse, Color: "#FFFFFF", Box: [4]float64{150, 110, 220, 160}},
			{Kind: ShapeRectangle, Color: "#D7CCC8", Box: [4]float64{240, 120, 270, 170}},
		},
	},
	{
		Name:       "nuit",
		Background: "#303F9F",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#FFF59D", Box: [4]float64{260, 60, 320, 120}},
			{Kind: ShapeEllipse, Color: "#FFFFFF", Box: [4]float64{120, 80, 130, 90}},
			{Kind: ShapeEllipse, Color: "#FFFFFF", Box: [4]float64{160, 100, 170, 110}},
			{Kind: ShapeEllipse, Color: "#FFFFFF", Box: [4]float64{200, 70, 210, 80}},
		},
	},
	{
		Name:       "parc",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8BC34A", Box: [4]float64{0, 200, 400, 300}},
			{Kind: ShapeEllipse, Color: "#4CAF50", Box: [4]float64{100, 100, 180, 180}},
			{Kind: ShapeRectangle, Color: "#795548", Box: [4]float64{130, 180, 150, 220}},
			{Kind: ShapeEllipse, Color: "#FFEB3B", Box: [4]float64{280, 50, 340, 110}},
		},
	},
	{
		Name:       "jardin",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8D6E63", Box: [4]float64{80, 180, 320, 260}},
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{120, 130, 160, 170}},
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{200, 140, 240, 180}},
			{Kind: ShapePolygon, Color: "#4CAF50", Points: []Point{{140, 130}, {145, 100}, {150, 130}}},
		},
	},
	{
		Name:       "pluie",
		Background: "#ECEFF1",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#78909C", Box: [4]float64{120, 80, 280, 160}},
			{Kind: ShapeEllipse, Color: "#2196F3", Box: [4]float64{150, 180, 160, 200}},
			{Kind: ShapeEllipse, Color: "#2196F3", Box: [4]float64{200, 190, 210, 210}},
			{Kind: ShapeEllipse, Color: "#2196F3", Box: [4]float64{250, 175, 260, 195}},
		},
	},
	{
		Name:       "tempete",
		Background: "#455A64",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#78909C", Box: [4]float64{100, 60, 300, 150}},
			{Kind: ShapePolygon, Color: "#FFEB3B", Points: []Point{{200, 150}, {180, 200}, {210, 190}, {190, 240}}},
		},
	},
	{
		Name:       "orage",
		Background: "#37474F",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#607D8B", Box: [4]float64{100, 60, 300, 140}},
			{Kind: ShapePolygon, Color: "#FFEB3B", Points: []Point{{200, 140}, {170, 200}, {210, 180}, {180, 250}}},
		},
	},
	{
		Name:       "camping",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapePolygon, Color: "#FF7043", Points: []Point{{200, 100}, {120, 220}, {280, 220}}},
			{Kind: ShapeRectangle, Color: "#795548", Box: [4]float64{185, 180, 215, 220}},
			{Kind: ShapeEllipse, Color: "#81D4FA", Box: [4]float64{80, 180, 160, 230}},
		},
	},
	{
		Name:       "gateau",
		Background: "#FBE9E7",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#D7CCC8", Box: [4]float64{100, 180, 300, 260}},
			{Kind: ShapeRectangle, Color: "#8D6E63", Box: [4]float64{140, 100, 260, 200}},
			{Kind: ShapeRectangle, Color: "#FFEB3B", Box: [4]float64{195, 70, 205, 100}},
			{Kind: ShapeEllipse, Color: "#FF5722", Box: [4]float64{193, 55, 207, 70}},
		},
	},
	{
		Name:       "biblio",
		Background: "#F3E5F5",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#CE93D8", Box: [4]float64{80, 80, 180, 240}},
			{Kind: ShapeRectangle, Color: "#F48FB1", Box: [4]float64{90, 90, 110, 150}},
			{Kind: ShapeRectangle, Color: "#90CAF9", Box: [4]float64{115, 100, 135, 150}},
			{Kind: ShapeRectangle, Color: "#A5D6A7", Box: [4]float64{140, 85, 160, 150}},
			{Kind: ShapeRectangle, Color: "#FFCC80", Box: [4]float64{220, 120, 300, 180}},
		},
	},
	{
		Name:       "lettre",
		Background: "#E8EAF6",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#FFFFFF", Box: [4]float64{120, 100, 280, 200}},
			{Kind: ShapePolygon, Color: "#C5CAE9", Points: []Point{{120, 100}, {200, 150}, {280, 100}}},
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{240, 160, 270, 190}},
		},
	},
	{
		Name:       "musee",
		Background: "#EFEBE9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8D6E63", Box: [4]float64{100, 120, 300, 240}},
			{Kind: ShapePolygon, Color: "#795548", Points: []Point{{100, 120}, {200, 60}, {300, 120}}},
			{Kind: ShapeRectangle, Color: "#FFCC80", Box: [4]float64{140, 160, 170, 240}},
			{Kind: ShapeRectangle, Color: "#FFCC80", Box: [4]float64{230, 160, 260, 240}},
		},
	},
	{
		Name:       "zoo",
		Background: "#FFF3E0",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#FFB74D", Box: [4]float64{120, 100, 200, 180}},
			{Kind: ShapeEllipse, Color: "#FFE0B2", Box: [4]float64{140, 130, 180, 160}},
			{Kind: ShapeEllipse, Color: "#FFCC80", Box: [4]float64{250, 80, 280, 200}},
			{Kind: ShapeEllipse, Color: "#FFCC80", Box: [4]float64{240, 60, 290, 100}},
		},
	},
	{
		Name:       "rentree",
		Background: "#E3F2FD",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#2196F3", Box: [4]float64{140, 100, 260, 200}},
			{Kind: ShapeRectangle, Color: "#1976D2", Box: [4]float64{160, 80, 240, 110}},
			{Kind: ShapeEllipse, Color: "#FFC107", Box: [4]float64{180, 130, 220, 170}},
		},
	},
	{
		Name:       "cabane",
		Background: "#E8F5E9",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8D6E63", Box: [4]float64{120, 140, 280, 240}},
			{Kind: ShapePolygon, Color: "#795548", Points: []Point{{110, 140}, {200, 80}, {290, 140}}},
			{Kind: ShapeRectangle, Color: "#4CAF50", Box: [4]float64{170, 180, 230, 240}},
		},
	},
	{
		Name:       "demenagement",
		Background: "#FFF8E1",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#8D6E63", Box: [4]float64{100, 140, 300, 240}},
			{Kind: ShapeRectangle, Color: "#A1887F", Box: [4]float64{100, 140, 300, 160}},
			{Kind: ShapeEllipse, Color: "#F48FB1", Box: [4]float64{180, 80, 220, 120}},
		},
	},
	{
		Name:       "marche",
		Background: "#FFF3E0",
		Shapes: []Shape{
			{Kind: ShapeRectangle, Color: "#FF8A65", Box: [4]float64{100, 120, 200, 200}},
			{Kind: ShapeEllipse, Color: "#F44336", Box: [4]float64{120, 100, 150, 130}},
			{Kind: ShapeEllipse, Color: "#4CAF50", Box: [4]float64{160, 100, 190, 130}},
			{Kind: ShapeEllipse, Color: "#FF9800", Box: [4]float64{250, 140, 280, 200}},
		},
	},
	{
		Name:       "default",
		Background: "#F5F5F5",
		Shapes: []Shape{
			{Kind: ShapeEllipse, Color: "#BBDEFB", Box: [4]float64{120, 100, 200, 180}},
			{Kind: ShapeEllipse, Color: "#C8E6C9", Box: [4]float64{200, 120, 280, 200}},
		},
	},
}
