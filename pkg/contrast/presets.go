package contrast

// Preset is a named background/text pair with a nominal contrast ratio.
type Preset struct {
	Name       string  `json:"name"`
	Background string  `json:"background"`
	Text       string  `json:"text"`
	Ratio      float64 `json:"ratio"`
}

// LowContrastPresets are color pairs that sit close to the 1.0 floor.
var LowContrastPresets = []Preset{
	{Name: "Barely There Yellow", Background: "#FFFFE0", Text: "#FDFDDF", Ratio: 1.1},
	{Name: "Ghost White", Background: "#F7F7F7", Text: "#F6F6F6", Ratio: 1.06},
	{Name: "Whisper Gray", Background: "#E8E8E8", Text: "#E5E5E5", Ratio: 1.08},
	{Name: "Shadow Black", Background: "#1A1A1A", Text: "#1C1C1C", Ratio: 1.05},
	{Name: "Charcoal Stealth", Background: "#2D2D2D", Text: "#303030", Ratio: 1.07},
	{Name: "Faint Pink", Background: "#FFE4E4", Text: "#FFE1E1", Ratio: 1.09},
	{Name: "Subtle Blue", Background: "#E4F0FF", Text: "#E1EDFF", Ratio: 1.08},
}

type Category string

const (
	CategorySweetSpot     Category = "sweet-spot"
	CategoryBarelyVisible Category = "barely-visible"
	CategoryInvisible     Category = "invisible"
	CategoryVisible       Category = "visible"
)

// TestCase is a sample text rendering used to compare human and machine
// readability at a known contrast.
type TestCase struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Background  string   `json:"backgroundColor"`
	TextColor   string   `json:"textColor"`
	Text        string   `json:"text"`
	FontSize    float64  `json:"fontSize"`
	Ratio       float64  `json:"contrastRatio"`
	Category    Category `json:"category"`
}

var TestCases = []TestCase{
	{ID: "sweet-1", Name: "Light Gray on White", Description: "Barely visible to humans but OCR may detect", Background: "#FFFFFF", TextColor: "#E8E8E8", Text: "Hidden message in light gray", FontSize: 16, Ratio: 1.2, Category: CategorySweetSpot},
	{ID: "sweet-2", Name: "Dark Gray on Black", Description: "Low contrast dark palette", Background: "#000000", TextColor: "#1A1A1A", Text: "Barely visible dark text", FontSize: 14, Ratio: 1.3, Category: CategorySweetSpot},
	{ID: "sweet-3", Name: "Pale Yellow on White", Description: "Very subtle warm tone difference", Background: "#FFFFFF", TextColor: "#F5F5DC", Text: "Almost invisible warm tint", FontSize: 16, Ratio: 1.15, Category: CategorySweetSpot},
	{ID: "sweet-4", Name: "Navy on Black", Description: "Subtle blue-black difference", Background: "#000000", TextColor: "#0A0A14", Text: "Hidden in darkness", FontSize: 18, Ratio: 1.25, Category: CategorySweetSpot},
	{ID: "barely-1", Name: "Very Light Gray on White", Description: "Extremely low contrast", Background: "#FFFFFF", TextColor: "#F8F8F8", Text: "Nearly invisible text", FontSize: 16, Ratio: 1.05, Category: CategoryBarelyVisible},
	{ID: "barely-2", Name: "Almost Black on Black", Description: "Minimal differentiation", Background: "#000000", TextColor: "#0D0D0D", Text: "Barely there", FontSize: 14, Ratio: 1.08, Category: CategoryBarelyVisible},
	{ID: "invisible-1", Name: "White on White", Description: "Completely invisible", Background: "#FFFFFF", TextColor: "#FFFFFF", Text: "You cannot see this", FontSize: 16, Ratio: 1.0, Category: CategoryInvisible},
	{ID: "invisible-2", Name: "Near-White on White", Description: "Imperceptible to human eye", Background: "#FFFFFF", TextColor: "#FEFEFE", Text: "Invisible payload", FontSize: 12, Ratio: 1.01, Category: CategoryInvisible},
	{ID: "visible-1", Name: "Black on White (WCAG AAA)", Description: "Maximum contrast, fully readable", Background: "#FFFFFF", TextColor: "#000000", Text: "Perfect readability", FontSize: 16, Ratio: 21, Category: CategoryVisible},
	{ID: "visible-2", Name: "Dark Gray on White (WCAG AA)", Description: "Good contrast, easily readable", Background: "#FFFFFF", TextColor: "#595959", Text: "Clearly visible text", FontSize: 16, Ratio: 7.0, Category: CategoryVisible},
}

// TestCasesByCategory filters TestCases, preserving order.
func TestCasesByCategory(category Category) []TestCase {
	var matching []TestCase
	for _, tc := range TestCases {
		if tc.Category == category {
			matching = append(matching, tc)
		}
	}
	return matching
}

// TestCaseByID looks up a single entry of TestCases.
func TestCaseByID(id string) (TestCase, bool) {
	for _, tc := range TestCases {
		if tc.ID == id {
			return tc, true
		}
	}
	return TestCase{}, false
}
