package layout

// This file defines the unit types shared by both surfaces and the px/mm/pt conversions.

// Unit represents the unit a surface measures in.
type Unit int

const (
	UnitPX Unit = iota // UI pixels (preview)
	UnitMM             // millimeters (print)
	UnitPT             // points (font sizes inside the PDF backend)
)

// Conversion constants. PxToMm is the approximation used when mapping the
// UI pixel sizes of the configuration onto paper.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToMm = 0.35
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

func (u Unit) MarshalText() ([]byte, error) { return []byte(UnitToString(u)), nil }

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px builds a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPX} }

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	if l.Unit == target {
		return l.Value
	}
	var mm float64
	switch l.Unit {
	case UnitPX:
		mm = l.Value * PxToMm
	case UnitPT:
		mm = l.Value * PtToMm
	default:
		mm = l.Value
	}
	switch target {
	case UnitPX:
		return mm / PxToMm
	case UnitPT:
		return mm * MmToPt
	default:
		return mm
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }
