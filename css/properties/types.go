package properties

import (
	"fmt"

	"github.com/benoitkugler/textautosizer/utils"
)

type Float = utils.Fl

type Unit uint8

func (u Unit) String() string {
	switch u {
	case Scalar: // means no unit, but a valid value
		return ""
	case Perc: // percentage (%)
		return "%"
	case Ex:
		return "ex"
	case Em:
		return "em"
	case Ch:
		return "ch"
	case Rem:
		return "rem"
	case Px:
		return "px"
	case Pt:
		return "pt"
	case Pc:
		return "pc"
	case In:
		return "in"
	case Cm:
		return "cm"
	case Mm:
		return "mm"
	case Q:
		return "q"
	case Vw:
		return "vw"
	case Vh:
		return "vh"
	default:
		return "<invalid unit>"
	}
}

// Dimension without unit is interpreted as float
type Dimension struct {
	Value Float
	Unit  Unit
}

func NewDim(v Float, u Unit) Dimension { return Dimension{v, u} }

func (d Dimension) String() string {
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

func (d Dimension) ToValue() DimOrS { return DimOrS{Dimension: d} }

func (v Dimension) IsNone() bool {
	return v == Dimension{}
}

// DimOrS is either a keyword (like "auto" or "none") or a dimension.
type DimOrS struct {
	S string
	Dimension
}

// SToV returns the keyword [s] as a value.
func SToV(s string) DimOrS { return DimOrS{S: s} }

func (ds DimOrS) String() string {
	if ds.S != "" {
		return ds.S
	}
	return ds.Dimension.String()
}

func (v DimOrS) IsNone() bool {
	return v == DimOrS{}
}

// IsSpecified returns true for a length or a percentage, as opposed to
// keywords like "auto" or "none".
func (v DimOrS) IsSpecified() bool {
	return v.S == "" && v.Unit != 0
}

// IsFixed returns true for an absolute length. Computed styles only
// store absolute lengths in pixels.
func (v DimOrS) IsFixed() bool {
	return v.S == "" && v.Unit == Px
}

// HasPercent returns true for percentages.
func (v DimOrS) HasPercent() bool {
	return v.S == "" && v.Unit == Perc
}

// LengthType is a compact code of the kind of value,
// used to pack styles.
type LengthType uint8

const (
	LengthAuto LengthType = iota
	LengthPercent
	LengthFixed
	LengthNone
	LengthIntrinsic
)

// Type returns the kind of the value.
func (v DimOrS) Type() LengthType {
	switch {
	case v.HasPercent():
		return LengthPercent
	case v.IsFixed():
		return LengthFixed
	case v.S == "none":
		return LengthNone
	case v.S == "min-content", v.S == "max-content", v.S == "fit-content":
		return LengthIntrinsic
	default:
		return LengthAuto
	}
}

// ResoudPercentage resolves a percentage against [referTo], returning
// 0 for keywords.
func ResoudPercentage(value DimOrS, referTo Float) Float {
	switch {
	case value.HasPercent():
		return value.Value * referTo / 100
	case value.IsFixed():
		return value.Value
	default:
		return 0
	}
}
