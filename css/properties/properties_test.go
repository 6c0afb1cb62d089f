package properties

import (
	"testing"

	tu "github.com/benoitkugler/textautosizer/utils/testutils"
)

func TestDimOrS(t *testing.T) {
	for _, test := range []struct {
		value                       DimOrS
		specified, fixed, isPercent bool
		type_                       LengthType
	}{
		{SToV("auto"), false, false, false, LengthAuto},
		{SToV("none"), false, false, false, LengthNone},
		{SToV("fit-content"), false, false, false, LengthIntrinsic},
		{NewDim(10, Px).ToValue(), true, true, false, LengthFixed},
		{NewDim(50, Perc).ToValue(), true, false, true, LengthPercent},
		{DimOrS{}, false, false, false, LengthAuto},
	} {
		tu.AssertEqual(t, test.value.IsSpecified(), test.specified)
		tu.AssertEqual(t, test.value.IsFixed(), test.fixed)
		tu.AssertEqual(t, test.value.HasPercent(), test.isPercent)
		tu.AssertEqual(t, test.value.Type(), test.type_)
	}

	tu.AssertEqual(t, ResoudPercentage(NewDim(50, Perc).ToValue(), 300), Float(150))
	tu.AssertEqual(t, ResoudPercentage(NewDim(20, Px).ToValue(), 300), Float(20))
	tu.AssertEqual(t, ResoudPercentage(SToV("auto"), 300), Float(0))
}

func TestDisplay(t *testing.T) {
	tu.AssertEqual(t, DisplayInlineBlock.IsInlineLevel(), true)
	tu.AssertEqual(t, DisplayInlineBlock.IsReplacedType(), true)
	tu.AssertEqual(t, DisplayInline.IsInlineLevel(), true)
	tu.AssertEqual(t, DisplayInline.IsReplacedType(), false)
	tu.AssertEqual(t, DisplayBlock.IsInlineLevel(), false)
	tu.AssertEqual(t, Display("blocky").IsValid(), false)

	// the codes are packed on 5 bits
	seen := map[uint32]Display{}
	for _, d := range displays {
		code := d.Code()
		if other, ok := seen[code]; ok {
			t.Fatalf("%s and %s share code %d", d, other, code)
		}
		if code >= 1<<5 {
			t.Fatalf("code of %s is too large", d)
		}
		seen[code] = d
	}
}

func TestInheritFrom(t *testing.T) {
	parent := InitialStyle()
	parent.Display = DisplayBlock
	parent.Width = NewDim(10, Px).ToValue()
	parent.FontSize = 20
	parent.WritingMode = VerticalRl
	parent.WhiteSpace = WhiteSpacePre
	parent.UserModify = ReadWrite
	parent.TextSizeAdjust = 2

	child := InheritFrom(parent)
	tu.AssertEqual(t, child.Display, DisplayInline)
	tu.AssertEqual(t, child.Width, SToV("auto"))
	tu.AssertEqual(t, child.FontSize, Float(20))
	tu.AssertEqual(t, child.WritingMode, VerticalRl)
	tu.AssertEqual(t, child.WhiteSpace, WhiteSpacePre)
	tu.AssertEqual(t, child.UserModify, ReadWrite)
	// the multiplier is set per box by the autosizer
	tu.AssertEqual(t, child.TextSizeAdjust, Float(1))

	tu.AssertEqual(t, child.LogicalWidth(), child.Height)

	copied := parent.Copy()
	copied.FontSize = 30
	tu.AssertEqual(t, parent.FontSize, Float(20))
}
