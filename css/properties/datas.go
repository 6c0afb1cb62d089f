package properties

const ( // zero field corresponds to null content
	Scalar Unit = iota + 1 // means no unit, but a valid value
	Perc                   // percentage (%)
	Ex
	Em
	Ch
	Rem
	Px
	Pt
	Pc
	In
	Cm
	Mm
	Q
	Vw
	Vh
)

// DefaultFontSize is the initial value of font-size, in pixels.
const DefaultFontSize Float = 16

var (
	ZeroPixels = Dimension{Unit: Px}

	// How many CSS pixels is one <unit>?
	// http://www.w3.org/TR/CSS21/syndata.html#length-units
	LengthsToPixels = map[Unit]Float{
		Px: 1,
		Pt: 1. / 0.75,
		Pc: 16.,             // LengthsToPixels["pt"] * 12
		In: 96.,             // LengthsToPixels["pt"] * 72
		Cm: 96. / 2.54,      // LengthsToPixels["in"] / 2.54
		Mm: 96. / 25.4,      // LengthsToPixels["in"] / 25.4
		Q:  96. / 25.4 / 4., // LengthsToPixels[Mm] / 4
	}

	// Value in pixels of font-size for <absolute-size> keywords: 12pt (16px) for
	// medium, and scaling factors given in CSS3 for others:
	// http://www.w3.org/TR/css3-fonts/#font-size-prop
	FontSizeKeywords = map[string]Float{ // medium is 16px, others are a ratio of medium
		"xx-small": DefaultFontSize * 3 / 5,
		"x-small":  DefaultFontSize * 3 / 4,
		"small":    DefaultFontSize * 8 / 9,
		"medium":   DefaultFontSize * 1 / 1,
		"large":    DefaultFontSize * 6 / 5,
		"x-large":  DefaultFontSize * 3 / 2,
		"xx-large": DefaultFontSize * 2 / 1,
	}

	// Units accepted in length values, indexed by their CSS name.
	UnitsByName = map[string]Unit{
		"%":   Perc,
		"ex":  Ex,
		"em":  Em,
		"ch":  Ch,
		"rem": Rem,
		"px":  Px,
		"pt":  Pt,
		"pc":  Pc,
		"in":  In,
		"cm":  Cm,
		"mm":  Mm,
		"q":   Q,
		"vw":  Vw,
		"vh":  Vh,
	}
)
