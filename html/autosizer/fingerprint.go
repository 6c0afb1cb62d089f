package autosizer

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/utils"
)

// Fingerprint is a hash of the ancestry, the tag and some style
// properties of a box. Boxes with equal fingerprints are likely to be
// the repeated items of a list.
// The zero value means "no fingerprint".
type Fingerprint uint64

// blockSet is an ordered set of blocks.
type blockSet struct {
	blocks []Box
}

func (bs *blockSet) add(block Box) {
	if !bs.contains(block) {
		bs.blocks = append(bs.blocks, block)
	}
}

func (bs *blockSet) remove(block Box) {
	for i, b := range bs.blocks {
		if b == block {
			bs.blocks = append(bs.blocks[:i], bs.blocks[i+1:]...)
			return
		}
	}
}

func (bs *blockSet) contains(block Box) bool {
	for _, b := range bs.blocks {
		if b == block {
			return true
		}
	}
	return false
}

func (bs *blockSet) size() int { return len(bs.blocks) }

// fingerprintMapper stores the fingerprint of each box, and the
// tentative cluster roots sharing a fingerprint.
// Both maps are only mutated through its methods, so that each root
// of a reverse entry always has the matching forward entry.
type fingerprintMapper struct {
	fingerprints         map[Box]Fingerprint
	blocksForFingerprint map[Fingerprint]*blockSet
}

func newFingerprintMapper() fingerprintMapper {
	return fingerprintMapper{
		fingerprints:         make(map[Box]Fingerprint),
		blocksForFingerprint: make(map[Fingerprint]*blockSet),
	}
}

func (fm *fingerprintMapper) add(box Box, fingerprint Fingerprint) {
	fm.remove(box)
	fm.fingerprints[box] = fingerprint
	if debugMode {
		fm.assertMapsAreConsistent()
	}
}

func (fm *fingerprintMapper) addTentativeClusterRoot(block Box, fingerprint Fingerprint) {
	fm.add(block, fingerprint)
	roots := fm.blocksForFingerprint[fingerprint]
	if roots == nil {
		roots = new(blockSet)
		fm.blocksForFingerprint[fingerprint] = roots
	}
	roots.add(block)
	if debugMode {
		fm.assertMapsAreConsistent()
	}
}

// remove returns true if [box] was a fingerprinted tentative root.
func (fm *fingerprintMapper) remove(box Box) bool {
	fingerprint, ok := fm.fingerprints[box]
	if !ok {
		return false
	}
	delete(fm.fingerprints, box)
	roots := fm.blocksForFingerprint[fingerprint]
	if roots == nil || !roots.contains(box) {
		return false
	}
	roots.remove(box)
	if roots.size() == 0 {
		delete(fm.blocksForFingerprint, fingerprint)
	}
	if debugMode {
		fm.assertMapsAreConsistent()
	}
	return true
}

func (fm *fingerprintMapper) get(box Box) Fingerprint { return fm.fingerprints[box] }

// getTentativeClusterRoots returns nil if no root has [fingerprint].
func (fm *fingerprintMapper) getTentativeClusterRoots(fingerprint Fingerprint) *blockSet {
	return fm.blocksForFingerprint[fingerprint]
}

func (fm *fingerprintMapper) hasFingerprints() bool { return len(fm.fingerprints) != 0 }

func (fm *fingerprintMapper) assertMapsAreConsistent() {
	for fingerprint, roots := range fm.blocksForFingerprint {
		assert(roots.size() != 0, "empty root set for fingerprint %d", fingerprint)
		for _, root := range roots.blocks {
			assert(fm.fingerprints[root] == fingerprint, "inconsistent fingerprint for %s", root.Box())
		}
	}
}

// getFingerprint returns the cached fingerprint of [box], computing
// and storing it if needed.
func (ta *TextAutosizer) getFingerprint(box Box) Fingerprint {
	result := ta.fingerprintMapper.get(box)
	if result == 0 {
		result = ta.computeFingerprint(box)
		ta.fingerprintMapper.add(box, result)
	}
	return result
}

// computeFingerprint returns 0 for anonymous and text boxes.
func (ta *TextAutosizer) computeFingerprint(box Box) Fingerprint {
	b := box.Box()
	element := b.GeneratingElement()
	// <br> text boxes keep their element
	if element == nil || bo.IsText(box) {
		return 0
	}

	var parentHash Fingerprint
	if parent := parentElementBox(box); parent != nil {
		parentHash = ta.getFingerprint(parent)
	}

	var (
		packedStyleProperties uint32
		width                 float32
		column                uint32
	)
	if style := b.Style; style != nil {
		if style.Direction == pr.DirectionRtl {
			packedStyleProperties = 1
		}
		packedStyleProperties |= style.Position.Code() << 1
		packedStyleProperties |= style.Float.Code() << 4
		packedStyleProperties |= style.Display.Code() << 6
		packedStyleProperties |= uint32(style.Width.Type()) << 11
		// consider adding the writing mode and the padding
		width = style.Width.Value
	}
	// the element index is a rough approximation of the
	// column, which is not known before the table layout
	if bo.IsTableCell(box) {
		column = uint32((*utils.HTMLNode)(element).ElementIndex())
	}

	digest := xxhash.New()
	var buf [20]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(parentHash))
	binary.LittleEndian.PutUint32(buf[8:], packedStyleProperties)
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(width))
	binary.LittleEndian.PutUint32(buf[16:], column)
	digest.Write(buf[:])
	digest.WriteString(element.Namespace)
	digest.WriteString(":")
	digest.WriteString(element.Data)

	if result := Fingerprint(digest.Sum64()); result != 0 {
		return result
	}
	return 1
}

// parentElementBox returns the closest ancestor generated by an element.
func parentElementBox(box Box) Box {
	for parent := box.Box().Parent; parent != nil; parent = parent.Box().Parent {
		if parent.Box().GeneratingElement() != nil {
			return parent
		}
	}
	return nil
}
