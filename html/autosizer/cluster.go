package autosizer

import (
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/logger"
)

// textAmount is a lazily computed boolean.
type textAmount uint8

const (
	unknownAmountOfText textAmount = iota
	hasEnoughText
	notEnoughText
)

const noIndex = -1

// cluster is a subtree sharing one multiplier. Clusters are
// created when the layout enters their root, and live in the
// cluster stack until it leaves it.
type cluster struct {
	root  Box
	flags BlockFlags

	parent       int // index in the cluster stack, or noIndex
	supercluster int // index in the supercluster arena, or noIndex

	// memoized values

	multiplier    float32 // 0 until computed
	hasEnoughText textAmount
	textContainer Box // deepest block containing all text, nil until computed
}

func newCluster(root Box, flags BlockFlags, parent, supercluster int) cluster {
	return cluster{root: root, flags: flags, parent: parent, supercluster: supercluster}
}

// clusterStack mirrors the chain of the cluster roots being laid out.
// Clusters are addressed by their index, which is stable while
// they are on the stack.
type clusterStack struct {
	clusters []cluster
}

func (cs *clusterStack) isEmpty() bool { return len(cs.clusters) == 0 }

func (cs *clusterStack) push(c cluster) { cs.clusters = append(cs.clusters, c) }

func (cs *clusterStack) pop() { cs.clusters = cs.clusters[:len(cs.clusters)-1] }

func (cs *clusterStack) clear() { cs.clusters = cs.clusters[:0] }

// at returns nil for [noIndex].
func (cs *clusterStack) at(index int) *cluster {
	if index == noIndex {
		return nil
	}
	return &cs.clusters[index]
}

func (cs *clusterStack) currentIndex() int { return len(cs.clusters) - 1 }

// current returns nil if the stack is empty.
func (cs *clusterStack) current() *cluster {
	if cs.isEmpty() {
		return nil
	}
	return &cs.clusters[len(cs.clusters)-1]
}

// supercluster groups the tentative roots sharing a fingerprint.
type supercluster struct {
	roots *blockSet // shared with the fingerprint mapper

	multiplier    float32 // 0 until computed
	hasEnoughText textAmount
}

// superclusters is an arena of superclusters, indexed by fingerprint.
type superclusters struct {
	list          []supercluster
	byFingerprint map[Fingerprint]int
}

func newSuperclusters() superclusters {
	return superclusters{byFingerprint: make(map[Fingerprint]int)}
}

func (sc *superclusters) getOrCreate(fingerprint Fingerprint, roots *blockSet) int {
	if index, ok := sc.byFingerprint[fingerprint]; ok {
		return index
	}
	sc.list = append(sc.list, supercluster{roots: roots})
	index := len(sc.list) - 1
	sc.byFingerprint[fingerprint] = index
	return index
}

func (sc *superclusters) at(index int) *supercluster { return &sc.list[index] }

func (sc *superclusters) clear() {
	sc.list = sc.list[:0]
	for k := range sc.byFingerprint {
		delete(sc.byFingerprint, k)
	}
}

// Record registers [block] as a tentative cluster root. It must be called
// when a block is inserted in the layout tree, or when its style changes.
func (ta *TextAutosizer) Record(block Box) {
	if !ta.pageInfo.SettingEnabled {
		return
	}
	if debugMode {
		assert(!ta.blocksThatHaveBegunLayout[block], "recording %s during its layout", block.Box())
	}
	if ClassifyBlock(block, Independent|ExplicitWidth) == 0 {
		return
	}
	if fingerprint := ta.computeFingerprint(block); fingerprint != 0 {
		ta.fingerprintMapper.addTentativeClusterRoot(block, fingerprint)
	}
}

// Destroy must be called when [box] is removed from the layout tree.
func (ta *TextAutosizer) Destroy(box Box) {
	if !ta.pageInfo.SettingEnabled && !ta.fingerprintMapper.hasFingerprints() {
		return
	}
	if ta.fingerprintMapper.remove(box) && ta.firstBlockToBeginLayout != nil {
		// a fingerprinted root destroyed during layout: the clusters
		// and superclusters may reference it, drop them
		logger.WarningLogger.Printf("cluster root %s destroyed during layout", box.Box())
		ta.firstBlockToBeginLayout = nil
		ta.clusterStack.clear()
		ta.superclusters.clear()
	}
}

type beginLayoutBehavior uint8

const (
	stopLayout beginLayoutBehavior = iota
	continueLayout
)

func (ta *TextAutosizer) prepareForLayout(block Box) beginLayoutBehavior {
	if debugMode {
		ta.blocksThatHaveBegunLayout[block] = true
	}
	if ta.firstBlockToBeginLayout == nil {
		ta.firstBlockToBeginLayout = block
		ta.prepareClusterStack(block.Box().Parent)
	} else if current := ta.clusterStack.current(); current != nil && current.root == block {
		// the layout may enter the same block twice,
		// for instance with tables
		return stopLayout
	}
	return continueLayout
}

// prepareClusterStack pushes the clusters of the ancestors of the
// first block entering layout, outermost first.
func (ta *TextAutosizer) prepareClusterStack(box Box) {
	if box == nil {
		return
	}
	ta.prepareClusterStack(box.Box().Parent)
	if bo.IsLayoutBlock(box) {
		if debugMode {
			ta.blocksThatHaveBegunLayout[box] = true
		}
		ta.maybeCreateCluster(box)
	}
}

// BeginLayout must be called when the layout enters [block],
// and only if [TextAutosizer.ShouldHandleLayout] is true.
// Prefer [LayoutScope], which pairs it with [TextAutosizer.EndLayout].
func (ta *TextAutosizer) BeginLayout(block Box) {
	assert(ta.ShouldHandleLayout(), "BeginLayout called while autosizing is inactive")

	if ta.prepareForLayout(block) == stopLayout {
		return
	}

	assert(!ta.clusterStack.isEmpty() || bo.IsLayoutView(block), "no cluster for %s", block.Box())

	ta.maybeCreateCluster(block)

	if ta.clusterStack.isEmpty() {
		return
	}
	// cells of auto layout tables are handled by InflateAutoTable
	if isAutoTableCell(block) {
		return
	}
	ta.inflate(block, normalInflate, 0)
}

func isAutoTableCell(block Box) bool {
	if !bo.IsTableCell(block) {
		return false
	}
	table := bo.TableOf(block)
	return table != nil && !bo.IsFixedTableLayout(table)
}

// EndLayout must be called when the layout of [block] is done.
// At the end of the pass, all the clusters are released.
func (ta *TextAutosizer) EndLayout(block Box) {
	assert(ta.ShouldHandleLayout(), "EndLayout called while autosizing is inactive")

	if block == ta.firstBlockToBeginLayout {
		if traceMode {
			traceLogger.DumpTree(block, "autosizing pass end")
		}
		ta.firstBlockToBeginLayout = nil
		ta.clusterStack.clear()
		ta.superclusters.clear()
		ta.stylesRetainedDuringLayout.release()
		if debugMode {
			ta.blocksThatHaveBegunLayout = map[Box]bool{}
		}
	} else if current := ta.clusterStack.current(); current != nil && current.root == block {
		// tables may create two layout scopes for the same block,
		// hence the check on the current root
		ta.clusterStack.pop()
	}
}

// maybeCreateCluster pushes a cluster for [block] if needed.
func (ta *TextAutosizer) maybeCreateCluster(block Box) {
	flags := ClassifyBlock(block, allFlags)
	if flags&PotentialRoot == 0 {
		return
	}

	parentIndex := ta.clusterStack.currentIndex()
	parent := ta.clusterStack.at(parentIndex)
	assert(parent != nil || bo.IsLayoutView(block), "missing parent cluster for %s", block.Box())

	// a non independent block which does not change the suppressing
	// state of its parent does not need its own cluster
	parentSuppresses := parent != nil && parent.flags&Suppressing != 0
	if flags&(Independent|ExplicitWidth) == 0 && (flags&Suppressing != 0) == parentSuppresses {
		return
	}

	ta.clusterStack.push(newCluster(block, flags, parentIndex, ta.getSupercluster(block)))
	logger.DebugLogger.Debugf("cluster <%s> %s (depth %d)", block.Box().ElementTag(), flags, ta.clusterStack.currentIndex())

	// non suppressing clusters are annotated when resolving their multiplier
	if flags&Suppressing != 0 {
		ta.writeClusterDebugInfo(ta.clusterStack.current())
	}
}

// getSupercluster returns noIndex if [block] is not a tentative root,
// or if no other tentative root shares its fingerprint.
func (ta *TextAutosizer) getSupercluster(block Box) int {
	fingerprint := ta.fingerprintMapper.get(block)
	if fingerprint == 0 {
		return noIndex
	}
	roots := ta.fingerprintMapper.getTentativeClusterRoots(fingerprint)
	if roots == nil || roots.size() < 2 || !roots.contains(block) {
		return noIndex
	}
	return ta.superclusters.getOrCreate(fingerprint, roots)
}

// InflateAutoTable inflates the cells of [table] before its columns are
// sized, so that their inflated preferred widths are used.
// Only the cells needing layout are handled.
func (ta *TextAutosizer) InflateAutoTable(table Box) {
	assert(!bo.IsFixedTableLayout(table), "InflateAutoTable called on a fixed table")
	assert(bo.ContainingBlock(table) != nil, "table without containing block")

	current := ta.clusterStack.current()
	if current == nil || current.root != table {
		return
	}

	for _, row := range bo.TableRows(table) {
		for _, cell := range row.Children {
			if !bo.IsTableCell(cell) || !cell.Box().NeedsLayout {
				continue
			}
			ta.BeginLayout(cell)
			ta.inflate(cell, descendToInnerBlocks, 0)
			ta.EndLayout(cell)
		}
	}
}

// InflateListItem applies the multiplier of the current cluster
// to [listItem] and its [marker], which may be nil.
func (ta *TextAutosizer) InflateListItem(listItem, marker Box) {
	if !ta.ShouldHandleLayout() {
		return
	}
	if ta.prepareForLayout(listItem) == stopLayout {
		return
	}

	current := ta.clusterStack.current()
	if current == nil {
		assert(false, "InflateListItem called outside of a cluster")
		return
	}
	// the item is inside the text container of the cluster, so the
	// latter has entered layout
	multiplier := ta.clusterMultiplier(current)
	ta.applyMultiplier(listItem, multiplier, alreadyInLayout)
	if marker != nil {
		ta.applyMultiplier(marker, multiplier, alreadyInLayout)
	}
}

// LayoutScope brackets the layout of a block:
//
//	scope := autosizer.NewLayoutScope(ta, block)
//	defer scope.End()
type LayoutScope struct {
	autosizer *TextAutosizer // nil when the hooks are inactive
	block     Box
}

// NewLayoutScope calls [TextAutosizer.BeginLayout] if needed.
// [ta] may be nil.
func NewLayoutScope(ta *TextAutosizer, block Box) LayoutScope {
	if ta == nil || !ta.ShouldHandleLayout() {
		return LayoutScope{}
	}
	ta.BeginLayout(block)
	return LayoutScope{autosizer: ta, block: block}
}

// End calls [TextAutosizer.EndLayout] if the scope is active.
func (ls LayoutScope) End() {
	if ls.autosizer != nil {
		ls.autosizer.EndLayout(ls.block)
	}
}

// NewTableLayoutScope is like [NewLayoutScope] for tables with an automatic
// layout, whose cells are inflated before the column widths are resolved.
func NewTableLayoutScope(ta *TextAutosizer, table Box) LayoutScope {
	scope := NewLayoutScope(ta, table)
	if scope.autosizer != nil {
		scope.autosizer.InflateAutoTable(table)
	}
	return scope
}
