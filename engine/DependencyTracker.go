package engine

import (
	"gridCalc/contracts"
	"regexp"

	"github.com/elliotchance/orderedmap/v3"
)

type addressSet = orderedmap.OrderedMap[string, struct{}]

var referenceRegex = regexp.MustCompile(`[A-Z]+[0-9]+`)

// DependencyTracker keeps the forward "cell reads" sets and the reverse
// "cell is read by" index. Both are replaced together on every SetDependsOn.
type DependencyTracker struct {
	dependingOn map[string]*addressSet
	dependants  map[string]*addressSet
}

func NewDependencyTracker() *DependencyTracker {
	return &DependencyTracker{
		dependingOn: map[string]*addressSet{},
		dependants:  map[string]*addressSet{},
	}
}

// ExtractReferences returns every address-shaped token of the formula once, in
// order of first appearance. Range endpoints are captured, ranges are not expanded.
func (t *DependencyTracker) ExtractReferences(formula string) []string {
	references := orderedmap.NewOrderedMap[string, struct{}]()
	for _, reference := range referenceRegex.FindAllString(formula, -1) {
		references.Set(reference, struct{}{})
	}

	return setToSlice(references)
}

// SetDependsOn replaces the dependency list of dependantCellId.
// An empty list removes the cell from the graph.
func (t *DependencyTracker) SetDependsOn(dependantCellId string, dependingOnCellIds []string) {
	if previous, ok := t.dependingOn[dependantCellId]; ok {
		for el := previous.Front(); el != nil; el = el.Next() {
			t.unlink(el.Key, dependantCellId)
		}
		delete(t.dependingOn, dependantCellId)
	}

	if len(dependingOnCellIds) == 0 {
		return
	}

	current := orderedmap.NewOrderedMap[string, struct{}]()
	for _, dependingOnCellId := range dependingOnCellIds {
		current.Set(dependingOnCellId, struct{}{})

		dependants, ok := t.dependants[dependingOnCellId]
		if !ok {
			dependants = orderedmap.NewOrderedMap[string, struct{}]()
			t.dependants[dependingOnCellId] = dependants
		}
		dependants.Set(dependantCellId, struct{}{})
	}
	t.dependingOn[dependantCellId] = current
}

func (t *DependencyTracker) unlink(dependingOnCellId string, dependantCellId string) {
	dependants, ok := t.dependants[dependingOnCellId]
	if !ok {
		return
	}

	dependants.Delete(dependantCellId)
	if dependants.Len() == 0 {
		delete(t.dependants, dependingOnCellId)
	}
}

// FindDependents returns the cells whose formula references address directly
func (t *DependencyTracker) FindDependents(address string) []string {
	dependants, ok := t.dependants[address]
	if !ok {
		return []string{}
	}

	return setToSlice(dependants)
}

// FindAllDependents follows FindDependents transitively. Cycles are visited once.
func (t *DependencyTracker) FindAllDependents(address string) []string {
	return t.fetchDependantsRecursive(address, map[string]bool{
		address: true,
	})
}

func (t *DependencyTracker) fetchDependantsRecursive(address string, alreadyFetched map[string]bool) []string {
	direct := make([]string, 0)
	for _, dependantCellId := range t.FindDependents(address) {
		if !alreadyFetched[dependantCellId] {
			alreadyFetched[dependantCellId] = true
			direct = append(direct, dependantCellId)
		}
	}

	dependants := append([]string{}, direct...)
	for _, dependantCellId := range direct {
		dependants = append(dependants, t.fetchDependantsRecursive(dependantCellId, alreadyFetched)...)
	}

	return dependants
}

// ScanDependents answers the same question as FindDependents by reading every
// cell of the store instead of the index.
func ScanDependents(address string, store contracts.CellStore) []string {
	dependents := make([]string, 0)
	for _, cellId := range store.Addresses() {
		cell, ok := store.GetCell(cellId)
		if !ok {
			continue
		}

		for _, dependency := range cell.Dependencies {
			if dependency == address {
				dependents = append(dependents, cellId)
				break
			}
		}
	}

	return dependents
}

func setToSlice(set *addressSet) []string {
	result := make([]string, 0, set.Len())
	for el := set.Front(); el != nil; el = el.Next() {
		result = append(result, el.Key)
	}

	return result
}

// RewriteReferences replaces every address-shaped token of formula with rewrite(token)
func RewriteReferences(formula string, rewrite func(reference string) string) string {
	return referenceRegex.ReplaceAllStringFunc(formula, rewrite)
}
