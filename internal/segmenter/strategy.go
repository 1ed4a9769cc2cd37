package segmenter

import (
	"strings"

	"storykura/internal/types"
)

// Source names the rule that produced a segment list.
type Source string

const (
	SourceSegments      Source = "segments"
	SourceNamedArray    Source = "named-array"
	SourceTopLevelArray Source = "top-level-array"
	SourceNumericKeys   Source = "numeric-keys"
	SourceHeuristicKeys Source = "heuristic-keys"
	SourceFallback      Source = "fallback"
)

const (
	fieldSegments = "segments"
	fieldOriginal = "originalText"
	fieldLecture  = "lectureText"
)

// strategy extracts segments from a decoded response. matched reports whether the
// node had the shape the strategy handles; a match with no segments ends the chain.
type strategy interface {
	name() Source
	extract(node any) (segs []types.Segment, matched bool)
}

// strategies in priority order
var strategies = []strategy{
	segmentsField{},
	namedArray{},
	topLevelArray{},
	numericKeys{},
	heuristicKeys{},
}

// segmentsField handles {"segments": [...]}.
type segmentsField struct{}

func (segmentsField) name() Source { return SourceSegments }

func (segmentsField) extract(node any) ([]types.Segment, bool) {
	obj, ok := node.(*object)
	if !ok {
		return nil, false
	}
	v, _ := obj.get(fieldSegments)
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return mapElements(arr), true
}

// namedArray handles a response that put the list under some other key, e.g. {"items": [...]}.
type namedArray struct{}

func (namedArray) name() Source { return SourceNamedArray }

func (namedArray) extract(node any) ([]types.Segment, bool) {
	obj, ok := node.(*object)
	if !ok {
		return nil, false
	}
	for _, k := range obj.orderedKeys() {
		if k == fieldSegments {
			continue
		}
		arr, ok := obj.values[k].([]any)
		if !ok || len(arr) == 0 || !allSegmentObjects(arr) {
			continue
		}
		return mapElements(arr), true
	}
	return nil, false
}

func allSegmentObjects(arr []any) bool {
	for _, el := range arr {
		o, ok := el.(*object)
		if !ok || !o.has(fieldOriginal) || !o.has(fieldLecture) {
			return false
		}
	}
	return true
}

type topLevelArray struct{}

func (topLevelArray) name() Source { return SourceTopLevelArray }

func (topLevelArray) extract(node any) ([]types.Segment, bool) {
	arr, ok := node.([]any)
	if !ok {
		return nil, false
	}
	return mapElements(arr), true
}

// numericKeys handles {"0": {...}, "1": {...}}.
type numericKeys struct{}

func (numericKeys) name() Source { return SourceNumericKeys }

func (numericKeys) extract(node any) ([]types.Segment, bool) {
	obj, ok := node.(*object)
	if !ok {
		return nil, false
	}
	var segs []types.Segment
	for _, k := range obj.orderedKeys() {
		if !isNumericKey(k) {
			continue
		}
		o, ok := obj.values[k].(*object)
		if !ok || !o.has(fieldOriginal) || !o.has(fieldLecture) {
			continue
		}
		segs = append(segs, types.Segment{
			OriginalText: stringify(o.values[fieldOriginal]),
			LectureText:  stringify(o.values[fieldLecture]),
		})
	}
	return segs, len(segs) > 0
}

// heuristicKeys looks inside every object-valued entry for keys that resemble the two fields.
type heuristicKeys struct{}

func (heuristicKeys) name() Source { return SourceHeuristicKeys }

func (heuristicKeys) extract(node any) ([]types.Segment, bool) {
	obj, ok := node.(*object)
	if !ok {
		return nil, false
	}
	var segs []types.Segment
	for _, k := range obj.orderedKeys() {
		o, ok := obj.values[k].(*object)
		if !ok {
			continue
		}
		if o.has(fieldOriginal) && o.has(fieldLecture) {
			segs = append(segs, types.Segment{
				OriginalText: stringify(o.values[fieldOriginal]),
				LectureText:  stringify(o.values[fieldLecture]),
			})
			continue
		}
		original, okOriginal := findKey(o, "original", "source")
		lecture, okLecture := findKey(o, "lecture", "target")
		if !okOriginal || !okLecture {
			continue
		}
		segs = append(segs, types.Segment{
			OriginalText: stringify(original),
			LectureText:  stringify(lecture),
		})
	}
	return segs, len(segs) > 0
}

// findKey returns the value of the first key (enumeration order) containing any of the needles, case-insensitively.
func findKey(o *object, needles ...string) (any, bool) {
	for _, k := range o.orderedKeys() {
		lower := strings.ToLower(k)
		for _, n := range needles {
			if strings.Contains(lower, n) {
				return o.values[k], true
			}
		}
	}
	return nil, false
}

// mapElements coerces array elements into segments. Non-object elements are skipped.
func mapElements(arr []any) []types.Segment {
	segs := make([]types.Segment, 0, len(arr))
	for _, el := range arr {
		o, ok := el.(*object)
		if !ok {
			continue
		}
		var seg types.Segment
		if v, ok := o.get(fieldOriginal); ok {
			seg.OriginalText = stringify(v)
		}
		if v, ok := o.get(fieldLecture); ok {
			seg.LectureText = stringify(v)
		} else {
			seg.LectureText = types.LectureWrapperMissing + seg.OriginalText
		}
		segs = append(segs, seg)
	}
	return segs
}
