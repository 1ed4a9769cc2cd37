package segmenter

import (
	"testing"

	"storykura/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NotJSONFallsBackToSentences(t *testing.T) {
	segs, source := NormalizeWithSource("not json at all", "Hello. World?")

	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, []types.Segment{
		{OriginalText: "Hello.", LectureText: "let me explain this: Hello."},
		{OriginalText: "World?", LectureText: "let me explain this: World?"},
	}, segs)
}

func TestNormalize_SegmentsField(t *testing.T) {
	raw := `{"segments":[{"originalText":"A","lectureText":"B"},{"originalText":"C"}]}`
	segs, source := NormalizeWithSource(raw, "A C")

	assert.Equal(t, SourceSegments, source)
	assert.Equal(t, []types.Segment{
		{OriginalText: "A", LectureText: "B"},
		{OriginalText: "C", LectureText: "let me explain: C"},
	}, segs)
}

func TestNormalize_SegmentsFieldEmptyUsesFallback(t *testing.T) {
	segs, source := NormalizeWithSource(`{"segments":[]}`, "One. Two.")

	assert.Equal(t, SourceFallback, source)
	require.Len(t, segs, 2)
	assert.Equal(t, "One.", segs[0].OriginalText)
}

func TestNormalize_SegmentsFieldSkipsNonObjects(t *testing.T) {
	segs, source := NormalizeWithSource(`{"segments":["x", 1, {"originalText":"A","lectureText":"B"}]}`, "A")

	assert.Equal(t, SourceSegments, source)
	assert.Equal(t, []types.Segment{{OriginalText: "A", LectureText: "B"}}, segs)

	segs, source = NormalizeWithSource(`{"segments":["x", null]}`, "Only one")
	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, []types.Segment{{OriginalText: "Only one", LectureText: "let me explain this: Only one"}}, segs)
}

func TestNormalize_MissingOriginalTextIsEmpty(t *testing.T) {
	segs := Normalize(`{"segments":[{"lectureText":"B"}]}`, "x")
	assert.Equal(t, []types.Segment{{OriginalText: "", LectureText: "B"}}, segs)

	segs = Normalize(`{"segments":[{}]}`, "x")
	assert.Equal(t, []types.Segment{{OriginalText: "", LectureText: "let me explain: "}}, segs)
}

func TestNormalize_CoercesValues(t *testing.T) {
	raw := `{"segments":[
		{"originalText":12.50,"lectureText":true},
		{"originalText":null,"lectureText":{"b":1,"a":[1,"x"]}},
		{"originalText":[1,2],"lectureText":false}
	]}`
	segs := Normalize(raw, "x")

	assert.Equal(t, []types.Segment{
		{OriginalText: "12.50", LectureText: "true"},
		{OriginalText: "null", LectureText: `{"b":1,"a":[1,"x"]}`},
		{OriginalText: "[1,2]", LectureText: "false"},
	}, segs)
}

func TestNormalize_NamedArray(t *testing.T) {
	raw := `{
		"title": "ignored",
		"bad": [{"originalText":"no lecture"}],
		"items": [{"originalText":"X","lectureText":"Y"}],
		"later": [{"originalText":"P","lectureText":"Q"}]
	}`
	segs, source := NormalizeWithSource(raw, "X")

	assert.Equal(t, SourceNamedArray, source)
	assert.Equal(t, []types.Segment{{OriginalText: "X", LectureText: "Y"}}, segs)
}

func TestNormalize_SegmentsNotArrayTriesOtherFields(t *testing.T) {
	raw := `{"segments":"oops","list":[{"originalText":"X","lectureText":"Y"}]}`
	segs, source := NormalizeWithSource(raw, "X")

	assert.Equal(t, SourceNamedArray, source)
	assert.Equal(t, []types.Segment{{OriginalText: "X", LectureText: "Y"}}, segs)
}

func TestNormalize_TopLevelArray(t *testing.T) {
	segs, source := NormalizeWithSource(`[{"originalText":"X","lectureText":"Y"}]`, "X")

	assert.Equal(t, SourceTopLevelArray, source)
	assert.Equal(t, []types.Segment{{OriginalText: "X", LectureText: "Y"}}, segs)
}

func TestNormalize_NumericKeys(t *testing.T) {
	raw := `{"0":{"originalText":"A","lectureText":"B"},"1":{"originalText":"C","lectureText":"D"}}`
	segs, source := NormalizeWithSource(raw, "A C")

	assert.Equal(t, SourceNumericKeys, source)
	assert.Equal(t, []types.Segment{
		{OriginalText: "A", LectureText: "B"},
		{OriginalText: "C", LectureText: "D"},
	}, segs)
}

func TestNormalize_NumericKeysEnumerateIndexKeysAscending(t *testing.T) {
	raw := `{
		"2":{"originalText":"third","lectureText":"3"},
		"1.5":{"originalText":"between","lectureText":"x"},
		"0":{"originalText":"first","lectureText":"1"},
		"1":{"originalText":"second","lectureText":"2"},
		"note":{"originalText":"skipped","lectureText":"n"}
	}`
	segs := Normalize(raw, "x")

	var originals []string
	for _, s := range segs {
		originals = append(originals, s.OriginalText)
	}
	assert.Equal(t, []string{"first", "second", "third", "between"}, originals)
}

func TestNormalize_HeuristicKeys(t *testing.T) {
	raw := `{
		"first": {"Source_Sentence":"S1","TargetLecture":"L1"},
		"second": {"originalText":"S2","lectureText":"L2"},
		"third": {"something":"else"},
		"fourth": "scalar"
	}`
	segs, source := NormalizeWithSource(raw, "x")

	assert.Equal(t, SourceHeuristicKeys, source)
	assert.Equal(t, []types.Segment{
		{OriginalText: "S1", LectureText: "L1"},
		{OriginalText: "S2", LectureText: "L2"},
	}, segs)
}

func TestNormalize_NumericKeysWinOverHeuristic(t *testing.T) {
	raw := `{"a":{"source":"H","target":"H2"},"0":{"originalText":"N","lectureText":"N2"}}`
	segs, source := NormalizeWithSource(raw, "x")

	assert.Equal(t, SourceNumericKeys, source)
	assert.Equal(t, []types.Segment{{OriginalText: "N", LectureText: "N2"}}, segs)
}

func TestNormalize_UnrecognizedShapesFallBack(t *testing.T) {
	for _, raw := range []string{`{}`, `{"foo":"bar"}`, `42`, `"text"`, `null`, `[]`, `{"a":1} trailing`} {
		segs, source := NormalizeWithSource(raw, "Fine.")
		assert.Equal(t, SourceFallback, source, raw)
		assert.Equal(t, []types.Segment{{OriginalText: "Fine.", LectureText: "let me explain this: Fine."}}, segs, raw)
	}
}

func TestNormalize_CodeFence(t *testing.T) {
	raw := "```json\n{\"segments\":[{\"originalText\":\"A\",\"lectureText\":\"B\"}]}\n```"
	segs, source := NormalizeWithSource(raw, "A")

	assert.Equal(t, SourceSegments, source)
	assert.Equal(t, []types.Segment{{OriginalText: "A", LectureText: "B"}}, segs)
}

func TestNormalize_DuplicateKeysKeepLastValue(t *testing.T) {
	segs := Normalize(`{"segments":[{"originalText":"A","lectureText":"B","lectureText":"C"}]}`, "A")
	assert.Equal(t, []types.Segment{{OriginalText: "A", LectureText: "C"}}, segs)
}

func TestNormalize_NonEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"", "garbage", `{"segments":[]}`, `[1,2,3]`, `{"0":"x"}`}
	for _, raw := range inputs {
		assert.NotEmpty(t, Normalize(raw, "Some text without terminator"), raw)
	}
}

func TestIsNumericKey(t *testing.T) {
	for _, k := range []string{"0", "17", "1.5", "-2", " 3 ", "1e3", "0x1f", "Infinity"} {
		assert.True(t, isNumericKey(k), k)
	}
	for _, k := range []string{"", "a1", "one", "NaN", "inf", "1_000", "0xzz"} {
		assert.False(t, isNumericKey(k), k)
	}
}
