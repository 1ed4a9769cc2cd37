package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectOrderedKeys(t *testing.T) {
	node, err := parseTree([]byte(`{"b":1,"10":2,"2":3,"a":4,"1":5,"01":6,"4294967295":7}`))
	require.NoError(t, err)
	obj, ok := node.(*object)
	require.True(t, ok)

	want := []string{"1", "2", "10", "b", "a", "01", "4294967295"}
	assert.Equal(t, want, obj.orderedKeys())
	assert.Equal(t, want, obj.orderedKeys(), "cached result is stable")
}

func TestObjectOrderedKeysRefreshOnNewKey(t *testing.T) {
	obj := newObject()
	assert.Empty(t, obj.orderedKeys())

	obj.set("x", "1")
	obj.set("3", "2")
	assert.Equal(t, []string{"3", "x"}, obj.orderedKeys())

	obj.set("x", "again")
	assert.Equal(t, []string{"3", "x"}, obj.orderedKeys())
	v, _ := obj.get("x")
	assert.Equal(t, "again", v)

	obj.set("0", "3")
	assert.Equal(t, []string{"0", "3", "x"}, obj.orderedKeys())
}

func TestObjectMarshalUsesEnumerationOrder(t *testing.T) {
	node, err := parseTree([]byte(`{"z":"<b>","1":true,"0":null}`))
	require.NoError(t, err)

	assert.Equal(t, `{"0":null,"1":true,"z":"<b>"}`, stringify(node))
}
