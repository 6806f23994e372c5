package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func FuzzPtr_Int(f *testing.F) {
	f.Add(0)
	f.Add(1)
	f.Add(64)
	f.Add(-1)
	f.Fuzz(func(t *testing.T, i int) {
		p := Ptr(i)
		assert.Equal(t, i, *p)
		assert.Equal(t, i, PtrGet(p))
	})
}

func FuzzPtr_String(f *testing.F) {
	f.Add("")
	f.Add("reminder")
	f.Fuzz(func(t *testing.T, s string) {
		assert.Equal(t, s, PtrGet(Ptr(s)))
	})
}

func TestPtrGet_Nil(t *testing.T) {
	assert.Zero(t, PtrGet[int](nil))
	assert.Zero(t, PtrGet[string](nil))
	assert.True(t, PtrGet[time.Time](nil).IsZero())
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone[int](nil))

	original := Ptr(3)
	clone := Clone(original)

	assert.Equal(t, 3, *clone)
	*clone = 5
	assert.Equal(t, 3, *original)
}
