package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoride/internal/domain/entity"
)

type recordingLock struct {
	suspends int
	releases int
}

func (l *recordingLock) Suspend() func() {
	l.suspends++
	return func() { l.releases++ }
}

func images(front, side, back string) entity.ListingImages {
	var imgs entity.ListingImages
	if front != "" {
		imgs.Front = entity.StringPtr(front)
	}
	if side != "" {
		imgs.Side = entity.StringPtr(side)
	}
	if back != "" {
		imgs.Back = entity.StringPtr(back)
	}
	return imgs
}

func TestNewDropsAbsentSlots(t *testing.T) {
	c := New(images("f.jpg", "", "b.jpg"), nil)

	require.Equal(t, 2, c.Len())
	st := c.State()
	assert.Equal(t, []Image{{URL: "f.jpg", Label: "Front View"}, {URL: "b.jpg", Label: "Back View"}}, st.Images)
}

func TestNextCyclesBackToStart(t *testing.T) {
	for n, imgs := range map[int]entity.ListingImages{
		1: images("f", "", ""),
		2: images("f", "s", ""),
		3: images("f", "s", "b"),
	} {
		c := New(imgs, nil)
		require.Equal(t, n, c.Len())
		for i := 0; i < n; i++ {
			require.NoError(t, c.Next())
		}
		assert.Equal(t, 0, c.Index(), "N=%d", n)
	}
}

func TestPreviousWraps(t *testing.T) {
	c := New(images("f", "s", "b"), nil)
	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.Index())

	img, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Back View", img.Label)
}

func TestPreviousCyclesBackToStart(t *testing.T) {
	for n, imgs := range map[int]entity.ListingImages{
		1: images("", "", "b"),
		2: images("f", "", "b"),
		3: images("f", "s", "b"),
	} {
		c := New(imgs, nil)
		require.Equal(t, n, c.Len())
		require.NoError(t, c.JumpTo(n-1))
		for i := 0; i < n; i++ {
			require.NoError(t, c.Previous())
			if i < n-1 {
				assert.Equal(t, n-2-i, c.Index(), "N=%d step %d", n, i)
			}
		}
		assert.Equal(t, n-1, c.Index(), "N=%d", n)
	}
}

func TestJumpTo(t *testing.T) {
	c := New(images("f", "s", "b"), nil)
	require.NoError(t, c.JumpTo(1))
	assert.Equal(t, 1, c.Index())

	assert.ErrorIs(t, c.JumpTo(3), ErrOutOfRange)
	assert.ErrorIs(t, c.JumpTo(-1), ErrOutOfRange)
	assert.Equal(t, 1, c.Index(), "invalid jump leaves index alone")
}

func TestEmptyCarouselIsPlaceholder(t *testing.T) {
	c := New(entity.ListingImages{}, nil)

	assert.ErrorIs(t, c.Next(), ErrNoImages)
	assert.ErrorIs(t, c.Previous(), ErrNoImages)
	assert.ErrorIs(t, c.JumpTo(0), ErrNoImages)
	assert.ErrorIs(t, c.OpenFullscreen(), ErrNoImages)

	st := c.State()
	assert.Nil(t, st.Current)
	assert.Empty(t, st.Images)
	assert.False(t, st.Controls)
}

func TestControlsOnlyWithMultipleImages(t *testing.T) {
	single := New(images("f", "", ""), nil).State()
	assert.False(t, single.Controls)
	assert.Nil(t, single.Indicators)

	multi := New(images("f", "s", ""), nil)
	require.NoError(t, multi.Next())
	st := multi.State()
	assert.True(t, st.Controls)
	assert.Equal(t, []bool{false, true}, st.Indicators)
}

func TestFullscreenReleasesScrollExactlyOnce(t *testing.T) {
	lock := &recordingLock{}
	c := New(images("f", "s", ""), lock)

	require.NoError(t, c.OpenFullscreen())
	require.NoError(t, c.OpenFullscreen())
	assert.Equal(t, 1, lock.suspends, "no double suspend")
	assert.True(t, c.Fullscreen())

	c.Close(TriggerEscape)
	c.Close(TriggerBackdrop)
	c.Close(TriggerButton)
	assert.Equal(t, 1, lock.releases)
	assert.False(t, c.Fullscreen())
	assert.Equal(t, TriggerEscape, c.State().ClosedBy)

	require.NoError(t, c.OpenFullscreen())
	c.Close(TriggerBackdrop)
	assert.Equal(t, 2, lock.suspends)
	assert.Equal(t, 2, lock.releases)
}

func TestPageScroll(t *testing.T) {
	var p PageScroll
	c := New(images("f", "", ""), &p)

	require.NoError(t, c.OpenFullscreen())
	assert.True(t, p.Suspended())

	c.Close(TriggerButton)
	c.Close(TriggerEscape)
	assert.False(t, p.Suspended())

	release := p.Suspend()
	release()
	release()
	assert.False(t, p.Suspended())
}

func TestParseTrigger(t *testing.T) {
	tr, err := ParseTrigger("")
	require.NoError(t, err)
	assert.Equal(t, TriggerButton, tr)

	tr, err = ParseTrigger("escape")
	require.NoError(t, err)
	assert.Equal(t, TriggerEscape, tr)

	_, err = ParseTrigger("swipe")
	assert.Error(t, err)
}
