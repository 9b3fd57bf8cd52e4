package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(NewSuccess(3*time.Second, "Mug added to cart!"))
	r.Notify(NewError(2*time.Second, "Item already in wishlist!"))

	assert.Equal(t, []string{"Mug added to cart!", "Item already in wishlist!"}, r.Messages())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, Error, last.Kind)
	assert.Equal(t, 2*time.Second, last.Duration)

	r.Reset()
	assert.Empty(t, r.Notices())
}

func TestMulti_SkipsNilAndPreservesOrder(t *testing.T) {
	var order []string
	a := Func(func(Notice) { order = append(order, "a") })
	b := Func(func(Notice) { order = append(order, "b") })

	Multi(a, nil, b).Notify(Notice{Message: "x"})
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestQueue_DropsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Notify(Notice{Message: "1"})
	q.Notify(Notice{Message: "2"})
	q.Notify(Notice{Message: "3"})

	assert.Equal(t, "2", (<-q.C()).Message)
	assert.Equal(t, "3", (<-q.C()).Message)
	select {
	case n := <-q.C():
		t.Fatalf("unexpected notice %q", n.Message)
	default:
	}
}

func TestNewQueue_DefaultSize(t *testing.T) {
	q := NewQueue(0)
	assert.Equal(t, defaultQueueSize, cap(q.ch))
}

func TestLog_LevelsByKind(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := Log(zap.New(core))

	sink.Notify(NewSuccess(time.Second, "Cart cleared"))
	sink.Notify(NewError(time.Second, "Item already in wishlist!"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Cart cleared", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)

	Log(nil).Notify(Notice{Message: "ignored"})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
